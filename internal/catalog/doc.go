// Package catalog discovers installed splash screen themes and keeps them as
// an ordered, selectable list.
//
// # Discovery
//
// Theme packages live below each XDG data directory in
// plasma/look-and-feel/<id>/. A package declares its identity in
// metadata.json (the KPlugin object) or, for older packages, in
// metadata.desktop. Its assets live below contents/; a splash theme must
// provide the "splashmainscript" asset (contents/splash/Splash.qml) and may
// ship a screenshot at contents/previews/splash.png.
//
// FSSource scans the roots, skipping anything it cannot read, and Builder
// filters by required asset, deduplicates by plugin id and sorts by display
// name. Builder accepts any Source, so tests can feed synthetic packages.
//
// # Catalog invariants
//
//   - Position 0 is always the "None" entry, which disables the splash.
//   - Plugin ids are unique; Model.IndexOf treats more than one match as
//     not found.
//   - Entries after position 0 are in collation order of their display name.
//
// The catalog is never patched in place: callers rebuild it and hand the
// result to Model.ReplaceAll.
package catalog
