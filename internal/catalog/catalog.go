package catalog

import (
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/zhubert/splashctl/internal/logger"
)

// NoneID is the plugin id of the synthetic "no splash screen" entry.
const NoneID = "None"

// ScreenshotAsset is the package-relative preview image of a splash theme.
const ScreenshotAsset = "previews/splash.png"

// ThemeEntry is one selectable row of the catalog.
type ThemeEntry struct {
	PluginID       string `json:"plugin_id"`
	DisplayName    string `json:"display_name"`
	ScreenshotPath string `json:"screenshot,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Catalog is an ordered list of entries. Index 0 is always the None entry.
type Catalog []ThemeEntry

// NoneEntry returns the entry that disables the splash screen.
func NoneEntry() ThemeEntry {
	return ThemeEntry{
		PluginID:    NoneID,
		DisplayName: "None",
		Description: "No splash screen will be shown",
	}
}

// IDs returns the plugin ids in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, e := range c {
		ids[i] = e.PluginID
	}
	return ids
}

// Names returns the display names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.DisplayName
	}
	return names
}

// Package is a resolved theme package as seen by the builder.
type Package interface {
	// Metadata returns the declared id, name and comment.
	Metadata() Metadata
	// FilePath resolves an asset key or package-relative path to an absolute
	// path, or returns "" when the package does not provide it.
	FilePath(asset string) string
}

// Source enumerates installed theme packages. Candidates that cannot be
// resolved are left out by the source; the result is in search-root order.
type Source interface {
	Packages() []Package
}

// Builder turns the packages of a Source into a Catalog.
type Builder struct {
	source Source
	lang   language.Tag
	log    *slog.Logger
}

// NewBuilder creates a builder that sorts display names using the collation
// rules of lang. Pass language.Und for root collation.
func NewBuilder(source Source, lang language.Tag) *Builder {
	return &Builder{
		source: source,
		lang:   lang,
		log:    logger.ComponentLogger("catalog"),
	}
}

// Build scans the source and returns a fresh catalog. Packages that do not
// provide requiredAsset are skipped; an empty requiredAsset accepts all.
// The first package seen for a plugin id wins.
func (b *Builder) Build(requiredAsset string) Catalog {
	pkgs := b.source.Packages()

	seen := make(map[string]bool, len(pkgs))
	entries := make([]ThemeEntry, 0, len(pkgs)+1)
	for _, pkg := range pkgs {
		meta := pkg.Metadata()
		switch {
		case meta.ID == "":
			b.log.Debug("skipping package without plugin id")
			continue
		case meta.ID == NoneID:
			b.log.Warn("skipping package using reserved plugin id", "id", meta.ID)
			continue
		case seen[meta.ID]:
			b.log.Debug("skipping shadowed package", "id", meta.ID)
			continue
		}
		if requiredAsset != "" && pkg.FilePath(requiredAsset) == "" {
			b.log.Debug("skipping package without required asset", "id", meta.ID, "asset", requiredAsset)
			continue
		}
		seen[meta.ID] = true

		name := meta.Name
		if name == "" {
			name = meta.ID
		}
		entries = append(entries, ThemeEntry{
			PluginID:       meta.ID,
			DisplayName:    name,
			ScreenshotPath: pkg.FilePath(ScreenshotAsset),
			Description:    meta.Comment,
		})
	}

	sortByName(entries, b.lang)
	b.log.Debug("catalog built", "themes", len(entries), "asset", requiredAsset)

	return append(Catalog{NoneEntry()}, entries...)
}

// sortByName sorts entries by display name using locale-aware collation.
// Ties keep their source order.
func sortByName(entries []ThemeEntry, lang language.Tag) {
	c := collate.New(lang)
	sort.SliceStable(entries, func(i, j int) bool {
		return c.CompareString(entries[i].DisplayName, entries[j].DisplayName) < 0
	})
}
