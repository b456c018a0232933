// Package selector keeps the theme catalog and the persisted splash settings
// in agreement. It validates the stored theme against the catalog, tracks
// whether the in-memory selection needs saving, and derives the engine from
// the theme when writing.
package selector

import (
	"log/slog"

	"github.com/zhubert/splashctl/internal/catalog"
	serrors "github.com/zhubert/splashctl/internal/errors"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/settings"
)

// EngineNone is the stored engine when no splash screen is shown.
const EngineNone = "none"

// Store is the persisted settings record the selector works through.
// *settings.Store satisfies it.
type Store interface {
	Load() error
	Save() error
	SetDefaults()
	IsSaveNeeded() bool
	Theme() string
	SetTheme(string)
	Engine() string
	SetEngine(string)
	OnChange(func(settings.Field))
}

// CatalogBuilder produces a fresh catalog. *catalog.Builder satisfies it.
type CatalogBuilder interface {
	Build(requiredAsset string) catalog.Catalog
}

// Callbacks receive state changes. Nil callbacks are skipped. They are
// called synchronously on the goroutine that caused the change.
type Callbacks struct {
	// CatalogChanged is called after the model has been repopulated.
	CatalogChanged func()

	// ThemeChanged is called with the new theme id whenever the in-memory
	// theme changes value.
	ThemeChanged func(pluginID string)

	// NeedsSaveChanged is called when the needs-save flag flips.
	NeedsSaveChanged func(needsSave bool)
}

// Options configure a Selector.
type Options struct {
	// Engine is stored for every theme other than None.
	Engine string

	// RequiredAsset is passed to the builder on Rebuild.
	RequiredAsset string

	// DirtyOnAnyChoice makes every ChooseTheme call mark the selection as
	// needing a save, even when the chosen theme is already selected. When
	// false only an actual change of value does.
	DirtyOnAnyChoice bool
}

// DefaultOptions returns options with DirtyOnAnyChoice enabled.
func DefaultOptions(engine, requiredAsset string) Options {
	return Options{
		Engine:           engine,
		RequiredAsset:    requiredAsset,
		DirtyOnAnyChoice: true,
	}
}

// Selector binds a catalog model to a settings store. It is owned by a
// single goroutine and is not safe for concurrent use.
type Selector struct {
	store     Store
	model     *catalog.Model
	builder   CatalogBuilder
	opts      Options
	callbacks Callbacks
	log       *slog.Logger

	needsSave bool
}

// New creates a selector and subscribes it to store changes. builder may be
// nil when the caller populates the model itself.
func New(store Store, model *catalog.Model, builder CatalogBuilder, opts Options, callbacks Callbacks) *Selector {
	s := &Selector{
		store:     store,
		model:     model,
		builder:   builder,
		opts:      opts,
		callbacks: callbacks,
		log:       logger.ComponentLogger("selector"),
	}
	store.OnChange(s.onStoreChange)
	return s
}

func (s *Selector) onStoreChange(field settings.Field) {
	if field == settings.FieldTheme && s.callbacks.ThemeChanged != nil {
		s.callbacks.ThemeChanged(s.store.Theme())
	}
	s.setNeedsSave(true)
}

// Model returns the catalog model.
func (s *Selector) Model() *catalog.Model {
	return s.model
}

// NeedsSave reports whether the in-memory selection has unsaved changes.
func (s *Selector) NeedsSave() bool {
	return s.needsSave
}

func (s *Selector) setNeedsSave(v bool) {
	if s.needsSave == v {
		return
	}
	s.needsSave = v
	if s.callbacks.NeedsSaveChanged != nil {
		s.callbacks.NeedsSaveChanged(v)
	}
}

// Theme returns the in-memory theme id.
func (s *Selector) Theme() string {
	return s.store.Theme()
}

// Engine returns the in-memory engine id.
func (s *Selector) Engine() string {
	return s.store.Engine()
}

// CurrentIndex returns the model position of the in-memory theme.
func (s *Selector) CurrentIndex() (int, bool) {
	return s.model.IndexOf(s.store.Theme())
}

// Load reads the settings record and reconciles it with the catalog. The
// selection is clean afterwards unless the stored theme had to be replaced.
func (s *Selector) Load() error {
	if err := s.store.Load(); err != nil {
		return err
	}
	s.setNeedsSave(false)
	s.Reconcile()
	return nil
}

// Reconcile checks the in-memory theme against the catalog and restores
// the defaults when it is not there. The selection is marked dirty only if
// that changed a value.
func (s *Selector) Reconcile() {
	theme := s.store.Theme()
	if s.model.Contains(theme) {
		return
	}

	s.log.Info("selected theme not installed, restoring defaults", "theme", theme)
	before := s.store.Theme()
	s.store.SetDefaults()
	if s.store.Theme() != before {
		s.setNeedsSave(true)
	}
}

// ChooseTheme makes pluginID the in-memory selection. It must name a
// catalog entry.
func (s *Selector) ChooseTheme(pluginID string) error {
	if !s.model.Contains(pluginID) {
		return serrors.ThemeNotFound(pluginID)
	}
	s.store.SetTheme(pluginID)
	if s.opts.DirtyOnAnyChoice {
		s.setNeedsSave(true)
	}
	return nil
}

// ChooseIndex selects the entry at model position i.
func (s *Selector) ChooseIndex(i int) error {
	entry, ok := s.model.EntryAt(i)
	if !ok {
		return serrors.E(serrors.Op("selector.ChooseIndex"), serrors.KindInvalid, "index out of range")
	}
	return s.ChooseTheme(entry.PluginID)
}

// DeriveEngine returns the engine stored alongside theme.
func (s *Selector) DeriveEngine(theme string) string {
	if theme == catalog.NoneID {
		return EngineNone
	}
	return s.opts.Engine
}

// Save derives the engine from the current theme and writes both fields.
func (s *Selector) Save() error {
	theme := s.store.Theme()
	s.store.SetEngine(s.DeriveEngine(theme))
	if err := s.store.Save(); err != nil {
		return err
	}
	s.log.Info("settings saved", "theme", theme, "engine", s.store.Engine())
	s.setNeedsSave(false)
	return nil
}

// RestoreDefaults applies the default settings in memory. Whether a save is
// needed afterwards is whatever the store reports.
func (s *Selector) RestoreDefaults() {
	s.store.SetDefaults()
	s.setNeedsSave(s.store.IsSaveNeeded())
}

// Rebuild rescans the installed themes, repopulates the model and
// reconciles the selection with the new catalog.
func (s *Selector) Rebuild() {
	if s.builder == nil {
		s.Reconcile()
		return
	}
	s.model.ReplaceAll(s.builder.Build(s.opts.RequiredAsset))
	s.log.Debug("catalog rebuilt", "themes", s.model.Len())
	if s.callbacks.CatalogChanged != nil {
		s.callbacks.CatalogChanged()
	}
	s.Reconcile()
}
