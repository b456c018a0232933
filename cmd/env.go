package cmd

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/zhubert/splashctl/internal/catalog"
	"github.com/zhubert/splashctl/internal/config"
	"github.com/zhubert/splashctl/internal/logger"
	"github.com/zhubert/splashctl/internal/selector"
	"github.com/zhubert/splashctl/internal/settings"
)

// environment is everything a subcommand needs to work with themes.
type environment struct {
	cfg    *config.Config
	store  *settings.Store
	source *catalog.FSSource
	sel    *selector.Selector
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadAndMerge(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// loadEnvironment loads the config, scans the installed themes and loads
// the persisted selection.
func loadEnvironment(callbacks selector.Callbacks) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	env := newEnvironment(cfg, catalog.PreferredLanguages(), callbacks)
	if err := env.sel.Load(); err != nil {
		return nil, err
	}
	logger.Debug("loaded %d themes from %d roots, selection %s", env.sel.Model().Len()-1, len(env.source.Roots()), env.sel.Theme())
	return env, nil
}

// newEnvironment wires the catalog, store and selector for cfg and builds
// the catalog. The persisted selection is not loaded.
func newEnvironment(cfg *config.Config, langs []language.Tag, callbacks selector.Callbacks) *environment {
	lang := language.Und
	if len(langs) > 0 {
		lang = langs[0]
	}

	opts := selector.DefaultOptions(cfg.Engine, cfg.RequiredAsset)
	store := settings.NewStore(cfg.SettingsPath, settings.Values{
		Engine: cfg.Engine,
		Theme:  cfg.DefaultTheme,
	})
	source := catalog.NewFSSource(cfg.ThemeRoots(), langs)
	sel := selector.New(store, catalog.NewModel(lang), catalog.NewBuilder(source, lang), opts, callbacks)
	sel.Rebuild()

	return &environment{cfg: cfg, store: store, source: source, sel: sel}
}

// resolve maps a command-line argument to a catalog entry.
func (e *environment) resolve(query string) (catalog.ThemeEntry, error) {
	idx, err := e.sel.Model().Resolve(query)
	if err != nil {
		return catalog.ThemeEntry{}, err
	}
	entry, _ := e.sel.Model().EntryAt(idx)
	return entry, nil
}

// current returns the entry of the in-memory selection.
func (e *environment) current() (catalog.ThemeEntry, bool) {
	idx, ok := e.sel.CurrentIndex()
	if !ok {
		return catalog.ThemeEntry{}, false
	}
	return e.sel.Model().EntryAt(idx)
}
