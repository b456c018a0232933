package selector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"

	"github.com/zhubert/splashctl/internal/catalog"
	serrors "github.com/zhubert/splashctl/internal/errors"
	"github.com/zhubert/splashctl/internal/settings"
)

const (
	testEngine  = "KSplashQML"
	testDefault = "org.kde.breeze.desktop"
)

type fakeBuilder struct {
	catalog catalog.Catalog
	calls   int
	asset   string
}

func (b *fakeBuilder) Build(requiredAsset string) catalog.Catalog {
	b.calls++
	b.asset = requiredAsset
	return b.catalog
}

func entries(ids ...string) catalog.Catalog {
	c := catalog.Catalog{catalog.NoneEntry()}
	for _, id := range ids {
		c = append(c, catalog.ThemeEntry{PluginID: id, DisplayName: id})
	}
	return c
}

// recorder collects callback invocations.
type recorder struct {
	catalogChanged int
	themes         []string
	needsSave      []bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		CatalogChanged:   func() { r.catalogChanged++ },
		ThemeChanged:     func(id string) { r.themes = append(r.themes, id) },
		NeedsSaveChanged: func(v bool) { r.needsSave = append(r.needsSave, v) },
	}
}

type fixture struct {
	path    string
	store   *settings.Store
	builder *fakeBuilder
	sel     *Selector
	rec     *recorder
}

func newFixture(t *testing.T, persisted *settings.Values, installed catalog.Catalog, opts Options) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if persisted != nil {
		writeSettings(t, path, *persisted)
	}

	store := settings.NewStore(path, settings.Values{Engine: testEngine, Theme: testDefault})
	builder := &fakeBuilder{catalog: installed}
	rec := &recorder{}
	sel := New(store, catalog.NewModel(language.Und), builder, opts, rec.callbacks())
	sel.Rebuild()

	return &fixture{path: path, store: store, builder: builder, sel: sel, rec: rec}
}

func writeSettings(t *testing.T, path string, v settings.Values) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func readSettings(t *testing.T, path string) settings.Values {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var v settings.Values
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLoad_PersistedThemeGone(t *testing.T) {
	tests := []struct {
		name          string
		defaultTheme  string
		wantNeedsSave bool
	}{
		{"default differs", testDefault, true},
		{"default equals stored", "gone", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			writeSettings(t, path, settings.Values{Engine: testEngine, Theme: "gone"})

			store := settings.NewStore(path, settings.Values{Engine: testEngine, Theme: tt.defaultTheme})
			model := catalog.NewModel(language.Und)
			model.ReplaceAll(entries("alpha"))
			sel := New(store, model, nil, DefaultOptions(testEngine, ""), Callbacks{})

			if err := sel.Load(); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if sel.Theme() != tt.defaultTheme {
				t.Errorf("Theme() = %q, want %q", sel.Theme(), tt.defaultTheme)
			}
			if sel.Engine() != testEngine {
				t.Errorf("Engine() = %q, want %q", sel.Engine(), testEngine)
			}
			if sel.NeedsSave() != tt.wantNeedsSave {
				t.Errorf("NeedsSave() = %v, want %v", sel.NeedsSave(), tt.wantNeedsSave)
			}
		})
	}
}

func TestLoad_PersistedThemePresent(t *testing.T) {
	f := newFixture(t, &settings.Values{Engine: testEngine, Theme: "alpha"}, entries("alpha", "beta"), DefaultOptions(testEngine, ""))

	if err := f.sel.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.sel.Theme() != "alpha" {
		t.Errorf("Theme() = %q, want alpha", f.sel.Theme())
	}
	if f.sel.NeedsSave() {
		t.Error("NeedsSave() = true after clean load")
	}
	idx, ok := f.sel.CurrentIndex()
	if !ok || idx != 1 {
		t.Errorf("CurrentIndex() = %d, %v, want 1", idx, ok)
	}
}

func TestLoad_NoneIsValid(t *testing.T) {
	f := newFixture(t, &settings.Values{Engine: EngineNone, Theme: catalog.NoneID}, entries("alpha"), DefaultOptions(testEngine, ""))

	if err := f.sel.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.sel.Theme() != catalog.NoneID || f.sel.NeedsSave() {
		t.Errorf("Theme() = %q, NeedsSave() = %v", f.sel.Theme(), f.sel.NeedsSave())
	}
}

func TestLoad_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := settings.NewStore(path, settings.Values{Engine: testEngine, Theme: testDefault})
	sel := New(store, catalog.NewModel(language.Und), nil, DefaultOptions(testEngine, ""), Callbacks{})

	err := sel.Load()
	if !serrors.Is(err, serrors.KindSettings) {
		t.Errorf("Load() error = %v, want settings error", err)
	}
}

func TestRebuild_ReconcilesAfterRemoval(t *testing.T) {
	f := newFixture(t, &settings.Values{Engine: testEngine, Theme: "alpha"}, entries("alpha", testDefault), DefaultOptions(testEngine, "splashmainscript"))
	if err := f.sel.Load(); err != nil {
		t.Fatal(err)
	}
	f.rec.needsSave = nil

	f.builder.catalog = entries(testDefault)
	f.sel.Rebuild()

	if f.builder.asset != "splashmainscript" {
		t.Errorf("builder asset = %q", f.builder.asset)
	}
	if f.rec.catalogChanged != 2 {
		t.Errorf("CatalogChanged calls = %d, want 2", f.rec.catalogChanged)
	}
	if f.sel.Theme() != testDefault {
		t.Errorf("Theme() = %q, want default", f.sel.Theme())
	}
	if !f.sel.NeedsSave() {
		t.Error("NeedsSave() = false after fallback")
	}
	if len(f.rec.needsSave) != 1 || !f.rec.needsSave[0] {
		t.Errorf("NeedsSaveChanged = %v, want [true]", f.rec.needsSave)
	}
}

func TestRebuild_KeepsInstalledTheme(t *testing.T) {
	f := newFixture(t, &settings.Values{Engine: testEngine, Theme: "alpha"}, entries("alpha"), DefaultOptions(testEngine, ""))
	if err := f.sel.Load(); err != nil {
		t.Fatal(err)
	}

	f.builder.catalog = entries("alpha", "beta")
	f.sel.Rebuild()

	if f.sel.Theme() != "alpha" || f.sel.NeedsSave() {
		t.Errorf("Theme() = %q, NeedsSave() = %v", f.sel.Theme(), f.sel.NeedsSave())
	}
	if f.sel.Model().Len() != 3 {
		t.Errorf("model Len() = %d, want 3", f.sel.Model().Len())
	}
}

func TestChooseTheme(t *testing.T) {
	f := newFixture(t, &settings.Values{Engine: testEngine, Theme: "alpha"}, entries("alpha", "beta"), DefaultOptions(testEngine, ""))
	if err := f.sel.Load(); err != nil {
		t.Fatal(err)
	}
	f.rec.themes = nil

	if err := f.sel.ChooseTheme("beta"); err != nil {
		t.Fatalf("ChooseTheme() error = %v", err)
	}
	if f.sel.Theme() != "beta" || !f.sel.NeedsSave() {
		t.Errorf("Theme() = %q, NeedsSave() = %v", f.sel.Theme(), f.sel.NeedsSave())
	}
	if len(f.rec.themes) != 1 || f.rec.themes[0] != "beta" {
		t.Errorf("ThemeChanged = %v, want [beta]", f.rec.themes)
	}
}

func TestChooseTheme_NotInstalled(t *testing.T) {
	f := newFixture(t, nil, entries("alpha"), DefaultOptions(testEngine, ""))

	err := f.sel.ChooseTheme("missing")
	if serrors.GetKind(err) != serrors.KindNotFound {
		t.Errorf("ChooseTheme(missing) error = %v, want not found", err)
	}
}

func TestChooseTheme_SameValueDirtyPolicy(t *testing.T) {
	tests := []struct {
		name             string
		dirtyOnAnyChoice bool
		wantNeedsSave    bool
	}{
		{"any choice marks dirty", true, true},
		{"value equality suppresses", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions(testEngine, "")
			opts.DirtyOnAnyChoice = tt.dirtyOnAnyChoice
			f := newFixture(t, &settings.Values{Engine: testEngine, Theme: "alpha"}, entries("alpha"), opts)
			if err := f.sel.Load(); err != nil {
				t.Fatal(err)
			}

			if err := f.sel.ChooseTheme("alpha"); err != nil {
				t.Fatal(err)
			}
			if f.sel.NeedsSave() != tt.wantNeedsSave {
				t.Errorf("NeedsSave() = %v, want %v", f.sel.NeedsSave(), tt.wantNeedsSave)
			}
		})
	}
}

func TestChooseIndex(t *testing.T) {
	f := newFixture(t, nil, entries("alpha"), DefaultOptions(testEngine, ""))

	if err := f.sel.ChooseIndex(0); err != nil {
		t.Fatalf("ChooseIndex(0) error = %v", err)
	}
	if f.sel.Theme() != catalog.NoneID {
		t.Errorf("Theme() = %q, want None", f.sel.Theme())
	}
	if err := f.sel.ChooseIndex(5); serrors.GetKind(err) != serrors.KindInvalid {
		t.Errorf("ChooseIndex(5) error = %v, want invalid", err)
	}
}

func TestSave_DerivesEngine(t *testing.T) {
	priorEngines := []string{EngineNone, testEngine, "SomethingElse", ""}
	themes := []string{catalog.NoneID, "alpha"}

	for _, prior := range priorEngines {
		for _, theme := range themes {
			t.Run(prior+"/"+theme, func(t *testing.T) {
				f := newFixture(t, &settings.Values{Engine: prior, Theme: "alpha"}, entries("alpha"), DefaultOptions(testEngine, ""))
				if err := f.sel.Load(); err != nil {
					t.Fatal(err)
				}
				if err := f.sel.ChooseTheme(theme); err != nil {
					t.Fatal(err)
				}
				if err := f.sel.Save(); err != nil {
					t.Fatalf("Save() error = %v", err)
				}

				got := readSettings(t, f.path)
				if got.Theme != theme {
					t.Errorf("saved theme = %q, want %q", got.Theme, theme)
				}
				if (got.Engine == EngineNone) != (theme == catalog.NoneID) {
					t.Errorf("saved engine = %q for theme %q", got.Engine, theme)
				}
				if theme != catalog.NoneID && got.Engine != testEngine {
					t.Errorf("saved engine = %q, want %q", got.Engine, testEngine)
				}
				if f.sel.NeedsSave() {
					t.Error("NeedsSave() = true after save")
				}
			})
		}
	}
}

func TestSave_DirectStoreMutation(t *testing.T) {
	f := newFixture(t, nil, entries("alpha"), DefaultOptions(testEngine, ""))
	if err := f.sel.ChooseTheme("alpha"); err != nil {
		t.Fatal(err)
	}

	// The theme changes behind the selector's back; the engine must follow.
	f.store.SetTheme(catalog.NoneID)
	if err := f.sel.Save(); err != nil {
		t.Fatal(err)
	}

	if got := readSettings(t, f.path); got.Engine != EngineNone {
		t.Errorf("saved engine = %q, want none", got.Engine)
	}
}

func TestSave_ErrorKeepsDirty(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	store := settings.NewStore(filepath.Join(blocker, "settings.json"), settings.Values{Engine: testEngine, Theme: testDefault})
	model := catalog.NewModel(language.Und)
	model.ReplaceAll(entries("alpha"))
	sel := New(store, model, nil, DefaultOptions(testEngine, ""), Callbacks{})

	if err := sel.ChooseTheme("alpha"); err != nil {
		t.Fatal(err)
	}
	if err := sel.Save(); err == nil {
		t.Fatal("Save() succeeded, want error")
	}
	if !sel.NeedsSave() {
		t.Error("NeedsSave() = false after failed save")
	}
}

func TestRestoreDefaults(t *testing.T) {
	tests := []struct {
		name          string
		persisted     settings.Values
		wantNeedsSave bool
	}{
		{"persisted differs from defaults", settings.Values{Engine: testEngine, Theme: "alpha"}, true},
		{"persisted equals defaults", settings.Values{Engine: testEngine, Theme: testDefault}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &tt.persisted, entries("alpha", testDefault), DefaultOptions(testEngine, ""))
			if err := f.sel.Load(); err != nil {
				t.Fatal(err)
			}
			if err := f.sel.ChooseTheme("alpha"); err != nil {
				t.Fatal(err)
			}

			f.sel.RestoreDefaults()

			if f.sel.Theme() != testDefault {
				t.Errorf("Theme() = %q, want default", f.sel.Theme())
			}
			if f.sel.NeedsSave() != tt.wantNeedsSave {
				t.Errorf("NeedsSave() = %v, want %v", f.sel.NeedsSave(), tt.wantNeedsSave)
			}
		})
	}
}

func TestDeriveEngine(t *testing.T) {
	sel := New(settings.NewStore(filepath.Join(t.TempDir(), "s.json"), settings.Values{}), catalog.NewModel(language.Und), nil, DefaultOptions(testEngine, ""), Callbacks{})

	if got := sel.DeriveEngine(catalog.NoneID); got != EngineNone {
		t.Errorf("DeriveEngine(None) = %q", got)
	}
	if got := sel.DeriveEngine("alpha"); got != testEngine {
		t.Errorf("DeriveEngine(alpha) = %q", got)
	}
}
