package catalog

import (
	"reflect"
	"testing"

	"golang.org/x/text/language"

	serrors "github.com/zhubert/splashctl/internal/errors"
)

func sampleCatalog() Catalog {
	return Catalog{
		NoneEntry(),
		{PluginID: "org.kde.breeze.desktop", DisplayName: "Breeze"},
		{PluginID: "org.kde.breezedark.desktop", DisplayName: "Breeze Dark"},
		{PluginID: "org.kde.oxygen", DisplayName: "Oxygen"},
		{PluginID: "com.example.aurora", DisplayName: "Aurora"},
	}
}

func TestNewModel_HoldsNone(t *testing.T) {
	m := NewModel(language.Und)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if idx, ok := m.IndexOf(NoneID); !ok || idx != 0 {
		t.Errorf("IndexOf(None) = %d, %v", idx, ok)
	}
}

func TestModel_ReplaceAll(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	want := []string{"None", "Aurora", "Breeze", "Breeze Dark", "Oxygen"}
	if got := m.Entries().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Replacing with a smaller catalog drops stale entries.
	m.ReplaceAll(Catalog{NoneEntry(), {PluginID: "x", DisplayName: "X"}})
	if got := m.Entries().IDs(); !reflect.DeepEqual(got, []string{"None", "x"}) {
		t.Errorf("IDs() after replace = %v", got)
	}
}

func TestModel_ReplaceAllPinsNone(t *testing.T) {
	tests := []struct {
		name string
		in   Catalog
	}{
		{"missing None", Catalog{{PluginID: "a", DisplayName: "A"}}},
		{"None not first", Catalog{{PluginID: "a", DisplayName: "A"}, NoneEntry()}},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(language.Und)
			m.ReplaceAll(tt.in)

			first, ok := m.EntryAt(0)
			if !ok || first.PluginID != NoneID {
				t.Fatalf("EntryAt(0) = %+v, %v", first, ok)
			}
			count := 0
			for _, e := range m.Entries() {
				if e.PluginID == NoneID {
					count++
				}
			}
			if count != 1 {
				t.Errorf("None appears %d times", count)
			}
		})
	}
}

func TestModel_EntriesIsCopy(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	entries := m.Entries()
	entries[1].DisplayName = "mutated"

	if e, _ := m.EntryAt(1); e.DisplayName == "mutated" {
		t.Error("Entries() exposed internal storage")
	}
}

func TestModel_EntryAtBounds(t *testing.T) {
	m := NewModel(language.Und)
	for _, i := range []int{-1, 1, 100} {
		if _, ok := m.EntryAt(i); ok {
			t.Errorf("EntryAt(%d) ok = true", i)
		}
	}
}

func TestModel_IndexOf(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	for i, e := range m.Entries() {
		idx, ok := m.IndexOf(e.PluginID)
		if !ok || idx != i {
			t.Errorf("IndexOf(%q) = %d, %v, want %d", e.PluginID, idx, ok, i)
		}
	}

	if _, ok := m.IndexOf("org.example.missing"); ok {
		t.Error("IndexOf(missing) ok = true")
	}
	if m.Contains("") {
		t.Error("Contains(\"\") = true")
	}
}

func TestModel_IndexOfDuplicate(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(Catalog{
		{PluginID: "dup", DisplayName: "One"},
		{PluginID: "dup", DisplayName: "Two"},
	})

	if idx, ok := m.IndexOf("dup"); ok {
		t.Errorf("IndexOf(dup) = %d, true; want not found", idx)
	}
	if m.Contains("dup") {
		t.Error("Contains(dup) = true")
	}
}

func TestModel_Search(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	if got := m.Search(""); got != nil {
		t.Errorf("Search(\"\") = %v, want nil", got)
	}
	if got := m.Search("zzzz"); len(got) != 0 {
		t.Errorf("Search(zzzz) = %v, want none", got)
	}

	got := m.Search("oxy")
	if len(got) != 1 {
		t.Fatalf("Search(oxy) = %v, want one match", got)
	}
	if e, _ := m.EntryAt(got[0]); e.PluginID != "org.kde.oxygen" {
		t.Errorf("Search(oxy) matched %q", e.PluginID)
	}
}

func TestModel_Resolve(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	tests := []struct {
		query  string
		wantID string
	}{
		{"org.kde.breeze.desktop", "org.kde.breeze.desktop"},
		{"None", NoneID},
		{"breeze dark", "org.kde.breezedark.desktop"},
		{"BREEZE", "org.kde.breeze.desktop"},
		{"aurora", "com.example.aurora"},
		{"oxy", "org.kde.oxygen"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			idx, err := m.Resolve(tt.query)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.query, err)
			}
			if e, _ := m.EntryAt(idx); e.PluginID != tt.wantID {
				t.Errorf("Resolve(%q) = %q, want %q", tt.query, e.PluginID, tt.wantID)
			}
		})
	}
}

func TestModel_ResolveErrors(t *testing.T) {
	m := NewModel(language.Und)
	m.ReplaceAll(sampleCatalog())

	if _, err := m.Resolve("zzzz"); serrors.GetKind(err) != serrors.KindNotFound {
		t.Errorf("Resolve(zzzz) kind = %v, want NotFound", serrors.GetKind(err))
	}
	if _, err := m.Resolve(""); serrors.GetKind(err) != serrors.KindNotFound {
		t.Errorf("Resolve(\"\") kind = %v, want NotFound", serrors.GetKind(err))
	}
}
