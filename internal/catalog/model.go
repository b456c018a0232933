package catalog

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"

	serrors "github.com/zhubert/splashctl/internal/errors"
	"github.com/zhubert/splashctl/internal/logger"
)

// Model is the in-memory catalog that selection code looks entries up in.
// It is only ever replaced wholesale.
type Model struct {
	entries Catalog
	lang    language.Tag
	log     *slog.Logger
}

// NewModel returns a model holding only the None entry.
func NewModel(lang language.Tag) *Model {
	return &Model{
		entries: Catalog{NoneEntry()},
		lang:    lang,
		log:     logger.ComponentLogger("catalog"),
	}
}

// ReplaceAll clears the model and repopulates it from c. The None entry is
// pinned first (added when c lacks it) and the rest is resorted.
func (m *Model) ReplaceAll(c Catalog) {
	entries := make(Catalog, 0, len(c)+1)
	entries = append(entries, NoneEntry())
	for _, e := range c {
		if e.PluginID == NoneID {
			entries[0] = e
			continue
		}
		entries = append(entries, e)
	}
	sortByName(entries[1:], m.lang)
	m.entries = entries
}

// Len returns the number of entries, including None.
func (m *Model) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the catalog.
func (m *Model) Entries() Catalog {
	out := make(Catalog, len(m.entries))
	copy(out, m.entries)
	return out
}

// EntryAt returns the entry at position i.
func (m *Model) EntryAt(i int) (ThemeEntry, bool) {
	if i < 0 || i >= len(m.entries) {
		return ThemeEntry{}, false
	}
	return m.entries[i], true
}

// IndexOf returns the position of the entry with the given plugin id. It
// reports false unless exactly one entry matches; more than one match is a
// data integrity fault and is logged.
func (m *Model) IndexOf(pluginID string) (int, bool) {
	idx, matches := -1, 0
	for i, e := range m.entries {
		if e.PluginID == pluginID {
			if matches == 0 {
				idx = i
			}
			matches++
		}
	}
	if matches > 1 {
		m.log.Error("duplicate plugin id in catalog", "id", pluginID, "matches", matches)
		return -1, false
	}
	return idx, matches == 1
}

// Contains reports whether pluginID resolves to exactly one entry.
func (m *Model) Contains(pluginID string) bool {
	_, ok := m.IndexOf(pluginID)
	return ok
}

// searchSource adapts the catalog to fuzzy.Source, matching on the display
// name followed by the plugin id.
type searchSource Catalog

func (s searchSource) String(i int) string {
	return s[i].DisplayName + " " + s[i].PluginID
}

func (s searchSource) Len() int {
	return len(s)
}

// Search returns the positions of entries fuzzily matching query, best match
// first. An empty query matches nothing.
func (m *Model) Search(query string) []int {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, searchSource(m.entries))
	out := make([]int, len(matches))
	for i, match := range matches {
		out[i] = match.Index
	}
	return out
}

// Resolve maps user input to a catalog position. An exact plugin id wins,
// then a case-insensitive display name, then the single best fuzzy match.
func (m *Model) Resolve(query string) (int, error) {
	if idx, ok := m.IndexOf(query); ok {
		return idx, nil
	}

	nameIdx, nameMatches := -1, 0
	for i, e := range m.entries {
		if strings.EqualFold(e.DisplayName, query) {
			nameIdx = i
			nameMatches++
		}
	}
	if nameMatches == 1 {
		return nameIdx, nil
	}

	if strings.TrimSpace(query) == "" {
		return -1, serrors.ThemeNotFound(query)
	}
	matches := fuzzy.FindFrom(query, searchSource(m.entries))
	switch {
	case len(matches) == 0:
		return -1, serrors.ThemeNotFound(query)
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return matches[0].Index, nil
	default:
		return -1, serrors.ThemeAmbiguous(query, len(matches))
	}
}
