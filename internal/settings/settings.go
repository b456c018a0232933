// Package settings persists the splash screen selection: the theme plugin id
// and the engine that renders it at boot. The Store keeps an in-memory copy
// next to the last persisted copy so callers can ask whether a save is
// needed, and notifies listeners whenever a field changes value.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	serrors "github.com/zhubert/splashctl/internal/errors"
)

// Field names a persisted setting.
type Field string

const (
	FieldEngine Field = "engine"
	FieldTheme  Field = "theme"
)

// Values is the persisted record.
type Values struct {
	Engine string `json:"engine"`
	Theme  string `json:"theme"`
}

// Store is a JSON-file backed settings record.
type Store struct {
	mu        sync.RWMutex
	current   Values
	persisted Values
	defaults  Values
	filePath  string
	listeners []func(Field)
}

// NewStore creates a store for path. Until Load is called it holds defaults.
func NewStore(path string, defaults Values) *Store {
	return &Store{
		current:   defaults,
		persisted: defaults,
		defaults:  defaults,
		filePath:  path,
	}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.filePath
}

// OnChange registers fn to be called after a field changes value.
func (s *Store) OnChange(fn func(Field)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load reads the settings file. A missing file yields the defaults; missing
// fields inside an existing file are filled from the defaults.
func (s *Store) Load() error {
	loaded := s.defaults

	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return serrors.SettingsLoadFailed(s.filePath, err)
	default:
		var v Values
		if err := json.Unmarshal(data, &v); err != nil {
			return serrors.SettingsLoadFailed(s.filePath, err)
		}
		if v.Engine != "" {
			loaded.Engine = v.Engine
		}
		if v.Theme != "" {
			loaded.Theme = v.Theme
		}
	}

	s.mu.Lock()
	changed := diff(s.current, loaded)
	s.current = loaded
	s.persisted = loaded
	s.mu.Unlock()

	s.notify(changed)
	return nil
}

// Save writes the in-memory values to disk.
func (s *Store) Save() error {
	s.mu.RLock()
	values := s.current
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return serrors.SettingsSaveFailed(s.filePath, err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return serrors.SettingsSaveFailed(s.filePath, err)
	}

	// Write to a sibling file and rename so a crash never leaves a torn record.
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return serrors.SettingsSaveFailed(s.filePath, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return serrors.SettingsSaveFailed(s.filePath, err)
	}

	s.mu.Lock()
	s.persisted = values
	s.mu.Unlock()
	return nil
}

// SetDefaults replaces the in-memory values with the defaults. It does not
// write to disk.
func (s *Store) SetDefaults() {
	s.mu.Lock()
	changed := diff(s.current, s.defaults)
	s.current = s.defaults
	s.mu.Unlock()

	s.notify(changed)
}

// IsSaveNeeded reports whether the in-memory values differ from disk.
func (s *Store) IsSaveNeeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != s.persisted
}

// Defaults returns the values SetDefaults applies.
func (s *Store) Defaults() Values {
	return s.defaults
}

// Values returns the in-memory record.
func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Theme returns the in-memory theme id.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Theme
}

// SetTheme sets the in-memory theme id.
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	if s.current.Theme == theme {
		s.mu.Unlock()
		return
	}
	s.current.Theme = theme
	s.mu.Unlock()

	s.notify([]Field{FieldTheme})
}

// Engine returns the in-memory engine id.
func (s *Store) Engine() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Engine
}

// SetEngine sets the in-memory engine id.
func (s *Store) SetEngine(engine string) {
	s.mu.Lock()
	if s.current.Engine == engine {
		s.mu.Unlock()
		return
	}
	s.current.Engine = engine
	s.mu.Unlock()

	s.notify([]Field{FieldEngine})
}

func (s *Store) notify(fields []Field) {
	if len(fields) == 0 {
		return
	}
	s.mu.RLock()
	listeners := make([]func(Field), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, f := range fields {
		for _, fn := range listeners {
			fn(f)
		}
	}
}

func diff(a, b Values) []Field {
	var fields []Field
	if a.Engine != b.Engine {
		fields = append(fields, FieldEngine)
	}
	if a.Theme != b.Theme {
		fields = append(fields, FieldTheme)
	}
	return fields
}
