// Package errors provides structured error types for splashctl.
// These errors carry the operation that failed and a coarse category so the
// command layer can decide how to report them.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindConfig
	KindSettings
	KindDiscovery
	KindPreview
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindSettings:
		return "settings error"
	case KindDiscovery:
		return "discovery error"
	case KindPreview:
		return "preview error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for splashctl.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Theme errors
func ThemeNotFound(id string) error {
	return E(Op("catalog.Lookup"), KindNotFound, fmt.Sprintf("theme %s is not installed", id))
}

func ThemeAmbiguous(query string, matches int) error {
	return E(Op("catalog.Search"), KindInvalid, fmt.Sprintf("query %q matches %d themes", query, matches))
}

// Settings errors
func SettingsLoadFailed(path string, err error) error {
	return E(Op("settings.Load"), KindSettings, fmt.Sprintf("failed to load settings from %s", path), err)
}

func SettingsSaveFailed(path string, err error) error {
	return E(Op("settings.Save"), KindSettings, fmt.Sprintf("failed to save settings to %s", path), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Preview errors
func PreviewStartFailed(themeID string, err error) error {
	return E(Op("preview.Start"), KindPreview, fmt.Sprintf("failed to start renderer for theme %s", themeID), err)
}

func RendererNotFound(name string) error {
	return E(Op("process.Check"), KindNotFound, fmt.Sprintf("renderer '%s' not found in PATH", name))
}
