package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// reservedThemeID is the catalog id of the disabled-splash entry.
const reservedThemeID = "None"

// ValidationError describes a single validation problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a merged Config and returns all problems found.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	switch cfg.DefaultTheme {
	case "":
		errs = append(errs, ValidationError{Field: "default_theme", Message: "default theme is required"})
	case reservedThemeID:
		errs = append(errs, ValidationError{Field: "default_theme", Message: fmt.Sprintf("%q is reserved for the disabled splash screen", reservedThemeID)})
	}

	if strings.TrimSpace(cfg.Renderer) == "" {
		errs = append(errs, ValidationError{Field: "renderer", Message: "renderer is required"})
	}

	if cfg.Engine == "" {
		errs = append(errs, ValidationError{Field: "engine", Message: "engine is required"})
	} else if strings.EqualFold(cfg.Engine, "none") {
		errs = append(errs, ValidationError{Field: "engine", Message: `"none" is stored automatically when the None theme is selected`})
	}

	if cfg.PackageDir == "" || filepath.IsAbs(cfg.PackageDir) {
		errs = append(errs, ValidationError{Field: "package_dir", Message: "package directory must be a relative path"})
	}

	for i, root := range cfg.SearchRoots {
		if !filepath.IsAbs(root) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("search_roots[%d]", i),
				Message: fmt.Sprintf("%q is not an absolute path", root),
			})
		}
	}

	return errs
}
