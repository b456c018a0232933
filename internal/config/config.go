// Package config holds splashctl's own configuration: where theme packages
// are searched for, which renderer previews them, and which theme is the
// built-in default. It is read from a YAML file and merged over defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName  = "splashctl"
	configFileName = "config.yaml"
	settingsName   = "settings.json"

	// DefaultPackageDir is the look-and-feel package root below each data dir.
	DefaultPackageDir = "plasma/look-and-feel"
	// DefaultRequiredAsset is the asset key every splash theme must provide.
	DefaultRequiredAsset = "splashmainscript"
	// DefaultTheme is the theme selected on a fresh install or after reset.
	DefaultTheme = "org.kde.breeze.desktop"
	// DefaultEngine is the engine id stored when any theme other than None is active.
	DefaultEngine = "KSplashQML"
	// DefaultRenderer is the executable that renders a theme in test mode.
	DefaultRenderer = "ksplashqml"
)

// Config is the splashctl configuration file.
type Config struct {
	// SearchRoots replaces the XDG data directories when non-empty.
	SearchRoots   []string `yaml:"search_roots,omitempty"`
	PackageDir    string   `yaml:"package_dir,omitempty"`
	RequiredAsset string   `yaml:"required_asset,omitempty"`
	DefaultTheme  string   `yaml:"default_theme,omitempty"`
	Engine        string   `yaml:"engine,omitempty"`
	Renderer      string   `yaml:"renderer,omitempty"`
	SettingsPath  string   `yaml:"settings_path,omitempty"`
	Notifications *bool    `yaml:"notifications,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	notifications := true
	return &Config{
		PackageDir:    DefaultPackageDir,
		RequiredAsset: DefaultRequiredAsset,
		DefaultTheme:  DefaultTheme,
		Engine:        DefaultEngine,
		Renderer:      DefaultRenderer,
		SettingsPath:  DefaultSettingsPath(),
		Notifications: &notifications,
	}
}

// Merge fills in missing values in partial from defaults.
// partial takes precedence; defaults fill gaps. SearchRoots is not merged:
// a non-empty list fully replaces the XDG lookup.
func Merge(partial, defaults *Config) *Config {
	result := *partial

	if len(result.SearchRoots) == 0 {
		result.SearchRoots = defaults.SearchRoots
	}
	if result.PackageDir == "" {
		result.PackageDir = defaults.PackageDir
	}
	if result.RequiredAsset == "" {
		result.RequiredAsset = defaults.RequiredAsset
	}
	if result.DefaultTheme == "" {
		result.DefaultTheme = defaults.DefaultTheme
	}
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.Renderer == "" {
		result.Renderer = defaults.Renderer
	}
	if result.SettingsPath == "" {
		result.SettingsPath = defaults.SettingsPath
	}
	if result.Notifications == nil {
		result.Notifications = defaults.Notifications
	}

	return &result
}

// NotificationsEnabled reports whether desktop notifications should be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// DataRoots returns the data directories to search, most specific first.
func (c *Config) DataRoots() []string {
	if len(c.SearchRoots) > 0 {
		return c.SearchRoots
	}
	return XDGDataDirs()
}

// ThemeRoots returns DataRoots joined with the package directory.
func (c *Config) ThemeRoots() []string {
	roots := c.DataRoots()
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		out = append(out, filepath.Join(r, c.PackageDir))
	}
	return out
}

// XDGDataDirs returns $XDG_DATA_HOME followed by $XDG_DATA_DIRS, with the
// XDG Base Directory defaults filled in.
func XDGDataDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, dataHome)
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	seen := map[string]bool{dataHome: true}
	for _, d := range strings.Split(dataDirs, string(os.PathListSeparator)) {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	return dirs
}

// Dir returns the splashctl config directory below $XDG_CONFIG_HOME.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), configDirName)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}

// DefaultSettingsPath returns the default persisted selection location.
func DefaultSettingsPath() string {
	return filepath.Join(Dir(), settingsName)
}
