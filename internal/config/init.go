package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the default config.yaml content with every key commented out.
const Template = `# splashctl configuration
#
# Every key is optional; commented values are the built-in defaults.

# Data directories searched for theme packages. When empty, $XDG_DATA_HOME
# and $XDG_DATA_DIRS are used.
# search_roots:
#   - /usr/share

# package_dir: plasma/look-and-feel      # Package root below each data directory
# required_asset: splashmainscript       # Asset a package must provide to be listed
# default_theme: org.kde.breeze.desktop  # Theme restored by "splashctl defaults"
# engine: KSplashQML                     # Engine stored for every theme except None
# renderer: ksplashqml                   # Executable used by "splashctl preview"
# settings_path: ""                      # Defaults to settings.json next to this file
# notifications: true                    # Desktop notification when a preview fails
`

// WriteTemplate writes Template to path, creating parent directories.
// Returns an error if the file already exists.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
