package config

import (
	"os"

	"gopkg.in/yaml.v3"

	serrors "github.com/zhubert/splashctl/internal/errors"
)

// Load reads and parses the config file at path.
// Returns nil, nil if the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, serrors.ConfigLoadFailed(path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, serrors.ConfigLoadFailed(path, err)
	}

	return &cfg, nil
}

// LoadAndMerge loads the config file, merges it over the defaults, and
// validates the result. If no file exists, the defaults are returned.
func LoadAndMerge(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	if cfg == nil {
		return defaults, nil
	}

	merged := Merge(cfg, defaults)
	if errs := Validate(merged); len(errs) > 0 {
		return nil, serrors.ConfigInvalid(errs[0].Error())
	}
	return merged, nil
}
