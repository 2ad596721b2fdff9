package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/onepercent/pkg/errors"
)

const (
	// AppDir is the directory under the user config dir.
	AppDir = "onepercent"
	// FileName is the config file name.
	FileName = "config.toml"
)

// Load reads the file at path on top of Default and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the config file to load: explicit when given, otherwise the
// per-user file if it exists. An empty result means no file applies.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", explicit)
		}
		return explicit, nil
	}
	path, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/onepercent/config.toml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Resolve finds and loads the config, falling back to Default when no file
// applies.
func Resolve(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
