package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	configDirName  = "hexview"
	configFileName = "config.toml"

	envColor = "HEXVIEW_COLOR"
)

// fileConfig holds the defaults that can be stored in the config file.
// Zero values mean "not configured".
type fileConfig struct {
	Width        int    `toml:"width"`
	BytesPerLine int    `toml:"bytes_per_line"`
	Color        string `toml:"color"`
}

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get the user configuration directory")
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// loadConfig reads path, or the default location when path is empty. Only a
// missing default file is tolerated.
func loadConfig(path string) (fileConfig, string, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return cfg, "", nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, "", nil
		}
		return cfg, path, errors.Wrap(err, "failed to open configuration file")
	}
	defer f.Close()

	decoder := toml.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, path, errors.Wrapf(err, "failed to decode %s", path)
	}

	if cfg.Width < 0 || cfg.BytesPerLine < 0 {
		return cfg, path, errors.Errorf("%s: width and bytes_per_line must not be negative", path)
	}

	return cfg, path, nil
}
