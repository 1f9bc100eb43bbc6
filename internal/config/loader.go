package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for hwcompose configuration.
const envPrefix = "HWCOMPOSE"

var keys = []string{KeyCatalogs, KeyModules, KeyTargets, KeyOutput, KeyJobs, KeyTimestamps}

// Loader reads the config file and HWCOMPOSE_* environment variables.
// Environment variables take precedence over file values.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		_ = v.BindEnv(key, envName(key))
	}
	return &Loader{v: v}
}

// envName returns the environment variable bound to key.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load loads configuration from configFile, or from the default location
// when empty. A missing file is not an error. Relative description paths
// are anchored at the config file's directory.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := configPath(configFile)
	if err != nil {
		return nil, err
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.sources = make(map[string]ConfigSource)
	for _, key := range keys {
		switch {
		case os.Getenv(envName(key)) != "":
			cfg.sources[key] = SourceEnv
		case l.v.InConfig(key):
			cfg.sources[key] = SourceConfig
		}
	}

	dir := filepath.Dir(expandedPath)
	for _, f := range []struct {
		key  string
		list []string
	}{{KeyCatalogs, cfg.Catalogs}, {KeyModules, cfg.Modules}, {KeyTargets, cfg.Targets}} {
		// Paths from the environment are relative to the working directory.
		base := dir
		if cfg.Source(f.key) == SourceEnv {
			base = ""
		}
		for i, p := range f.list {
			if f.list[i], err = resolveRelative(base, p); err != nil {
				return nil, err
			}
		}
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// ConfigFileExists reports whether the config file is present.
func ConfigFileExists(configFile string) (bool, error) {
	path, err := configPath(configFile)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// configPath expands configFile, falling back to the default location.
func configPath(configFile string) (string, error) {
	if configFile == "" {
		def, err := GetConfigFile()
		if err != nil {
			return "", fmt.Errorf("getting config file path: %w", err)
		}
		configFile = def
	}
	path, err := ExpandPath(configFile)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return path, nil
}
