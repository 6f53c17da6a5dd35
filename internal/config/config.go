package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "JOBTRACK"

type Config struct {
	DataPath string `mapstructure:"data_path"`
	Log      struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"` // a path, "stderr" or "off"
	} `mapstructure:"log"`
	Photos struct {
		MaxBytes int64 `mapstructure:"max_bytes"`
		Workers  int   `mapstructure:"workers"`
	} `mapstructure:"photos"`
}

// Dir is where the database, log and default config file live
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".jobtrack"), nil
}

// Load reads configuration from file (optional), environment and defaults.
// An empty path looks for config.yaml in Dir; an explicit path must exist.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("data_path", filepath.Join(dir, "jobtrack.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "jobtrack.log"))
	v.SetDefault("photos.max_bytes", 3<<20)
	v.SetDefault("photos.workers", 4)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Photos.MaxBytes <= 0 {
		return nil, fmt.Errorf("photos.max_bytes must be positive")
	}
	if cfg.Photos.Workers <= 0 {
		return nil, fmt.Errorf("photos.workers must be positive")
	}
	return &cfg, nil
}
