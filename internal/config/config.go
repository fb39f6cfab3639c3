package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Port         string   `yaml:"port"`
	RulesPath    string   `yaml:"rulesPath"`
	RulesVersion string   `yaml:"rulesVersion"`
	CartDir      string   `yaml:"cartDir"`
	LogLevel     string   `yaml:"logLevel"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

func Default() Config {
	return Config{
		Port:         "8080",
		RulesPath:    "rules",
		RulesVersion: "v1",
		CartDir:      "data/carts",
		LogLevel:     "info",
		AllowOrigins: []string{"*"},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("VINYLSTORE_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("VINYLSTORE_RULES"); v != "" {
		c.RulesPath = v
	}
	if v := os.Getenv("VINYLSTORE_RULES_VERSION"); v != "" {
		c.RulesVersion = v
	}
	if v := os.Getenv("VINYLSTORE_CART_DIR"); v != "" {
		c.CartDir = v
	}
	if v := os.Getenv("VINYLSTORE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Logger builds the production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
