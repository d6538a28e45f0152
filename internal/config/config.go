// Package config loads circuitz settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/llm"
	"github.com/abhisek/circuitz/internal/logging"
)

// Config is the full settings tree. Every section has usable defaults, so
// an empty or missing file is valid.
type Config struct {
	// DB is the event database path. Empty uses store.DefaultDBPath.
	DB string `yaml:"db"`

	LLM     llm.Config     `yaml:"llm"`
	Explain explain.Config `yaml:"explain"`
	Log     logging.Config `yaml:"log"`
	Server  ServerConfig   `yaml:"server"`
}

// ServerConfig configures `circuitz serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

func Default() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Explain: explain.DefaultConfig(),
		Log:     logging.DefaultConfig(),
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// Path resolves the config file: explicit, then CIRCUITZ_CONFIG, then
// $XDG_CONFIG_HOME/circuitz/config.yaml (or ~/.config/circuitz/config.yaml).
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("CIRCUITZ_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "circuitz", "config.yaml"), nil
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays CIRCUITZ_* environment variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()
	if v := os.Getenv("CIRCUITZ_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("CIRCUITZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CIRCUITZ_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks struct tags across all sections. The LLM key is not
// required here; a missing key only disables explanations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
