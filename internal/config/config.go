// Package config loads ddtrack settings from defaults, an optional
// config.yaml, DDTRACK_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "DDTRACK"
	appDir    = ".ddtrack"
)

// Config holds all runtime settings.
type Config struct {
	DB        DBConfig
	Log       LogConfig
	Risk      RiskConfig
	DueSoon   WindowConfig
	Deadlines WindowConfig
	HTTP      HTTPConfig
}

type DBConfig struct {
	Path string
}

type LogConfig struct {
	Level    string
	Encoding string
}

type RiskConfig struct {
	Threshold int
	Days      int
}

type WindowConfig struct {
	Days int
}

type HTTPConfig struct {
	Addr string
}

// Options controls where Load looks besides the defaults and environment.
type Options struct {
	// File is an explicit config file. When empty, config.yaml is searched
	// for in the working directory and ~/.ddtrack.
	File string
	// Flags are bound by name: "db" to db.path, "log-level" to log.level,
	// "addr" to http.addr. Missing flags are ignored.
	Flags *pflag.FlagSet
}

var flagKeys = map[string]string{
	"db":        "db.path",
	"log-level": "log.level",
	"addr":      "http.addr",
}

// DefaultDBPath returns ~/.ddtrack/ddtrack.db, or ./ddtrack.db when the
// home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ddtrack.db"
	}
	return filepath.Join(home, appDir, "ddtrack.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.path", DefaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("risk.threshold", 5)
	v.SetDefault("risk.days", 3)
	v.SetDefault("due_soon.days", 7)
	v.SetDefault("deadlines.days", 30)
	v.SetDefault("http.addr", "127.0.0.1:8080")
}

// Load resolves the configuration. Precedence, highest first: flags that
// were explicitly set, environment, config file, defaults.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, appDir))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	cfg.DB.Path = v.GetString("db.path")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Encoding = v.GetString("log.encoding")
	cfg.Risk.Threshold = v.GetInt("risk.threshold")
	cfg.Risk.Days = v.GetInt("risk.days")
	cfg.DueSoon.Days = v.GetInt("due_soon.days")
	cfg.Deadlines.Days = v.GetInt("deadlines.days")
	cfg.HTTP.Addr = v.GetString("http.addr")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("config: db.path must not be empty")
	}
	if c.Risk.Threshold < 1 {
		return fmt.Errorf("config: risk.threshold must be at least 1, got %d", c.Risk.Threshold)
	}
	for key, days := range map[string]int{
		"risk.days":      c.Risk.Days,
		"due_soon.days":  c.DueSoon.Days,
		"deadlines.days": c.Deadlines.Days,
	} {
		if days < 0 {
			return fmt.Errorf("config: %s must not be negative, got %d", key, days)
		}
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.encoding must be console or json, got %q", c.Log.Encoding)
	}
	return nil
}
