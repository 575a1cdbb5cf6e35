// Package config resolves settings from flags, MATHDRILL_* environment
// variables and an optional mathdrill.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/mathdrill/internal/llm"
)

// EnvPrefix prefixes every environment variable, e.g. MATHDRILL_LOG_LEVEL.
const EnvPrefix = "MATHDRILL"

// Config is the resolved configuration shared by all commands.
type Config struct {
	DB        string
	LogLevel  string
	LogFormat string
	Lang      string
	Seed      uint64

	Addr       string
	RedisURL   string
	SessionTTL time.Duration

	// ExplainCacheTTL bounds how long LLM explanations are reused.
	ExplainCacheTTL time.Duration

	LLM llm.Config
}

// flag name -> nested key, for settings grouped under "llm" in the file.
var nestedFlags = map[string]string{
	"llm-provider": "llm.provider",
	"llm-model":    "llm.model",
	"llm-api-key":  "llm.api-key",
	"llm-base-url": "llm.base-url",
	"llm-timeout":  "llm.timeout",
}

// New returns a viper instance bound to flags and the environment, with
// the config file read if one exists.
func New(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		_ = v.BindPFlags(flags)
		for name, key := range nestedFlags {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mathdrill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("lang", "en")
	v.SetDefault("addr", ":8080")
	v.SetDefault("session-ttl", 2*time.Hour)
	v.SetDefault("explain-cache-ttl", 30*24*time.Hour)
	v.SetDefault("llm.timeout", 20*time.Second)
}

// configDir is $XDG_CONFIG_HOME/mathdrill or ~/.config/mathdrill.
func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "mathdrill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mathdrill"), nil
}

// Load resolves the configuration for a command's flag set. When no LLM
// provider is configured, one is discovered from the standard API key
// variables.
func Load(flags *pflag.FlagSet) (Config, error) {
	return FromViper(New(flags))
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		DB:              v.GetString("db"),
		LogLevel:        v.GetString("log-level"),
		LogFormat:       v.GetString("log-format"),
		Lang:            v.GetString("lang"),
		Seed:            v.GetUint64("seed"),
		Addr:            v.GetString("addr"),
		RedisURL:        v.GetString("redis-url"),
		SessionTTL:      v.GetDuration("session-ttl"),
		ExplainCacheTTL: v.GetDuration("explain-cache-ttl"),
		LLM: llm.Config{
			Provider: strings.ToLower(v.GetString("llm.provider")),
			APIKey:   v.GetString("llm.api-key"),
			Model:    v.GetString("llm.model"),
			BaseURL:  v.GetString("llm.base-url"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
	}

	switch cfg.LLM.Provider {
	case "":
		if found, ok := llm.Discover(); ok {
			found.Timeout = cfg.LLM.Timeout
			if cfg.LLM.Model != "" {
				found.Model = cfg.LLM.Model
			}
			cfg.LLM = found
		}
	case "none", "off":
		cfg.LLM = llm.Config{}
	default:
		cfg.LLM = cfg.LLM.WithDefaults()
	}

	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("session-ttl must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

// LLMEnabled reports whether explanations may use a language model.
func (c Config) LLMEnabled() bool {
	return c.LLM.Provider != ""
}
