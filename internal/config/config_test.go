package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the test away from real config files and API keys.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "info", "")
	fs.String("lang", "en", "")
	fs.Uint64("seed", 0, "")
	fs.String("llm-provider", "", "")
	fs.String("llm-model", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.LLMEnabled(), "no provider without keys")
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("mathdrill.yaml", []byte(`
lang: es
log-level: warn
session-ttl: 30m
llm:
  provider: mock
`), 0o644))

	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Lang, "file value")
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "mock", cfg.LLM.Provider)

	t.Setenv("MATHDRILL_LOG_LEVEL", "debug")
	cfg, err = Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "env beats file")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--log-level", "error", "--seed", "42", "--llm-provider", "openai", "--llm-model", "gpt-4o"}))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err = Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey, "standard key variable picked up")
}

func TestLoad_DiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load(testFlags())
	require.NoError(t, err)
	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)

	t.Setenv("MATHDRILL_LLM_PROVIDER", "none")
	cfg, err = Load(testFlags())
	require.NoError(t, err)
	assert.False(t, cfg.LLMEnabled(), "\"none\" disables discovery")
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	isolate(t)
	t.Setenv("MATHDRILL_SESSION_TTL", "-5m")
	_, err := Load(nil)
	assert.Error(t, err)
}
