package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs so a
// developer's own config.yaml never leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ddtrack", "ddtrack.db"), cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, 5, cfg.Risk.Threshold)
	assert.Equal(t, 3, cfg.Risk.Days)
	assert.Equal(t, 7, cfg.DueSoon.Days)
	assert.Equal(t, 30, cfg.Deadlines.Days)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
}

func TestLoad_FileThenEnvThenFlags(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "ddtrack.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
db:
  path: /data/file.db
risk:
  threshold: 8
log:
  encoding: json
`), 0o600))

	t.Setenv("DDTRACK_RISK_THRESHOLD", "4")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--db", "/data/flag.db"}))

	cfg, err := Load(Options{File: file, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "/data/flag.db", cfg.DB.Path, "explicit flag wins")
	assert.Equal(t, 4, cfg.Risk.Threshold, "env beats file")
	assert.Equal(t, "json", cfg.Log.Encoding, "file beats default")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("due_soon:\n  days: 14\n"), 0o600))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.DueSoon.Days)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(Options{File: filepath.Join(dir, "absent.yaml")})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			DB:        DBConfig{Path: "x.db"},
			Log:       LogConfig{Level: "info", Encoding: "console"},
			Risk:      RiskConfig{Threshold: 5, Days: 3},
			DueSoon:   WindowConfig{Days: 7},
			Deadlines: WindowConfig{Days: 30},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db path", func(c *Config) { c.DB.Path = " " }},
		{"zero threshold", func(c *Config) { c.Risk.Threshold = 0 }},
		{"negative window", func(c *Config) { c.DueSoon.Days = -1 }},
		{"bad encoding", func(c *Config) { c.Log.Encoding = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	ok := base()
	assert.NoError(t, ok.Validate())
}
