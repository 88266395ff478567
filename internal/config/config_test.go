package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
placement = "bottom"
log_file = "/tmp/tmenu.log"

[keys]
advance = ["ctrl+l"]
accept_selected = ["ctrl+o", "alt+enter"]
`)

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom", cfg.Placement)
	assert.Equal(t, "/tmp/tmenu.log", cfg.LogFile)
	assert.Empty(t, cfg.Term)
	assert.Equal(t, []string{"ctrl+l"}, cfg.Keys.Advance)
	assert.Equal(t, []string{"ctrl+o", "alt+enter"}, cfg.Keys.AcceptSelected)
	assert.Nil(t, cfg.Keys.Retreat)
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `term = "vt100"`)

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Placement)
	assert.Equal(t, "vt100", cfg.Term)
}

func TestMalformedConfig(t *testing.T) {
	path := writeConfig(t, `placement = `)

	_, err := NewConfigService().LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	svc := NewConfigService()
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honoured on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "tmenu", "config.toml"), NewConfigService().Path())
}
