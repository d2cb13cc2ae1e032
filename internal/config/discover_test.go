package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/marquee/config.toml", DefaultPath())
}

func TestDefaultPath_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "marquee", "config.toml"))
}

func TestDiscover_EnvVar(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[server]"), 0644))
	t.Setenv("MARQUEE_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv("MARQUEE_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARQUEE_CONFIG")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDiscover_CurrentDir(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("MARQUEE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	require.NoError(t, os.WriteFile("config.toml", []byte("[server]"), 0644))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./config.toml", path)
}

func TestDiscover_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("MARQUEE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	require.NoError(t, WriteDefault(DefaultPath()))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, DefaultPath(), path)
}

func TestLoadOrDefault_NothingFound(t *testing.T) {
	if _, err := os.Stat("/etc/marquee/config.toml"); err == nil {
		t.Skip("system config present")
	}
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("MARQUEE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefault_ExplicitPath(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 9191\n")

	cfg, got, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 9191, cfg.Server.Port)
}
