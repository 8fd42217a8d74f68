package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitbakery/devtool/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "bitbake", cfg.BitBake.Command)
	assert.Equal(t, "bitbake-getvar", cfg.BitBake.GetVarCommand)
	assert.Equal(t, "testimage", cfg.TestImage.Task)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "devtool.toml"))
	require.NoError(t, err)

	assert.Equal(t, "bitbake", cfg.BitBake.Command)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "devtool.toml")
	content := []byte("[bitbake]\ncommand = \"/opt/poky/bitbake\"\n")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/opt/poky/bitbake", cfg.BitBake.Command)
	// untouched keys keep their defaults
	assert.Equal(t, "testimage", cfg.TestImage.Task)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "devtool.toml")
	content := []byte("[bitbake]\ncommand = \"/opt/poky/bitbake\"\n")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	t.Setenv("DEVTOOL_BITBAKE_COMMAND", "/usr/local/bin/bitbake")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/bitbake", cfg.BitBake.Command)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "devtool.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("not [valid toml"), 0644))

	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}
