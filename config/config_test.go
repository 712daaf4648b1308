package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koru/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.StartHeight)
	assert.Equal(t, 1<<26, cfg.TooLarge)
	assert.False(t, cfg.DefaultFill)
}

func TestLoadEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("KORU_START_HEIGHT", "32")
	t.Setenv("KORU_TOO_LARGE", "1024")
	t.Setenv("KORU_DEFAULT_FILL", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.StartHeight)
	assert.Equal(t, 1024, cfg.TooLarge)
	assert.True(t, cfg.DefaultFill)
}

func TestLoadFileReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "koru.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_height: 64\ntoo_large: 2048\n"), 0o644))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.StartHeight)
	assert.Equal(t, 2048, cfg.TooLarge)
	assert.False(t, cfg.DefaultFill)
}

func TestLoadFileEnvironmentOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "koru.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_height: 64\n"), 0o644))
	t.Setenv("KORU_START_HEIGHT", "128")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.StartHeight)
}

func TestLoadFileMissingFileErrors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFileInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "koru.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_height: [1, 2\n"), 0o644))

	_, err := config.LoadFile(path)
	require.Error(t, err)
}
