package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper() {
	viper.Reset()
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.CaseInsensitive)
	assert.False(t, cfg.Entropy)
	assert.Equal(t, 0, cfg.Verbosity)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	resetViper()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err) // an explicit, non-existent path is a read error
	_ = cfg
}

func TestLoadConfigFromFile(t *testing.T) {
	resetViper()

	content := `
entropy: true
case_insensitive: true
since_commit: abc123
verbosity: 2
`
	path := filepath.Join(t.TempDir(), "secrethog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Entropy)
	assert.True(t, cfg.CaseInsensitive)
	assert.Equal(t, "abc123", cfg.SinceCommit)
	assert.Equal(t, 2, cfg.Verbosity)
}
