package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".statline.yml")
	require.NoError(t, os.WriteFile(path, []byte("features: [git]\ntheme: compact\n"), 0o644))

	cfg, gotPath, err := resolveConfig(ConfigFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, []config.Feature{config.FeatureGit}, cfg.Features)
	assert.Equal(t, config.ThemeCompact, cfg.Theme)
}

func TestResolveConfig_MissingExplicitPath(t *testing.T) {
	_, _, err := resolveConfig(ConfigFlags{ConfigPath: "/no/such/.statline.yml"})
	assert.Error(t, err)
}

func TestResolveConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".statline.yml")
	require.NoError(t, os.WriteFile(path, []byte("features: [git]\ncolors: true\n"), 0o644))

	cfg, _, err := resolveConfig(ConfigFlags{
		ConfigPath: path,
		Features:   "directory, model,usage",
		Theme:      "MINIMAL",
		NoColors:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, []config.Feature{config.FeatureDirectory, config.FeatureModel, config.FeatureUsage}, cfg.Features)
	assert.Equal(t, config.ThemeMinimal, cfg.Theme)
	assert.False(t, cfg.ColorsEnabled)
}

func TestResolveConfig_InvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".statline.yml")
	require.NoError(t, os.WriteFile(path, []byte("features: [git]\n"), 0o644))

	_, _, err := resolveConfig(ConfigFlags{ConfigPath: path, Theme: "neon"})
	assert.Error(t, err)
}
