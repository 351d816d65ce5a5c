package script

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generated scripts must run cleanly even on hosts missing every optional
// tool (jq, git, ccusage): degraded output, exit 0.
func TestGeneratedScript_Executes(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	configs := map[string]*config.Config{
		"basic": testConfig(config.FeatureDirectory, config.FeatureModel),
		"full":  testConfig(config.DisplayOrder...),
	}
	noColors := testConfig(config.FeatureDirectory, config.FeatureGit)
	noColors.ColorsEnabled = false
	configs["no colors"] = noColors

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			text, err := testGenerator().Generate(cfg)
			require.NoError(t, err)

			result, err := preview.Run(context.Background(), text, preview.SampleInput())
			require.NoError(t, err)

			assert.True(t, result.Pass(), "exit %d, stderr: %s", result.ExitCode, result.Stderr)
			assert.True(t, strings.HasSuffix(result.Output, "\n"), "line is newline-terminated")
		})
	}
}

func TestGeneratedScript_SurvivesGarbageInput(t *testing.T) {
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	text, err := testGenerator().Generate(testConfig(config.FeatureDirectory, config.FeatureModel))
	require.NoError(t, err)

	result, err := preview.Run(context.Background(), text, []byte("not json at all"))
	require.NoError(t, err)
	assert.True(t, result.Pass(), "malformed input still exits 0, stderr: %s", result.Stderr)
}
