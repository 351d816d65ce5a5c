package script

import (
	"strings"
	"testing"

	"github.com/NikitaCOEUR/statline/internal/cache"
	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/serrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	return New(cache.New(0), testLogger(), "test")
}

func testConfig(features ...config.Feature) *config.Config {
	cfg := &config.Config{
		Features:                features,
		ColorsEnabled:           true,
		Theme:                   config.ThemeDetailed,
		UsageIntegrationEnabled: true,
	}
	cfg.Normalize()
	return cfg
}

func TestGenerate_EmptyFeatures(t *testing.T) {
	g := testGenerator()

	_, err := g.Generate(&config.Config{})
	require.Error(t, err)
	var cfgErr *serrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = g.Generate(nil)
	assert.Error(t, err)
}

func TestGenerate_Header(t *testing.T) {
	g := testGenerator()
	text, err := g.Generate(testConfig(config.FeatureDirectory, config.FeatureGit))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "#!/bin/bash\n"))
	assert.Contains(t, text, "statline vtest")
	assert.Contains(t, text, "features: directory, git")
	assert.Contains(t, text, "theme: detailed")
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := testConfig(config.DisplayOrder...)

	a, err := testGenerator().Generate(cfg)
	require.NoError(t, err)
	b, err := testGenerator().Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same config must yield byte-identical scripts")
}

func TestGenerate_FeatureOrderIrrelevant(t *testing.T) {
	a := testConfig(config.FeatureGit, config.FeatureDirectory, config.FeatureModel)
	b := testConfig(config.FeatureModel, config.FeatureGit, config.FeatureDirectory)

	textA, err := testGenerator().Generate(a)
	require.NoError(t, err)
	textB, err := testGenerator().Generate(b)
	require.NoError(t, err)

	assert.Equal(t, textA, textB)
}

func TestGenerate_EachDisplayExactlyOnce(t *testing.T) {
	g := testGenerator()
	text, err := g.Generate(testConfig(config.DisplayOrder...))
	require.NoError(t, err)

	for _, f := range config.DisplayOrder {
		marker := "# display: " + string(f)
		assert.Equal(t, 1, strings.Count(text, marker), "display block for %s", f)
	}
}

func TestGenerate_DisplayOrder(t *testing.T) {
	g := testGenerator()
	text, err := g.Generate(testConfig(config.FeatureUsage, config.FeatureDirectory, config.FeatureGit))
	require.NoError(t, err)

	dir := strings.Index(text, "# display: directory")
	git := strings.Index(text, "# display: git")
	usage := strings.Index(text, "# display: usage")
	require.True(t, dir >= 0 && git >= 0 && usage >= 0)
	assert.Less(t, dir, git, "directory renders before git")
	assert.Less(t, git, usage, "git renders before usage")
}

func TestGenerate_StageOrder(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureDirectory, config.FeatureGit, config.FeatureSession, config.FeatureCPU)
	cfg.LoggingEnabled = true
	text, err := g.Generate(cfg)
	require.NoError(t, err)

	// The optimizer renames statusline_input to input
	stdin := strings.Index(text, "input=$(cat)")
	colors := strings.Index(text, "# color setup")
	cacheSetup := strings.Index(text, "# runtime cache setup")
	utils := strings.Index(text, "# utilities: usage")
	data := strings.Index(text, "# data: basics")
	display := strings.Index(text, "# display: directory")
	footer := strings.Index(text, "# end")

	for name, idx := range map[string]int{
		"stdin": stdin, "colors": colors, "cache": cacheSetup,
		"utils": utils, "data": data, "display": display, "footer": footer,
	} {
		require.GreaterOrEqual(t, idx, 0, "missing stage %s", name)
	}
	assert.Less(t, stdin, colors)
	assert.Less(t, colors, cacheSetup)
	assert.Less(t, cacheSetup, utils)
	assert.Less(t, utils, data)
	assert.Less(t, data, display)
	assert.Less(t, display, footer)
	assert.True(t, strings.HasSuffix(text, "exit 0\n"))
}

func TestGenerate_TextuallyBalanced(t *testing.T) {
	configs := []*config.Config{
		testConfig(config.FeatureDirectory, config.FeatureModel),
		testConfig(config.DisplayOrder...),
		testConfig(config.FeatureSession, config.FeatureUsage, config.FeatureGit),
	}
	configs[1].LoggingEnabled = true
	minimal := testConfig(config.DisplayOrder...)
	minimal.Theme = config.ThemeMinimal
	minimal.ColorsEnabled = false
	configs = append(configs, minimal)

	for _, cfg := range configs {
		text, err := testGenerator().Generate(cfg)
		require.NoError(t, err)

		assert.Zero(t, strings.Count(text, `"`)%2, "double quotes must pair up")
		assert.Equal(t, strings.Count(text, "{"), strings.Count(text, "}"))
		assert.Equal(t, strings.Count(text, "("), strings.Count(text, ")"))
		assert.NotContains(t, text, "`")
	}
}

func TestGenerate_OptimizedIdioms(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureDirectory, config.FeatureCPU)
	cfg.Theme = config.ThemeMinimal
	cfg.LoggingEnabled = true
	text, err := g.Generate(cfg)
	require.NoError(t, err)

	// Fragments emit verbose idioms; the optimizer rewrites them
	assert.NotContains(t, text, `[ -n "$(command -v `)
	assert.Contains(t, text, "command -v jq >/dev/null 2>&1")
	assert.NotContains(t, text, "$(dirname ")
	assert.NotContains(t, text, "$(basename ")
	assert.Contains(t, text, "${cur_dir##*/}")
	assert.NotContains(t, text, "| head -1")
	assert.Contains(t, text, "grep -m1 Cpu")
}

func TestGenerate_CriticalNamesSurvive(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureGit, config.FeatureSession, config.FeatureCPU)
	text, err := g.Generate(cfg)
	require.NoError(t, err)

	for _, name := range criticalNames {
		assert.Contains(t, text, name, "critical name %s must survive optimization", name)
	}
	assert.Contains(t, text, "timeout 3 ccusage")
}

func TestGenerate_WholeScriptCache(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureDirectory, config.FeatureCPU, config.FeatureTokens)

	first, err := g.Generate(cfg)
	require.NoError(t, err)
	second, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	stats := g.Cache().Stats()
	assert.GreaterOrEqual(t, stats.Hits, 1, "second generation should hit the whole-script cache")
}

func TestGenerate_NoRuntimeCacheWithoutCachedFeatures(t *testing.T) {
	g := testGenerator()
	text, err := g.Generate(testConfig(config.FeatureDirectory, config.FeatureModel))
	require.NoError(t, err)

	assert.NotContains(t, text, "STATLINE_CACHE_DIR", "no cached feature, no runtime cache setup")
}

func TestGenerate_IntegrationOffSkipsRuntimeCache(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureUsage, config.FeatureTokens)
	cfg.UsageIntegrationEnabled = false
	text, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.NotContains(t, text, "STATLINE_CACHE_DIR")
	assert.NotContains(t, text, "ccusage")
	// Displays still render safely off their empty defaults
	assert.Contains(t, text, "# display: usage")
	assert.Contains(t, text, "# display: tokens")
}

func TestGenerate_ThresholdEmbedding(t *testing.T) {
	g := testGenerator()
	cfg := testConfig(config.FeatureCPU)
	cfg.SystemMonitoring.CPUThresholdPct = 75
	text, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, text, `color_for_pct "$cpu_pct" 75`)
	// Critical tier computed in-script with integer arithmetic
	assert.Contains(t, text, "cfp_threshold * 110 / 100")
}

func TestGenerate_NoBlankRuns(t *testing.T) {
	g := testGenerator()
	text, err := g.Generate(testConfig(config.DisplayOrder...))
	require.NoError(t, err)

	assert.NotContains(t, text, "\n\n\n")
}
