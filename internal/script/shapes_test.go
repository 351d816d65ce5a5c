package script

import (
	"testing"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMatchShape(t *testing.T) {
	tests := []struct {
		name     string
		features []config.Feature
		want     string
		ok       bool
	}{
		{"basic", []config.Feature{config.FeatureDirectory, config.FeatureModel}, "basic", true},
		{"standard", []config.Feature{config.FeatureGit, config.FeatureDirectory, config.FeatureModel}, "standard", true},
		{"usage", []config.Feature{config.FeatureUsage, config.FeatureModel, config.FeatureDirectory, config.FeatureGit}, "usage", true},
		{"full", []config.Feature{config.FeatureSession, config.FeatureUsage, config.FeatureDirectory, config.FeatureGit, config.FeatureModel}, "full", true},
		{"no match", []config.Feature{config.FeatureCPU}, "", false},
		{"superset", append([]config.Feature{config.FeatureTokens}, config.FeatureDirectory, config.FeatureModel), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.features...)
			name, ok := matchShape(cfg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestShapesAreNormalized(t *testing.T) {
	// Shape feature lists must stay in the same canonical order Normalize
	// produces, or matching silently stops working.
	for _, s := range commonShapes {
		cfg := testConfig(s.features...)
		assert.Equal(t, s.features, cfg.Features, "shape %s is not in normalized order", s.name)
	}
}

func TestGenerate_ShapePathEquivalence(t *testing.T) {
	// A shape-matched config routed through the inline path must produce
	// exactly what the cached path produces.
	for _, s := range commonShapes {
		cfg := testConfig(s.features...)

		g := testGenerator()
		inline, err := g.assemble(cfg, false)
		assert.NoError(t, err)
		cached, err := g.assemble(cfg, true)
		assert.NoError(t, err)
		assert.Equal(t, inline, cached, "shape %s", s.name)
	}
}
