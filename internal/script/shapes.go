package script

import (
	"github.com/NikitaCOEUR/statline/internal/config"
)

// A small fixed set of feature-set shapes covers most real installations.
// Matching one of them routes assembly through the inline fast path, which
// skips per-fragment cache traffic entirely. Both paths must produce
// byte-identical output for the same configuration; the shape path is a
// performance shortcut, never a behavior change.

type shape struct {
	name     string
	features []config.Feature
}

// commonShapes holds the feature lists in normalized (sorted) order.
var commonShapes = []shape{
	{name: "basic", features: []config.Feature{
		config.FeatureDirectory, config.FeatureModel,
	}},
	{name: "standard", features: []config.Feature{
		config.FeatureDirectory, config.FeatureGit, config.FeatureModel,
	}},
	{name: "usage", features: []config.Feature{
		config.FeatureDirectory, config.FeatureGit, config.FeatureModel, config.FeatureUsage,
	}},
	{name: "full", features: []config.Feature{
		config.FeatureDirectory, config.FeatureGit, config.FeatureModel,
		config.FeatureSession, config.FeatureUsage,
	}},
}

// matchShape classifies a normalized configuration against the common
// shapes. Returns the shape name on a match.
func matchShape(cfg *config.Config) (string, bool) {
	for _, s := range commonShapes {
		if equalFeatures(cfg.Features, s.features) {
			return s.name, true
		}
	}
	return "", false
}

func equalFeatures(a, b []config.Feature) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
