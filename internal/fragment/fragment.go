package fragment

import (
	"github.com/NikitaCOEUR/statline/internal/config"
)

// Family generates the utility and data-collection blocks shared by a
// group of related features. Disabled families contribute empty strings;
// the assembler skips those without emitting blank lines.
type Family interface {
	// Name identifies the family in stage comments and cache contexts.
	Name() string
	// Utilities returns idempotent helper function definitions. Included
	// at most once per script even when several features reference them.
	Utilities(cfg *config.Config) string
	// Data returns the data-collection block. It must set well-defined
	// variables with empty or zero defaults on any failure; an absent
	// external tool never aborts the script.
	Data(cfg *config.Config) string
}

// StdinRead returns the single stdin-read statement. The host writes one
// JSON object per invocation; every data block reads from this variable
// instead of re-reading the pipe.
func StdinRead() string {
	return "statusline_input=$(cat)\n"
}

// Display returns the render block for one feature, or an empty string
// when the feature is not selected. Features sharing one data block
// (usage, session, tokens, burnrate) still get individual render blocks.
func Display(f config.Feature, cfg *config.Config) string {
	if !cfg.Has(f) {
		return ""
	}
	switch f {
	case config.FeatureDirectory:
		return directoryDisplay(cfg)
	case config.FeatureGit:
		return gitDisplay(cfg)
	case config.FeatureModel:
		return modelDisplay(cfg)
	case config.FeatureCPU:
		return cpuDisplay(cfg)
	case config.FeatureMemory:
		return memoryDisplay(cfg)
	case config.FeatureLoad:
		return loadDisplay(cfg)
	case config.FeatureUsage:
		return usageDisplay(cfg)
	case config.FeatureSession:
		return sessionDisplay(cfg)
	case config.FeatureTokens:
		return tokensDisplay(cfg)
	case config.FeatureBurnRate:
		return burnRateDisplay(cfg)
	default:
		// Unrecognized tags are inert rather than an error.
		return ""
	}
}

// glyph returns the segment prefix: an emoji when colors are on and custom
// emojis are off, otherwise a plain label.
func glyph(cfg *config.Config, emoji, label string) string {
	if cfg.UseEmoji() {
		return emoji + " "
	}
	return label + ":"
}
