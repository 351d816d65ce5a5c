package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// sampleHeader is prepended to generated sample config files.
const sampleHeader = `# statline configuration
# Statusline segments and style for the generated script.
# Features: directory, git, model, usage, session, tokens, burnrate, cpu, memory, load
# Themes: minimal, detailed, compact
`

// sampleConfig mirrors Config with yaml tags for sample file generation.
type sampleConfig struct {
	Features         []Feature               `yaml:"features"`
	Colors           bool                    `yaml:"colors"`
	Theme            string                  `yaml:"theme"`
	UsageIntegration bool                    `yaml:"usage_integration"`
	Logging          bool                    `yaml:"logging"`
	CustomEmojis     bool                    `yaml:"custom_emojis"`
	SystemMonitoring *sampleSystemMonitoring `yaml:"system_monitoring,omitempty"`
}

type sampleSystemMonitoring struct {
	RefreshRateSeconds int     `yaml:"refresh_rate_seconds"`
	CPUThresholdPct    int     `yaml:"cpu_threshold_pct"`
	MemoryThresholdPct int     `yaml:"memory_threshold_pct"`
	LoadThreshold      float64 `yaml:"load_threshold"`
}

// Sample renders a commented sample configuration file with usage and
// session features enabled on top of the defaults.
func Sample() (string, error) {
	sample := sampleConfig{
		Features: []Feature{
			FeatureDirectory,
			FeatureGit,
			FeatureModel,
			FeatureUsage,
			FeatureSession,
		},
		Colors:           true,
		Theme:            ThemeDetailed,
		UsageIntegration: true,
	}

	data, err := yaml.Marshal(&sample)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(sampleHeader)
	b.Write(data)
	return b.String(), nil
}
