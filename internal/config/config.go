// Package config handles loading, validation and normalization of
// statusline generator configuration.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Feature identifies one statusline segment the generated script can render.
type Feature string

// Known features, in display priority order.
const (
	FeatureDirectory Feature = "directory"
	FeatureGit       Feature = "git"
	FeatureModel     Feature = "model"
	FeatureCPU       Feature = "cpu"
	FeatureMemory    Feature = "memory"
	FeatureLoad      Feature = "load"
	FeatureUsage     Feature = "usage"
	FeatureSession   Feature = "session"
	FeatureTokens    Feature = "tokens"
	FeatureBurnRate  Feature = "burnrate"
)

// DisplayOrder is the fixed visual priority of features in the rendered line.
var DisplayOrder = []Feature{
	FeatureDirectory,
	FeatureGit,
	FeatureModel,
	FeatureCPU,
	FeatureMemory,
	FeatureLoad,
	FeatureUsage,
	FeatureSession,
	FeatureTokens,
	FeatureBurnRate,
}

// Themes supported by display fragments.
const (
	ThemeMinimal  = "minimal"
	ThemeDetailed = "detailed"
	ThemeCompact  = "compact"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".statline.yml",
	".statline.yaml",
	".statline.toml",
	".statline.json",
}

// SystemMonitoring holds thresholds for the cpu/memory/load features.
type SystemMonitoring struct {
	RefreshRateSeconds int     `koanf:"refresh_rate_seconds"`
	CPUThresholdPct    int     `koanf:"cpu_threshold_pct"`
	MemoryThresholdPct int     `koanf:"memory_threshold_pct"`
	LoadThreshold      float64 `koanf:"load_threshold"`
}

// Config is the generator's sole input.
type Config struct {
	Features                []Feature         `koanf:"features"`
	ColorsEnabled           bool              `koanf:"colors"`
	Theme                   string            `koanf:"theme"`
	UsageIntegrationEnabled bool              `koanf:"usage_integration"`
	LoggingEnabled          bool              `koanf:"logging"`
	CustomEmojisEnabled     bool              `koanf:"custom_emojis"`
	SystemMonitoring        *SystemMonitoring `koanf:"system_monitoring"`
}

// defaultConfig is merged under any loaded file so every field has a value.
var defaultConfig = []byte(`
features:
  - directory
  - git
  - model
colors: true
theme: detailed
usage_integration: true
logging: false
custom_emojis: false
`)

// Default returns the built-in default configuration.
func Default() *Config {
	cfg, _ := parse(nil, "")
	return cfg
}

// Load reads a configuration file, merging it over built-in defaults.
// The parser is selected by file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return parse(data, path)
}

// Discover looks for a supported config file in dir and loads it.
// Returns the default config and an empty path when none exists.
func Discover(dir string) (*Config, string, error) {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			return cfg, path, err
		}
	}
	return Default(), "", nil
}

func parse(data []byte, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if data != nil {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Normalize()
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return kyaml.Parser(), nil
	case ".toml":
		return ktoml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}

// Has reports whether a feature is selected.
func (c *Config) Has(f Feature) bool {
	for _, have := range c.Features {
		if have == f {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the given features is selected.
func (c *Config) HasAny(features ...Feature) bool {
	for _, f := range features {
		if c.Has(f) {
			return true
		}
	}
	return false
}

// NeedsUsage reports whether the usage data-collection block is required.
// usage, session, tokens and burnrate all read from the same block.
func (c *Config) NeedsUsage() bool {
	return c.HasAny(FeatureUsage, FeatureSession, FeatureTokens, FeatureBurnRate)
}

// NeedsSystem reports whether any system metric feature is selected.
func (c *Config) NeedsSystem() bool {
	return c.HasAny(FeatureCPU, FeatureMemory, FeatureLoad)
}

// UseEmoji reports whether display fragments should emit emoji glyphs.
// Plain label prefixes are used when colors are off or custom emojis are on.
func (c *Config) UseEmoji() bool {
	return c.ColorsEnabled && !c.CustomEmojisEnabled
}

// Normalize sorts and deduplicates the feature list, lowercases the theme
// and fills monitoring defaults when a system feature is selected. Feature
// order never affects generation semantics, so a canonical order keeps
// cache keys stable.
func (c *Config) Normalize() {
	seen := make(map[Feature]bool, len(c.Features))
	features := make([]Feature, 0, len(c.Features))
	for _, f := range c.Features {
		f = Feature(strings.ToLower(strings.TrimSpace(string(f))))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	c.Features = features

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = ThemeDetailed
	}

	if c.NeedsSystem() {
		if c.SystemMonitoring == nil {
			c.SystemMonitoring = &SystemMonitoring{}
		}
		m := c.SystemMonitoring
		if m.RefreshRateSeconds == 0 {
			m.RefreshRateSeconds = 5
		}
		if m.CPUThresholdPct == 0 {
			m.CPUThresholdPct = 80
		}
		if m.MemoryThresholdPct == 0 {
			m.MemoryThresholdPct = 80
		}
		if m.LoadThreshold == 0 {
			m.LoadThreshold = 2.0
		}
	}
}

// Hash returns a short deterministic hash of the full configuration.
// Two configs that normalize identically share a hash; any differing
// style flag produces a different one.
func (c *Config) Hash() string {
	var b strings.Builder
	for _, f := range c.Features {
		b.WriteString(string(f))
		b.WriteByte(',')
	}
	fmt.Fprintf(&b, "|colors=%t|theme=%s|usage=%t|logging=%t|emojis=%t",
		c.ColorsEnabled, c.Theme, c.UsageIntegrationEnabled, c.LoggingEnabled, c.CustomEmojisEnabled)
	if c.SystemMonitoring != nil {
		m := c.SystemMonitoring
		fmt.Fprintf(&b, "|mon=%d:%d:%d:%.2f",
			m.RefreshRateSeconds, m.CPUThresholdPct, m.MemoryThresholdPct, m.LoadThreshold)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
