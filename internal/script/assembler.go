package script

import (
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/fragment"
)

// Stage ordering is the load-bearing invariant of assembly: render blocks
// read variables set by data blocks, data blocks call helpers defined by
// utility blocks, and every block may call the color helpers. The
// assembler walks a fixed linear sequence; the only branching is whether a
// stage contributes text at all.

var blankRuns = regexp.MustCompile(`\n{3,}`)

// assemble builds the full script text for cfg in the fixed stage order.
// Each stage contributes a non-empty string or nothing; contributions are
// joined with single newlines and runs of 3+ blank lines collapse to 2.
func (g *Generator) assemble(cfg *config.Config, useCache bool) (string, error) {
	header, err := renderHeader(cfg, g.version)
	if err != nil {
		return "", err
	}

	basics := fragment.Basics{}
	git := fragment.Git{}
	usage := fragment.Usage{}
	system := fragment.System{}

	parts := make([]string, 0, 24)
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	add(header)
	if cfg.LoggingEnabled {
		add(g.cached(useCache, cfg, "logging-setup", func() string { return fragment.LoggingSetup() }))
	}
	add(fragment.StdinRead())
	add(g.cached(useCache, cfg, "color-setup", func() string { return fragment.ColorSetup(cfg.ColorsEnabled) }))
	if needsRuntimeCache(cfg) {
		add(g.cached(useCache, cfg, "cache-setup", func() string { return fragment.CacheSetup() }))
	}

	// Utility blocks, deduplicated by content: a helper set referenced by
	// several features is still defined once.
	seen := make(map[string]bool, 4)
	addUtil := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		parts = append(parts, s)
	}
	addUtil(g.cached(useCache, cfg, "util-usage", func() string { return usage.Utilities(cfg) }))
	addUtil(g.cached(useCache, cfg, "util-git", func() string { return git.Utilities(cfg) }))
	addUtil(g.cached(useCache, cfg, "util-system", func() string { return system.Utilities(cfg) }))

	add(g.cached(useCache, cfg, "data-basics", func() string { return basics.Data(cfg) }))
	add(g.cached(useCache, cfg, "data-git", func() string { return git.Data(cfg) }))
	add(g.cached(useCache, cfg, "data-usage", func() string { return usage.Data(cfg) }))
	add(g.cached(useCache, cfg, "data-system", func() string { return system.Data(cfg) }))

	if cfg.LoggingEnabled {
		add(g.cached(useCache, cfg, "logging-output", func() string { return fragment.LoggingOutput() }))
	}

	// Render blocks in fixed visual priority order, each selected feature
	// exactly once.
	for _, f := range config.DisplayOrder {
		feature := f
		add(g.cached(useCache, cfg, "display-"+string(f), func() string { return fragment.Display(feature, cfg) }))
	}

	add(footer())

	return collapseBlankLines(strings.Join(parts, "\n")), nil
}

// needsRuntimeCache reports whether any selected feature embeds an on-disk
// runtime cache in the generated script.
func needsRuntimeCache(cfg *config.Config) bool {
	if cfg.Has(config.FeatureGit) || cfg.NeedsSystem() {
		return true
	}
	return cfg.NeedsUsage() && cfg.UsageIntegrationEnabled
}

// footer terminates the line and pins the exit status: a degraded run
// still exits 0 so the host never sees a failed render tick.
func footer() string {
	return `# end
printf '\n'
exit 0
`
}

func collapseBlankLines(s string) string {
	return blankRuns.ReplaceAllString(s, "\n\n")
}
