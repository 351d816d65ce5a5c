// Package script assembles feature fragments into one coherent statusline
// script, optimizes the result and caches whole scripts by configuration
// hash. Generation is a pure, synchronous text transform: the generator
// never touches the filesystem or spawns processes, it only emits code
// that might.
package script

import (
	"github.com/NikitaCOEUR/statline/internal/cache"
	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/NikitaCOEUR/statline/internal/serrors"
	"github.com/NikitaCOEUR/statline/internal/timing"
)

// Generator owns the memory cache and the optimizer. Construct one per
// process; there is no ambient singleton, which keeps tests isolated.
type Generator struct {
	cache     *cache.Cache
	optimizer *Optimizer
	log       *logger.Logger
	version   string
}

// New creates a generator. A nil cache gets a default-capacity one.
func New(c *cache.Cache, log *logger.Logger, version string) *Generator {
	if c == nil {
		c = cache.New(0)
	}
	return &Generator{
		cache:     c,
		optimizer: NewOptimizer(log),
		log:       log,
		version:   version,
	}
}

// Cache exposes the memory cache for status reporting.
func (g *Generator) Cache() *cache.Cache {
	return g.cache
}

// Optimizer exposes the optimizer so callers can toggle passes.
func (g *Generator) Optimizer() *Optimizer {
	return g.optimizer
}

// Generate produces the complete script text for cfg. A warmed cache
// returns the previously generated-and-optimized script verbatim,
// bypassing fragment work, assembly and optimization.
func (g *Generator) Generate(cfg *config.Config) (string, error) {
	if cfg == nil || len(cfg.Features) == 0 {
		return "", serrors.NewConfigError("features", "refusing to generate a script for an empty feature set", nil)
	}

	timer := timing.NewTimer()
	key := cache.Key(cache.TypeScript, cfg.Hash())

	if text, ok := g.cache.Get(key); ok {
		g.log.Debug().Str("key", key).Msg("Whole-script cache hit")
		return text, nil
	}

	var (
		assembled string
		err       error
	)
	if name, ok := matchShape(cfg); ok {
		// Inline fast path for common shapes: same stages, no
		// per-fragment cache traffic.
		g.log.Debug().Str("shape", name).Msg("Common configuration shape matched")
		assembled, err = g.assemble(cfg, false)
	} else {
		assembled, err = g.assemble(cfg, true)
	}
	if err != nil {
		return "", serrors.NewGenerationError("assemble", "failed to assemble script", err)
	}
	timer.Mark("assemble")

	optimized := g.optimizer.Optimize(assembled)
	timer.Mark("optimize")

	g.cache.Set(key, optimized, cache.TypeScript)

	g.log.Debug().
		Int("bytes", len(optimized)).
		Str("timing", timer.Summary()).
		Msg("Script generated")

	return optimized, nil
}

// cached wraps a fragment generation with a memory-cache lookup keyed by
// stage and configuration hash. With use=false the fragment is generated
// directly; output is identical either way.
func (g *Generator) cached(use bool, cfg *config.Config, stage string, fn func() string) string {
	if !use {
		return fn()
	}
	key := cache.Key(cache.TypeFragment, stage+"|"+cfg.Hash())
	if text, ok := g.cache.Get(key); ok {
		return text
	}
	text := fn()
	g.cache.Set(key, text, cache.TypeFragment)
	return text
}
