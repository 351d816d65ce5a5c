package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/statline/internal/cache"
	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/NikitaCOEUR/statline/internal/script"
	"github.com/NikitaCOEUR/statline/pkg/version"
)

// GenerateParams contains parameters for the Generate command
type GenerateParams struct {
	ConfigFlags
	// Output writes the script to a file instead of stdout.
	Output   string
	LogLevel string
}

// Generate builds the statusline script for the resolved configuration
// and writes it to stdout or the requested file.
func Generate(params GenerateParams) error {
	log := logger.New(params.LogLevel, nil)

	cfg, path, err := resolveConfig(params.ConfigFlags)
	if err != nil {
		return err
	}
	log.Debug().Str("config", path).Int("features", len(cfg.Features)).Msg("Configuration resolved")

	gen := script.New(cache.New(0), log, version.Version)
	text, err := gen.Generate(cfg)
	if err != nil {
		return err
	}

	if params.Output == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(params.Output, []byte(text), 0o755); err != nil {
		return fmt.Errorf("failed to write %s: %w", params.Output, err)
	}
	fmt.Printf("Script written to %s\n", params.Output)
	return nil
}
