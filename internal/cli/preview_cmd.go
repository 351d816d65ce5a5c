package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/cache"
	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/NikitaCOEUR/statline/internal/preview"
	"github.com/NikitaCOEUR/statline/internal/script"
	"github.com/NikitaCOEUR/statline/pkg/version"
)

// PreviewParams contains parameters for the Preview command
type PreviewParams struct {
	ConfigFlags
	// InputPath supplies the stdin JSON from a file instead of the
	// built-in sample payload.
	InputPath string
	LogLevel  string
}

// Preview generates the script, runs it once with a sample host payload
// and reports the rendered line with timing. A failing or timed-out run
// is an error; exceeding the soft budget is only a warning.
func Preview(ctx context.Context, params PreviewParams) error {
	log := logger.New(params.LogLevel, nil)

	cfg, _, err := resolveConfig(params.ConfigFlags)
	if err != nil {
		return err
	}

	gen := script.New(cache.New(0), log, version.Version)
	text, err := gen.Generate(cfg)
	if err != nil {
		return err
	}

	input := preview.SampleInput()
	if params.InputPath != "" {
		input, err = os.ReadFile(params.InputPath)
		if err != nil {
			return fmt.Errorf("failed to read input %s: %w", params.InputPath, err)
		}
	}

	result, err := preview.Run(ctx, text, input)
	if err != nil {
		return err
	}

	if !result.Pass() {
		if result.TimedOut {
			return fmt.Errorf("preview timed out after %s", preview.HardTimeout)
		}
		if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
			log.Error().Str("stderr", stderr).Msg("Script failed")
		}
		return fmt.Errorf("script exited with code %d", result.ExitCode)
	}

	fmt.Println(strings.TrimRight(result.Output, "\n"))
	fmt.Printf("\nRendered in %.1fms", float64(result.Duration.Microseconds())/1000.0)
	if !result.WithinBudget() {
		fmt.Printf(" (over the %s budget)", preview.SoftBudget)
	}
	fmt.Println()
	return nil
}
