// Package cli implements the statline commands. Each command is a plain
// function taking a params struct so main stays thin and tests can drive
// commands directly.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/serrors"
)

// ConfigFlags carries the configuration-selection flags shared by the
// commands that generate a script.
type ConfigFlags struct {
	// ConfigPath is an explicit config file. Empty means discover one in
	// the working directory, falling back to defaults.
	ConfigPath string
	// Features overrides the config's feature list (comma-separated).
	Features string
	// Theme overrides the config's theme when non-empty.
	Theme string
	// NoColors forces colors off.
	NoColors bool
}

// resolveConfig loads, overrides and normalizes the configuration for a
// generation command. Returns the config and the path it came from (empty
// for built-in defaults).
func resolveConfig(flags ConfigFlags) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if flags.ConfigPath != "" {
		cfg, err = config.Load(flags.ConfigPath)
		path = flags.ConfigPath
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", wdErr)
		}
		cfg, path, err = config.Discover(wd)
	}
	if err != nil {
		return nil, "", err
	}

	if flags.Features != "" {
		features := make([]config.Feature, 0, 8)
		for _, f := range strings.Split(flags.Features, ",") {
			features = append(features, config.Feature(f))
		}
		cfg.Features = features
	}
	if flags.Theme != "" {
		cfg.Theme = flags.Theme
	}
	if flags.NoColors {
		cfg.ColorsEnabled = false
	}
	cfg.Normalize()

	if errs := config.CheckInvariants(cfg); len(errs) > 0 {
		first := errs[0]
		return nil, "", serrors.NewConfigError(first.Field, first.Message, nil)
	}

	return cfg, path, nil
}
