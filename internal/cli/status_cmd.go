package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/statline/internal/install"
	"github.com/NikitaCOEUR/statline/internal/status"
	"github.com/NikitaCOEUR/statline/pkg/version"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	// ScriptPath overrides the default install location.
	ScriptPath string
	// SettingsPath overrides the default settings file.
	SettingsPath string
}

// Status shows the current configuration, install state and runtime
// cache contents.
func Status(params StatusParams) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	opts := install.DefaultOptions()
	if params.ScriptPath != "" {
		opts.ScriptPath = params.ScriptPath
	}
	if params.SettingsPath != "" {
		opts.SettingsPath = params.SettingsPath
	}

	data := status.Collect(wd, opts, version.Version)
	fmt.Println(status.Render(data))
	return nil
}
