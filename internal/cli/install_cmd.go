package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/statline/internal/cache"
	"github.com/NikitaCOEUR/statline/internal/install"
	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/NikitaCOEUR/statline/internal/script"
	"github.com/NikitaCOEUR/statline/pkg/version"
)

// InstallParams contains parameters for the Install command
type InstallParams struct {
	ConfigFlags
	// ScriptPath overrides the default install location.
	ScriptPath string
	// SettingsPath overrides the default settings file.
	SettingsPath string
	// Uninstall removes the script and settings wiring instead.
	Uninstall bool
	LogLevel  string
}

// Install generates the script, writes it to its install location and
// wires the host settings at it. With Uninstall set it reverses both.
func Install(params InstallParams) error {
	log := logger.New(params.LogLevel, nil)

	opts := install.DefaultOptions()
	if params.ScriptPath != "" {
		opts.ScriptPath = params.ScriptPath
	}
	if params.SettingsPath != "" {
		opts.SettingsPath = params.SettingsPath
	}

	if params.Uninstall {
		result, err := install.Uninstall(opts)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", result.ScriptPath)
		if result.SettingsUpdated {
			fmt.Printf("Unwired %s (backup: %s)\n", result.SettingsPath, result.BackupPath)
		}
		return nil
	}

	cfg, path, err := resolveConfig(params.ConfigFlags)
	if err != nil {
		return err
	}
	log.Debug().Str("config", path).Msg("Configuration resolved")

	gen := script.New(cache.New(0), log, version.Version)
	text, err := gen.Generate(cfg)
	if err != nil {
		return err
	}

	result, err := install.Install(text, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Script installed to %s\n", result.ScriptPath)
	if result.SettingsUpdated {
		fmt.Printf("Settings updated: %s\n", result.SettingsPath)
		if result.BackupPath != "" {
			fmt.Printf("Backup saved: %s\n", result.BackupPath)
		}
	} else {
		fmt.Printf("Settings already wired: %s\n", result.SettingsPath)
	}
	return nil
}
