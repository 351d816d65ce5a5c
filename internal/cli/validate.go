package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	// ConfigPath is the file to validate. Empty means discover one in the
	// working directory.
	ConfigPath string
}

// Validate checks a config file against the schema and the range rules
// and prints every finding. Returns an error when the file is invalid.
func Validate(params ValidateParams) error {
	path := params.ConfigPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		for _, name := range config.SupportedConfigNames {
			candidate := filepath.Join(wd, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return fmt.Errorf("no config file found in %s", wd)
		}
	}

	result, err := config.Validate(path)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Printf("✓ %s is valid\n", path)
		return nil
	}

	fmt.Printf("✗ %s has %d problem(s):\n", path, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Printf("  %s: %s\n", e.Field, e.Message)
	}
	return fmt.Errorf("validation failed")
}
