package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// InitParams contains parameters for the Init command
type InitParams struct {
	// Dir is where the config file is created. Empty means the working
	// directory.
	Dir string
	// Force overwrites an existing config file.
	Force bool
}

// Init writes a commented sample configuration to .statline.yml.
func Init(params InitParams) error {
	dir := params.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	path := filepath.Join(dir, config.SupportedConfigNames[0])
	if _, err := os.Stat(path); err == nil && !params.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	sample, err := config.Sample()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Created %s\n", path)
	return nil
}
