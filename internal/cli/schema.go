package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// Schema prints the configuration JSON schema to stdout, or writes it to
// outputPath when one is given.
func Schema(outputPath string) error {
	if outputPath == "" {
		fmt.Println(config.Schema())
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(config.Schema()+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
	}
	fmt.Printf("Schema written to %s\n", outputPath)
	return nil
}
