package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/status"
)

// CleanParams contains parameters for the Clean command
type CleanParams struct {
	// All removes every runtime cache file; default keeps files younger
	// than their longest TTL and removes only statline-owned entries.
	All bool
}

// Clean removes runtime cache files written by the generated script.
func Clean(params CleanParams) error {
	dir := status.RuntimeCacheDir()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		fmt.Println("Runtime cache is empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Cache files are named <domain>[_<hash>].cache by the script.
		if !params.All && !strings.HasSuffix(entry.Name(), ".cache") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}

	if removed == 0 {
		fmt.Println("Runtime cache is empty")
		return nil
	}
	fmt.Printf("Removed %d cache file(s) from %s\n", removed, dir)
	return nil
}
