// Package status collects and renders the current statline state: config
// discovery, install wiring and runtime cache health.
package status

import (
	"os"
	"path/filepath"
	"time"

	"github.com/NikitaCOEUR/statline/internal/config"
	"github.com/NikitaCOEUR/statline/internal/install"
)

// CacheFile describes one runtime cache file maintained by the generated
// script.
type CacheFile struct {
	Name string
	Size int64
	Age  time.Duration
}

// Data holds everything the status view renders.
type Data struct {
	Version string

	ConfigPath string
	Config     *config.Config

	ScriptPath      string
	ScriptInstalled bool
	ScriptSize      int64
	ScriptAge       time.Duration
	SettingsPath    string
	SettingsWired   bool

	RuntimeCacheDir string
	CacheFiles      []CacheFile
}

// Collect gathers status data for the given working directory and install
// locations. Collection never fails hard; missing pieces simply stay at
// their zero values.
func Collect(dir string, opts install.Options, version string) *Data {
	data := &Data{
		Version:      version,
		ScriptPath:   opts.ScriptPath,
		SettingsPath: opts.SettingsPath,
	}

	cfg, path, err := config.Discover(dir)
	if err == nil {
		data.Config = cfg
		data.ConfigPath = path
	}

	if info, err := os.Stat(opts.ScriptPath); err == nil {
		data.ScriptInstalled = true
		data.ScriptSize = info.Size()
		data.ScriptAge = time.Since(info.ModTime())
	}
	data.SettingsWired = install.IsInstalled(opts.SettingsPath, opts.ScriptPath)

	data.RuntimeCacheDir = RuntimeCacheDir()
	if entries, err := os.ReadDir(data.RuntimeCacheDir); err == nil {
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || entry.IsDir() {
				continue
			}
			data.CacheFiles = append(data.CacheFiles, CacheFile{
				Name: entry.Name(),
				Size: info.Size(),
				Age:  time.Since(info.ModTime()),
			})
		}
	}

	return data
}

// RuntimeCacheDir returns the directory the generated script caches into.
func RuntimeCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "statline")
}
