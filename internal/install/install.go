// Package install writes the generated script to disk and wires it into
// the host's settings file. The script is an opaque blob here; nothing in
// this package inspects its content.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NikitaCOEUR/statline/internal/serrors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Options selects the install destinations.
type Options struct {
	// ScriptPath is where the statusline script lands.
	ScriptPath string
	// SettingsPath is the host settings JSON to update.
	SettingsPath string
}

// Result reports what an install changed.
type Result struct {
	ScriptPath      string
	SettingsPath    string
	SettingsUpdated bool
	BackupPath      string
}

// DefaultOptions returns the conventional host locations.
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	return Options{
		ScriptPath:   filepath.Join(home, ".claude", "statusline.sh"),
		SettingsPath: filepath.Join(home, ".claude", "settings.json"),
	}
}

// Install writes scriptText to opts.ScriptPath with exec permission and
// points the settings statusLine block at it. The script write is atomic
// (temp file then rename) and the settings file is backed up before any
// modification. Unknown settings keys survive untouched.
func Install(scriptText string, opts Options) (*Result, error) {
	if err := writeScript(opts.ScriptPath, scriptText); err != nil {
		return nil, err
	}

	result := &Result{
		ScriptPath:   opts.ScriptPath,
		SettingsPath: opts.SettingsPath,
	}

	updated, backup, err := wireSettings(opts.SettingsPath, opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	result.SettingsUpdated = updated
	result.BackupPath = backup

	return result, nil
}

// Uninstall removes the statusLine block from settings and deletes the
// script file. Missing pieces are skipped silently.
func Uninstall(opts Options) (*Result, error) {
	result := &Result{
		ScriptPath:   opts.ScriptPath,
		SettingsPath: opts.SettingsPath,
	}

	if data, err := os.ReadFile(opts.SettingsPath); err == nil {
		if gjson.GetBytes(data, "statusLine").Exists() {
			backup, err := backupFile(opts.SettingsPath, data)
			if err != nil {
				return nil, err
			}
			result.BackupPath = backup

			next, err := sjson.DeleteBytes(data, "statusLine")
			if err != nil {
				return nil, serrors.NewInstallError(opts.SettingsPath, "failed to remove statusLine settings", err)
			}
			if err := os.WriteFile(opts.SettingsPath, next, 0o600); err != nil {
				return nil, serrors.NewInstallError(opts.SettingsPath, "failed to write settings", err)
			}
			result.SettingsUpdated = true
		}
	}

	if err := os.Remove(opts.ScriptPath); err != nil && !os.IsNotExist(err) {
		return nil, serrors.NewInstallError(opts.ScriptPath, "failed to remove script", err)
	}

	return result, nil
}

// IsInstalled reports whether settings point at path.
func IsInstalled(settingsPath, scriptPath string) bool {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return false
	}
	cmd := gjson.GetBytes(data, "statusLine.command")
	return cmd.Exists() && cmd.String() == scriptPath
}

func writeScript(path, text string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return serrors.NewInstallError(path, "failed to create script directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".statusline-*.tmp")
	if err != nil {
		return serrors.NewInstallError(path, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return serrors.NewInstallError(path, "failed to write script", err)
	}
	if err := tmp.Chmod(0o755); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return serrors.NewInstallError(path, "failed to set script permissions", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return serrors.NewInstallError(path, "failed to close script file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return serrors.NewInstallError(path, "failed to move script into place", err)
	}
	return nil
}

// wireSettings points statusLine.command at scriptPath, preserving every
// other settings key byte for byte.
func wireSettings(settingsPath, scriptPath string) (updated bool, backupPath string, err error) {
	data, readErr := os.ReadFile(settingsPath)
	if readErr != nil {
		if !os.IsNotExist(readErr) {
			return false, "", serrors.NewInstallError(settingsPath, "failed to read settings", readErr)
		}
		data = []byte("{}\n")
	}

	current := gjson.GetBytes(data, "statusLine.command")
	currentType := gjson.GetBytes(data, "statusLine.type")
	if current.String() == scriptPath && currentType.String() == "command" {
		return false, "", nil
	}

	if readErr == nil {
		backupPath, err = backupFile(settingsPath, data)
		if err != nil {
			return false, "", err
		}
	}

	next, err := sjson.SetBytes(data, "statusLine.type", "command")
	if err != nil {
		return false, "", serrors.NewInstallError(settingsPath, "failed to update settings", err)
	}
	next, err = sjson.SetBytes(next, "statusLine.command", scriptPath)
	if err != nil {
		return false, "", serrors.NewInstallError(settingsPath, "failed to update settings", err)
	}

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		return false, "", serrors.NewInstallError(settingsPath, "failed to create settings directory", err)
	}
	if err := os.WriteFile(settingsPath, next, 0o600); err != nil {
		return false, "", serrors.NewInstallError(settingsPath, "failed to write settings", err)
	}

	return true, backupPath, nil
}

func backupFile(path string, data []byte) (string, error) {
	backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", serrors.NewInstallError(path, "failed to back up settings", err)
	}
	return backup, nil
}
