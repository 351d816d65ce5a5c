package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("statline v%s", data.Version)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Configuration"))
	b.WriteString("\n")
	if data.ConfigPath != "" {
		b.WriteString(row("File", data.ConfigPath))
	} else {
		b.WriteString(row("File", warningStyle.Render("none (using defaults)")))
	}
	if data.Config != nil {
		features := make([]string, 0, len(data.Config.Features))
		for _, f := range data.Config.Features {
			features = append(features, string(f))
		}
		b.WriteString(row("Features", strings.Join(features, ", ")))
		b.WriteString(row("Theme", data.Config.Theme))
		b.WriteString(row("Colors", boolMark(data.Config.ColorsEnabled)))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Installation"))
	b.WriteString("\n")
	if data.ScriptInstalled {
		b.WriteString(row("Script", fmt.Sprintf("%s (%d bytes, %s old)",
			data.ScriptPath, data.ScriptSize, humanAge(data.ScriptAge))))
	} else {
		b.WriteString(row("Script", warningStyle.Render("not installed")))
	}
	b.WriteString(row("Settings", wiredMark(data.SettingsWired, data.SettingsPath)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Runtime cache"))
	b.WriteString("\n")
	b.WriteString(row("Directory", data.RuntimeCacheDir))
	if len(data.CacheFiles) == 0 {
		b.WriteString(row("Files", "none"))
	}
	for _, f := range data.CacheFiles {
		b.WriteString(row(f.Name, fmt.Sprintf("%d bytes, %s old", f.Size, humanAge(f.Age))))
	}

	return b.String()
}

func row(key, value string) string {
	return fmt.Sprintf("  %s %s\n", keyStyle.Render(key+":"), valueStyle.Render(value))
}

func boolMark(v bool) string {
	if v {
		return successStyle.Render("enabled")
	}
	return "disabled"
}

func wiredMark(wired bool, path string) string {
	if wired {
		return successStyle.Render("wired") + " (" + path + ")"
	}
	return warningStyle.Render("not wired") + " (" + path + ")"
}

func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	}
}
