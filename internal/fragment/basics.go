package fragment

import (
	"fmt"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// Basics extracts the working directory and model name from the host's
// stdin JSON. One combined jq invocation pulls both fields; when jq is
// absent the script falls back to literal defaults instead of failing.
type Basics struct{}

// Name implements Family.
func (Basics) Name() string { return "basics" }

// Utilities implements Family. The basics block needs no helpers.
func (Basics) Utilities(_ *config.Config) string { return "" }

// Data implements Family. Emitted whenever any feature needs the raw
// workspace directory, not only when directory/model are displayed: git
// and system caching key their files by it.
func (Basics) Data(cfg *config.Config) string {
	if !cfg.HasAny(config.FeatureDirectory, config.FeatureModel, config.FeatureGit) && !cfg.NeedsSystem() {
		return ""
	}

	return `# data: basics
workspace_directory="unknown"
model_display_name="Claude"
if [ -n "$(command -v jq)" ]; then
  basics_fields=$(printf '%s' "$statusline_input" | jq -r '[(.workspace.current_dir // .cwd // "unknown"), (.model.display_name // "Claude")] | @tsv' 2>/dev/null)
  if [ -n "$basics_fields" ]; then
    workspace_directory=$(printf '%s' "$basics_fields" | cut -f1)
    model_display_name=$(printf '%s' "$basics_fields" | cut -f2)
  fi
fi
if [ -z "$workspace_directory" ]; then workspace_directory="unknown"; fi
if [ -z "$model_display_name" ]; then model_display_name="Claude"; fi
current_directory="$workspace_directory"
case "$current_directory" in
  ("$HOME"*) current_directory="~${current_directory#"$HOME"}" ;;
esac
`
}

// directoryDisplay renders the working directory with the home prefix
// already abbreviated by the data block. The minimal theme shows only the
// last path element.
func directoryDisplay(cfg *config.Config) string {
	value := `$current_directory`
	if cfg.Theme == config.ThemeMinimal {
		value = `$(basename "$current_directory")`
	}

	return fmt.Sprintf(`# display: directory
if [ -n "$current_directory" ]; then
  printf '%%s%s%%s%%s ' "$(color 36)" "%s" "$(color_reset)"
fi
`, PrintfLiteral(glyph(cfg, "\U0001F4C1", "dir")), value)
}

// modelDisplay renders the model name.
func modelDisplay(cfg *config.Config) string {
	return fmt.Sprintf(`# display: model
if [ -n "$model_display_name" ]; then
  printf '%%s%s%%s%%s ' "$(color 35)" "$model_display_name" "$(color_reset)"
fi
`, PrintfLiteral(glyph(cfg, "\U0001F916", "model")))
}
