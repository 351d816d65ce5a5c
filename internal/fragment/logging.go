package fragment

// LoggingSetup returns the debug-log preparation block, emitted right
// after the header when logging is enabled.
func LoggingSetup() string {
	return `# debug logging
statline_log_file="${XDG_CACHE_HOME:-$HOME/.cache}/statline/statusline.log"
mkdir -p "$(dirname "$statline_log_file")" 2>/dev/null
`
}

// LoggingOutput returns the block appending one JSON debug entry per run.
// Emitted after the data-collection stages so collected values are
// available. Input text is routed through jq when available so embedded
// quotes cannot corrupt the log; without jq only the scalar fields are
// written.
func LoggingOutput() string {
	return `# debug logging output
if [ -n "$(command -v jq)" ]; then
  printf '%s' "$statusline_input" | jq -c --arg ts "$(date +%s)" --arg dir "${workspace_directory:-}" --arg model "${model_display_name:-}" '{ts: $ts, dir: $dir, model: $model, input: .}' >> "$statline_log_file" 2>/dev/null
else
  printf '{"ts":"%s","dir":"%s","model":"%s"}\n' "$(date +%s)" "${workspace_directory:-}" "${model_display_name:-}" >> "$statline_log_file" 2>/dev/null
fi
`
}
