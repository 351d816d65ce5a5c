package fragment

// ColorSetup returns the color helper block. With colors enabled the block
// detects terminal capability (NO_COLOR and FORCE_COLOR take precedence,
// then a deny-list of dumb terminal types) and defines the ANSI helpers
// every display fragment calls. With colors disabled the same helpers are
// defined as no-op stubs so display fragments stay identical either way.
//
// color_for_pct implements the three-tier threshold coloring: green below
// the configured threshold, yellow at or above it, red at or above 110% of
// it. The critical tier is derived with integer arithmetic to keep results
// identical across platforms.
func ColorSetup(enabled bool) string {
	if !enabled {
		return `# color setup (disabled)
color() { :; }
color_reset() { :; }
color_for_pct() { :; }
`
	}

	return `# color setup
use_color=0
if [ -n "${FORCE_COLOR:-}" ]; then
  use_color=1
elif [ -n "${NO_COLOR:-}" ]; then
  use_color=0
else
  case "${TERM:-}" in
    (dumb|unknown|"") use_color=0 ;;
    (*) use_color=1 ;;
  esac
fi
color() {
  if [ "$use_color" -eq 1 ]; then
    printf '\033[%sm' "$1"
  fi
}
color_reset() {
  color 0
}
color_for_pct() {
  cfp_value=$1
  cfp_threshold=$2
  cfp_critical=$((cfp_threshold * 110 / 100))
  if [ "$cfp_value" -ge "$cfp_critical" ]; then
    color 31
  elif [ "$cfp_value" -ge "$cfp_threshold" ]; then
    color 33
  else
    color 32
  fi
}
`
}
