package fragment

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// Usage integrates the ccusage CLI: cost, tokens, burn rate and the
// session-reset countdown all come from one combined query against the
// active block record. The underlying call is the single most expensive
// thing the generated script can do, so it runs under a hard 3 second
// timeout and a 30 second disk cache.
type Usage struct{}

// Name implements Family.
func (Usage) Name() string { return "usage" }

// usageCommand is the external call wrapped by the usage cache domain.
const usageCommand = `timeout 3 ccusage blocks --active --json 2>/dev/null`

// usageFilter extracts every consumed field in a single jq pass.
const usageFilter = `.blocks[0] | [(.costUSD // 0), (.burnRate.costPerHour // 0), (.totalTokens // 0), (.burnRate.tokensPerMinute // 0), (.startTime // ""), (.endTime // "")] | @tsv`

// Utilities implements Family. iso_to_epoch converts ISO8601 timestamps to
// epoch seconds via GNU date, then BSD date, then a perl one-liner, in that
// order. progress_bar renders the fixed-width session bar.
func (Usage) Utilities(cfg *config.Config) string {
	if !cfg.NeedsUsage() || !cfg.UsageIntegrationEnabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# utilities: usage\n")
	if cfg.Has(config.FeatureSession) {
		b.WriteString(`iso_to_epoch() {
  ie_epoch=$(date -d "$1" +%s 2>/dev/null)
  if [ -z "$ie_epoch" ]; then
    ie_clean=$(printf '%s' "$1" | cut -d. -f1 | sed 's/Z$//')
    ie_epoch=$(date -j -u -f '%Y-%m-%dT%H:%M:%S' "$ie_clean" +%s 2>/dev/null)
  fi
  if [ -z "$ie_epoch" ]; then
    ie_epoch=$(perl -MTime::Piece -e 'print Time::Piece->strptime((split /[.Z]/, $ARGV[0])[0], "%Y-%m-%dT%H:%M:%S")->epoch' "$1" 2>/dev/null)
  fi
  printf '%s' "$ie_epoch"
}
progress_bar() {
  pb_pct=$1
  pb_width=10
  if [ "$pb_pct" -gt 100 ]; then pb_pct=100; fi
  if [ "$pb_pct" -lt 0 ]; then pb_pct=0; fi
  pb_filled=$((pb_pct * pb_width / 100))
  pb_bar=""
  pb_i=0
  while [ "$pb_i" -lt "$pb_width" ]; do
    if [ "$pb_i" -lt "$pb_filled" ]; then
      pb_bar="${pb_bar}="
    else
      pb_bar="${pb_bar}-"
    fi
    pb_i=$((pb_i + 1))
  done
  printf '%s' "$pb_bar"
}
`)
	}
	return b.String()
}

// Data implements Family. One block serves usage, session, tokens and
// burnrate together; selecting several of those features never duplicates
// the collection work.
func (Usage) Data(cfg *config.Config) string {
	if !cfg.NeedsUsage() {
		return ""
	}

	var b strings.Builder
	b.WriteString(`# data: usage
cost_usd=""
cost_per_hour=""
total_tokens=""
burn_rate=""
session_pct=""
session_remaining_min=""
session_bar=""
`)
	if !cfg.UsageIntegrationEnabled {
		// Features stay selected but integration is off: variables keep
		// their safe defaults and displays render nothing.
		return b.String()
	}

	fmt.Fprintf(&b, `if [ -n "$(command -v ccusage)" ]; then
%sif [ -n "$usage_value" ] && [ -n "$(command -v jq)" ]; then
  usage_fields=$(printf '%%s' "$usage_value" | jq -r %s 2>/dev/null)
  if [ -n "$usage_fields" ]; then
    cost_usd=$(printf '%%s' "$usage_fields" | cut -f1)
    cost_per_hour=$(printf '%%s' "$usage_fields" | cut -f2)
    total_tokens=$(printf '%%s' "$usage_fields" | cut -f3)
    burn_rate=$(printf '%%s' "$usage_fields" | cut -f4)
    usage_block_start=$(printf '%%s' "$usage_fields" | cut -f5)
    usage_block_end=$(printf '%%s' "$usage_fields" | cut -f6)
  fi
fi
`, DomainUsage.Snippet(usageCommand), SingleQuote(usageFilter))

	if cfg.Has(config.FeatureSession) {
		b.WriteString(`if [ -n "${usage_block_start:-}" ] && [ -n "${usage_block_end:-}" ]; then
  session_start_epoch=$(iso_to_epoch "$usage_block_start")
  session_end_epoch=$(iso_to_epoch "$usage_block_end")
  session_now_epoch=$(date +%s)
  if [ -n "$session_start_epoch" ] && [ -n "$session_end_epoch" ] && [ "$session_end_epoch" -gt "$session_start_epoch" ]; then
    session_total=$((session_end_epoch - session_start_epoch))
    session_elapsed=$((session_now_epoch - session_start_epoch))
    if [ "$session_elapsed" -lt 0 ]; then session_elapsed=0; fi
    if [ "$session_elapsed" -gt "$session_total" ]; then session_elapsed=$session_total; fi
    session_pct=$((session_elapsed * 100 / session_total))
    session_remaining_min=$(((session_total - session_elapsed) / 60))
    session_bar=$(progress_bar "$session_pct")
  fi
fi
`)
	}

	b.WriteString("fi\n")
	return b.String()
}

// usageDisplay renders cost, with cost-per-hour added on the detailed
// theme. Values are checked for numeric plausibility before printf sees
// them so a malformed payload never prints a literal null.
func usageDisplay(cfg *config.Config) string {
	g := PrintfLiteral(glyph(cfg, "\U0001F4B0", "cost"))
	body := fmt.Sprintf(`printf '%%s%s$%%.2f%%s ' "$(color 33)" "$cost_usd" "$(color_reset)"`, g)
	if cfg.Theme == config.ThemeDetailed {
		body = fmt.Sprintf(`printf '%%s%s$%%.2f' "$(color 33)" "$cost_usd"
      case "$cost_per_hour" in
        ('') : ;;
        (*[!0-9.]*) : ;;
        (*) printf ' ($%%.2f/h)' "$cost_per_hour" ;;
      esac
      printf '%%s ' "$(color_reset)"`, g)
	}

	return fmt.Sprintf(`# display: usage
case "$cost_usd" in
  ('') : ;;
  (*[!0-9.]*) : ;;
  (*)
    %s
    ;;
esac
`, body)
}

// sessionDisplay renders the countdown bar. The compact theme drops the
// remaining-time suffix.
func sessionDisplay(cfg *config.Config) string {
	g := PrintfLiteral(glyph(cfg, "⏱", "session"))

	remaining := `
  if [ -n "$session_remaining_min" ]; then
    printf ' %sh%sm left' "$((session_remaining_min / 60))" "$((session_remaining_min % 60))"
  fi`
	if cfg.Theme == config.ThemeCompact || cfg.Theme == config.ThemeMinimal {
		remaining = ""
	}

	return fmt.Sprintf(`# display: session
if [ -n "$session_pct" ]; then
  printf '%%s%s[%%s] %%s%%%%' "$(color 36)" "$session_bar" "$session_pct"%s
  printf '%%s ' "$(color_reset)"
fi
`, g, remaining)
}

// tokensDisplay renders the total token count for the active block.
func tokensDisplay(cfg *config.Config) string {
	g := PrintfLiteral(glyph(cfg, "\U0001F3AB", "tok"))
	suffix := " tok"
	if cfg.Theme == config.ThemeCompact || cfg.Theme == config.ThemeMinimal {
		suffix = ""
	}

	return fmt.Sprintf(`# display: tokens
case "$total_tokens" in
  ('') : ;;
  (*[!0-9]*) : ;;
  (*) printf '%%s%s%%s%s%%s ' "$(color 34)" "$total_tokens" "$(color_reset)" ;;
esac
`, g, PrintfLiteral(suffix))
}

// burnRateDisplay renders tokens burned per minute.
func burnRateDisplay(cfg *config.Config) string {
	g := PrintfLiteral(glyph(cfg, "\U0001F525", "burn"))
	suffix := " tok/min"
	if cfg.Theme == config.ThemeCompact || cfg.Theme == config.ThemeMinimal {
		suffix = "/m"
	}

	return fmt.Sprintf(`# display: burnrate
case "$burn_rate" in
  ('') : ;;
  (*[!0-9.]*) : ;;
  (*) printf '%%s%s%%.0f%s%%s ' "$(color 31)" "$burn_rate" "$(color_reset)" ;;
esac
`, g, PrintfLiteral(suffix))
}
