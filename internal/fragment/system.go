package fragment

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// System collects CPU, memory and load metrics. The platform string is
// detected once and disk-cached for an hour; each platform branch has a
// primary extraction method and fallbacks tried in order. Every numeric
// output passes validation and bounds clamping before anything trusts it.
type System struct{}

// Name implements Family.
func (System) Name() string { return "system" }

// Utilities implements Family. validate_numeric and clamp are critical
// names the optimizer must preserve.
func (System) Utilities(cfg *config.Config) string {
	if !cfg.NeedsSystem() {
		return ""
	}

	var b strings.Builder
	b.WriteString(`# utilities: system
validate_numeric() {
  case "$1" in
    ('') printf '%s' "$2" ;;
    (*[!0-9]*) printf '%s' "$2" ;;
    (*) printf '%s' "$1" ;;
  esac
}
clamp() {
  cl_v=$(validate_numeric "$1" "$3")
  if [ "$cl_v" -lt "$2" ]; then cl_v=$2; fi
  if [ "$cl_v" -gt "$3" ]; then cl_v=$3; fi
  printf '%s' "$cl_v"
}
detect_platform() {
  case "$(uname -s 2>/dev/null)" in
    (Linux*)
      if grep -qi microsoft /proc/version 2>/dev/null; then
        printf 'wsl'
      else
        printf 'linux'
      fi
      ;;
    (Darwin*) printf 'macos' ;;
    (*) printf 'generic' ;;
  esac
}
`)
	b.WriteString(collectFunction(cfg))
	return b.String()
}

// collectFunction emits collect_system_metrics, which prints key=value
// lines for the metrics the configuration selected. Only the selected
// metrics are gathered so unselected ones never cost a subprocess.
func collectFunction(cfg *config.Config) string {
	wantCPU := cfg.Has(config.FeatureCPU)
	wantMem := cfg.Has(config.FeatureMemory)
	wantLoad := cfg.Has(config.FeatureLoad)

	var linux, macos, generic strings.Builder
	if wantCPU {
		linux.WriteString(`      sm_cpu=$(top -bn1 2>/dev/null | grep Cpu | head -1 | awk '{print int($2)}')
      if [ -z "$sm_cpu" ]; then
        sm_cpu=$(vmstat 2>/dev/null | tail -1 | awk '{print 100 - $15}')
      fi
`)
		macos.WriteString(`      sm_cpu=$(top -l 1 2>/dev/null | grep 'CPU usage' | head -1 | awk '{print int($3)}')
      if [ -z "$sm_cpu" ]; then
        sm_cpu=$(ps -A -o %cpu 2>/dev/null | awk '{sms += $1} END {print int(sms)}')
      fi
`)
	}
	if wantMem {
		linux.WriteString(`      sm_mem=$(free -m 2>/dev/null | awk '/^Mem:/ {print $3 " " $2}')
      if [ -z "$sm_mem" ]; then
        sm_mem=$(awk '/MemTotal/ {smt = $2} /MemAvailable/ {sma = $2} END {print int((smt - sma) / 1024) " " int(smt / 1024)}' /proc/meminfo 2>/dev/null)
      fi
`)
		macos.WriteString(`      sm_mem_total=$(($(sysctl -n hw.memsize 2>/dev/null || printf '0') / 1048576))
      sm_mem_used=$(vm_stat 2>/dev/null | awk '/Pages active|Pages wired/ {gsub(/[^0-9]/, "", $NF); smw += $NF} END {print int(smw * 4096 / 1048576)}')
      sm_mem="$sm_mem_used $sm_mem_total"
`)
	}
	if wantLoad {
		linux.WriteString(`      sm_load=$(cut -d ' ' -f1 /proc/loadavg 2>/dev/null)
`)
		macLoad := `      sm_load=$(uptime 2>/dev/null | awk '{print $(NF-2)}' | tr -d ,)
`
		macos.WriteString(macLoad)
		generic.WriteString(macLoad)
	}
	if generic.Len() == 0 {
		generic.WriteString("      :\n")
	}

	var out strings.Builder
	out.WriteString(`collect_system_metrics() {
  sm_cpu=""
  sm_mem=""
  sm_load=""
  case "$1" in
    (linux|wsl)
`)
	out.WriteString(linux.String())
	out.WriteString(`      ;;
    (macos)
`)
	out.WriteString(macos.String())
	out.WriteString(`      ;;
    (*)
`)
	out.WriteString(generic.String())
	out.WriteString(`      ;;
  esac
`)
	if wantCPU {
		out.WriteString(`  printf 'cpu_pct=%s\n' "$sm_cpu"
`)
	}
	if wantMem {
		out.WriteString(`  printf 'mem_used_mb=%s\n' "${sm_mem%% *}"
  printf 'mem_total_mb=%s\n' "${sm_mem##* }"
`)
	}
	if wantLoad {
		out.WriteString(`  printf 'load_avg=%s\n' "$sm_load"
`)
	}
	out.WriteString("}\n")
	return out.String()
}

// Data implements Family. The whole collection result is disk-cached per
// working directory at the configured refresh rate; the warm path parses
// the key=value file without spawning a single metric subprocess.
func (System) Data(cfg *config.Config) string {
	if !cfg.NeedsSystem() {
		return ""
	}

	refresh := 5
	if cfg.SystemMonitoring != nil {
		refresh = cfg.SystemMonitoring.RefreshRateSeconds
	}

	var b strings.Builder
	b.WriteString(`# data: system
if [ -z "${cwd_hash:-}" ]; then
  cwd_hash=$(printf '%s' "$workspace_directory" | cksum | cut -d ' ' -f1)
fi
`)
	b.WriteString(DomainPlatform.Snippet("detect_platform"))
	b.WriteString(SystemDomain(refresh).Snippet(`collect_system_metrics "$platform_value"`))

	if cfg.Has(config.FeatureCPU) {
		b.WriteString(`cpu_pct=$(printf '%s' "$system_value" | sed -n 's/^cpu_pct=//p')
cpu_pct=$(validate_numeric "$cpu_pct" "")
if [ -n "$cpu_pct" ]; then
  cpu_pct=$(clamp "$cpu_pct" 0 100)
fi
`)
	}
	if cfg.Has(config.FeatureMemory) {
		b.WriteString(`mem_used_mb=$(printf '%s' "$system_value" | sed -n 's/^mem_used_mb=//p')
mem_total_mb=$(printf '%s' "$system_value" | sed -n 's/^mem_total_mb=//p')
mem_used_mb=$(validate_numeric "$mem_used_mb" "")
mem_total_mb=$(validate_numeric "$mem_total_mb" "")
if [ -n "$mem_used_mb" ] && [ -n "$mem_total_mb" ] && [ "$mem_total_mb" -gt 0 ]; then
  mem_used_mb=$(clamp "$mem_used_mb" 0 "$mem_total_mb")
else
  mem_used_mb=""
  mem_total_mb=""
fi
`)
	}
	if cfg.Has(config.FeatureLoad) {
		b.WriteString(`load_avg=$(printf '%s' "$system_value" | sed -n 's/^load_avg=//p')
case "$load_avg" in
  ('') : ;;
  (*[!0-9.]*) load_avg="" ;;
  (*) : ;;
esac
`)
	}
	return b.String()
}

// cpuDisplay renders CPU percentage with threshold coloring.
func cpuDisplay(cfg *config.Config) string {
	threshold := 80
	if cfg.SystemMonitoring != nil {
		threshold = cfg.SystemMonitoring.CPUThresholdPct
	}
	g := PrintfLiteral(glyph(cfg, "⚡", "cpu"))

	return fmt.Sprintf(`# display: cpu
if [ -n "$cpu_pct" ]; then
  printf '%%s%s%%s%%%%%%s ' "$(color_for_pct "$cpu_pct" %d)" "$cpu_pct" "$(color_reset)"
fi
`, g, threshold)
}

// memoryDisplay renders memory usage. The detailed theme shows
// used/total in GB with a percentage, compact shows a terse G/G pair and
// minimal shows the percentage alone.
func memoryDisplay(cfg *config.Config) string {
	threshold := 80
	if cfg.SystemMonitoring != nil {
		threshold = cfg.SystemMonitoring.MemoryThresholdPct
	}
	g := PrintfLiteral(glyph(cfg, "\U0001F9E0", "mem"))

	var body string
	switch cfg.Theme {
	case config.ThemeCompact:
		body = fmt.Sprintf(`printf '%%s%s%%sG/%%sG%%s ' "$(color_for_pct "$mem_pct" %d)" "$((mem_used_mb / 1024))" "$((mem_total_mb / 1024))" "$(color_reset)"`, g, threshold)
	case config.ThemeMinimal:
		body = fmt.Sprintf(`printf '%%s%s%%s%%%%%%s ' "$(color_for_pct "$mem_pct" %d)" "$mem_pct" "$(color_reset)"`, g, threshold)
	default:
		body = fmt.Sprintf(`printf '%%s%s%%sGB/%%sGB (%%s%%%%)%%s ' "$(color_for_pct "$mem_pct" %d)" "$((mem_used_mb / 1024))" "$((mem_total_mb / 1024))" "$mem_pct" "$(color_reset)"`, g, threshold)
	}

	return fmt.Sprintf(`# display: memory
if [ -n "$mem_used_mb" ] && [ -n "$mem_total_mb" ]; then
  mem_pct=$((mem_used_mb * 100 / mem_total_mb))
  %s
fi
`, body)
}

// loadDisplay renders the load average. Threshold comparison happens on
// integer-scaled values (load and threshold both multiplied by 100) so
// rounding behaves identically everywhere.
func loadDisplay(cfg *config.Config) string {
	threshold := 2.0
	if cfg.SystemMonitoring != nil {
		threshold = cfg.SystemMonitoring.LoadThreshold
	}
	scaled := int(threshold * 100)
	g := PrintfLiteral(glyph(cfg, "\U0001F4CA", "load"))

	return fmt.Sprintf(`# display: load
if [ -n "$load_avg" ]; then
  load_scaled=$(awk -v sl="$load_avg" 'BEGIN {print int(sl * 100)}' 2>/dev/null)
  load_scaled=$(validate_numeric "$load_scaled" 0)
  printf '%%s%s%%s%%s ' "$(color_for_pct "$load_scaled" %d)" "$load_avg" "$(color_reset)"
fi
`, g, scaled)
}
