package script

import (
	"io"
	"testing"

	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logger.Logger {
	return logger.New("error", io.Discard)
}

func TestShortenVariables(t *testing.T) {
	in := `workspace_directory="unknown"
current_directory="$workspace_directory"
printf '%s' "$statusline_input"
`
	out := shortenVariables(in)

	assert.Contains(t, out, `ws_dir="unknown"`)
	assert.Contains(t, out, `cur_dir="$ws_dir"`)
	assert.Contains(t, out, `"$input"`)
	assert.NotContains(t, out, "workspace_directory")
	assert.NotContains(t, out, "statusline_input")
}

func TestShortenVariables_TokenBoundaries(t *testing.T) {
	// A name embedded in a longer identifier must not be rewritten
	in := "my_statusline_inputs=1"
	assert.Equal(t, in, shortenVariables(in))
}

func TestBuiltinSubstitution(t *testing.T) {
	in := `d=$(dirname "$statline_log_file")
b=$(basename "$current_directory")
`
	out := builtinSubstitution(in)

	assert.Contains(t, out, `d=${statline_log_file%/*}`)
	assert.Contains(t, out, `b=${current_directory##*/}`)
	assert.NotContains(t, out, "dirname")
	assert.NotContains(t, out, "basename")
}

func TestBuiltinSubstitution_LeavesLiteralPaths(t *testing.T) {
	// Only the quoted-variable idiom is rewritten
	in := `d=$(dirname /etc/passwd)`
	assert.Equal(t, in, builtinSubstitution(in))
}

func TestCollapseConditionals(t *testing.T) {
	in := `if [ -n "$(command -v jq)" ]; then`
	out := collapseConditionals(in)
	assert.Equal(t, `if command -v jq >/dev/null 2>&1; then`, out)
}

func TestMergePipes(t *testing.T) {
	out := mergePipes(`cpu=$(top -bn1 | grep Cpu | head -1 | awk '{print $2}')`)
	assert.Contains(t, out, "grep -m1 Cpu")
	assert.NotContains(t, out, "| head -1")

	out = mergePipes(`grep 'CPU usage' | head -1`)
	assert.Equal(t, `grep -m1 'CPU usage'`, out)

	out = mergePipes("cat f | sort | uniq")
	assert.Equal(t, "cat f | sort -u", out)
}

func TestOptimizer_Optimize(t *testing.T) {
	o := NewOptimizer(testLogger())

	in := `if [ -n "$(command -v git)" ]; then
  d=$(dirname "$statline_log_file")
fi
`
	out := o.Optimize(in)
	assert.Contains(t, out, "command -v git >/dev/null 2>&1")
	assert.Contains(t, out, `${statline_log_file%/*}`)
}

func TestOptimizer_SetPass(t *testing.T) {
	o := NewOptimizer(testLogger())
	o.SetPass("shorten-variables", false)
	o.SetPass("builtin-substitution", false)
	o.SetPass("collapse-conditionals", false)
	o.SetPass("merge-pipes", false)

	in := `workspace_directory=$(dirname "$statusline_input")`
	assert.Equal(t, in, o.Optimize(in), "all passes disabled leaves text untouched")

	// Unknown pass names are ignored
	o.SetPass("no-such-pass", true)
}

func TestOptimizer_PanicRollsBack(t *testing.T) {
	o := NewOptimizer(testLogger())
	o.passes = append(o.passes, Pass{
		Name:    "explode",
		Enabled: true,
		Apply:   func(string) string { panic("boom") },
	})

	in := `workspace_directory="x"`
	out := o.Optimize(in)
	assert.Equal(t, in, out, "a panicking pass must return the original text unchanged")
}

func TestValidate_CriticalNames(t *testing.T) {
	before := `validate_numeric "$x"; STATLINE_CACHE_DIR=y`
	after := `vn "$x"; STATLINE_CACHE_DIR=y`

	issues := validate(before, after)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "validate_numeric")
}

func TestValidate_TimeoutGuard(t *testing.T) {
	before := "timeout 3 ccusage blocks"
	after := "ccusage blocks"

	issues := validate(before, after)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "timeout")
}

func TestValidate_QuoteParity(t *testing.T) {
	issues := validate(`echo "a"`, `echo "a`)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "quotes")
}

func TestValidate_BracketImbalance(t *testing.T) {
	issues := validate(`x=${a}`, `x=${a`)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "curly")

	issues = validate(`y=$(b)`, `y=$(b`)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "parenthesis")
}

func TestValidate_Clean(t *testing.T) {
	text := `validate_numeric "$x"; timeout 3 cmd`
	assert.Empty(t, validate(text, text))
}
