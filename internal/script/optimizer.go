package script

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/statline/internal/logger"
	"github.com/NikitaCOEUR/statline/internal/serrors"
)

// The optimizer is a best-effort text rewriting pipeline. Passes run in a
// fixed order and each is individually toggleable. After all passes the
// result is validated; validation problems are logged and the optimized
// text is still returned (fail-open), but a panic inside any pass discards
// the whole optimization and returns the input unchanged.

// Pass is one rewrite step over the assembled script text.
type Pass struct {
	Name    string
	Enabled bool
	Apply   func(string) string
}

// Optimizer rewrites assembled script text.
type Optimizer struct {
	passes []Pass
	log    *logger.Logger
}

// criticalNames must survive optimization whenever the input contained
// them. Losing any of these breaks runtime cache integrity or numeric
// validation in the emitted script.
var criticalNames = []string{
	"STATLINE_CACHE_DIR",
	"validate_numeric",
	"clamp",
	"file_age",
	"iso_to_epoch",
	"color_for_pct",
}

// variableRenames maps verbose internal names to short forms. Applied as
// exact-token substitution in this fixed order.
var variableRenames = []struct{ from, to string }{
	{"statusline_input", "input"},
	{"workspace_directory", "ws_dir"},
	{"current_directory", "cur_dir"},
	{"model_display_name", "model_name"},
	{"git_branch_name", "branch_name"},
	{"basics_fields", "b_fields"},
	{"usage_fields", "u_fields"},
}

var (
	renamePatterns = compileRenames()

	dirnameIdiom  = regexp.MustCompile(`\$\(dirname "\$([A-Za-z_][A-Za-z0-9_]*)"\)`)
	basenameIdiom = regexp.MustCompile(`\$\(basename "\$([A-Za-z_][A-Za-z0-9_]*)"\)`)
	commandVTest  = regexp.MustCompile(`\[ -n "\$\(command -v ([A-Za-z0-9_-]+)\)" \]`)
	grepHeadPipe  = regexp.MustCompile(`grep ('[^']*'|[A-Za-z0-9_.-]+) \| head -1`)
)

func compileRenames() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(variableRenames))
	for i, r := range variableRenames {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(r.from) + `\b`)
	}
	return patterns
}

// NewOptimizer creates an optimizer with every pass enabled.
func NewOptimizer(log *logger.Logger) *Optimizer {
	return &Optimizer{
		log: log,
		passes: []Pass{
			{Name: "shorten-variables", Enabled: true, Apply: shortenVariables},
			{Name: "builtin-substitution", Enabled: true, Apply: builtinSubstitution},
			{Name: "collapse-conditionals", Enabled: true, Apply: collapseConditionals},
			{Name: "merge-pipes", Enabled: true, Apply: mergePipes},
		},
	}
}

// SetPass toggles one pass by name. Unknown names are ignored.
func (o *Optimizer) SetPass(name string, enabled bool) {
	for i := range o.passes {
		if o.passes[i].Name == name {
			o.passes[i].Enabled = enabled
		}
	}
}

// Optimize runs the pipeline over text. On a panic in any pass the
// pre-optimization text is returned unchanged; validation findings are
// logged but never block the optimized result.
func (o *Optimizer) Optimize(text string) string {
	result := text
	for _, pass := range o.passes {
		if !pass.Enabled {
			continue
		}
		next, err := runPass(pass, result)
		if err != nil {
			o.log.Warn().Str("pass", pass.Name).Err(err).Msg("Optimization failed, keeping unoptimized script")
			return text
		}
		result = next
	}

	for _, issue := range validate(text, result) {
		o.log.Warn().Str("issue", issue).Msg("Optimizer validation")
	}

	return result
}

// runPass isolates a single pass so a panic rolls the whole pipeline back
// instead of crashing generation.
func runPass(pass Pass, in string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = serrors.NewOptimizationError(pass.Name, "pass panicked", fmt.Errorf("%v", r))
		}
	}()
	return pass.Apply(in), nil
}

// shortenVariables compacts verbose internal variable names.
func shortenVariables(text string) string {
	for i, r := range variableRenames {
		text = renamePatterns[i].ReplaceAllString(text, r.to)
	}
	return text
}

// builtinSubstitution replaces external-command idioms with parameter
// expansions the shell evaluates without a subprocess.
func builtinSubstitution(text string) string {
	// $$ keeps the emitted dollar sign literal; ${1} is the captured name.
	text = dirnameIdiom.ReplaceAllString(text, `$${${1}%/*}`)
	text = basenameIdiom.ReplaceAllString(text, `$${${1}##*/}`)
	return text
}

// collapseConditionals turns [ -n "$(cmd)" ] probes into direct exit-status
// tests, dropping a subshell per occurrence.
func collapseConditionals(text string) string {
	return commandVTest.ReplaceAllString(text, `command -v $1 >/dev/null 2>&1`)
}

// mergePipes folds known chained-pipe patterns into single commands.
func mergePipes(text string) string {
	text = grepHeadPipe.ReplaceAllString(text, `grep -m1 $1`)
	text = strings.ReplaceAll(text, "| sort | uniq", "| sort -u")
	return text
}

// validate checks the optimized text against the original: critical names
// survive, timeout guards survive, and quoting/bracket balance did not get
// worse. Findings are returned as human-readable strings; the caller logs
// them and moves on.
func validate(before, after string) []string {
	var issues []string

	for _, name := range criticalNames {
		if strings.Contains(before, name) && !strings.Contains(after, name) {
			issues = append(issues, fmt.Sprintf("critical name %q lost during optimization", name))
		}
	}

	if strings.Count(after, "timeout ") < strings.Count(before, "timeout ") {
		issues = append(issues, "a timeout guard was removed during optimization")
	}

	if strings.Count(before, `"`)%2 == 0 && strings.Count(after, `"`)%2 != 0 {
		issues = append(issues, "double quotes became unbalanced during optimization")
	}
	if d := imbalance(after, '{', '}'); d > imbalance(before, '{', '}') {
		issues = append(issues, fmt.Sprintf("curly brace imbalance grew to %d", d))
	}
	if d := imbalance(after, '(', ')'); d > imbalance(before, '(', ')') {
		issues = append(issues, fmt.Sprintf("parenthesis imbalance grew to %d", d))
	}

	return issues
}

func imbalance(s string, open, close rune) int {
	d := strings.Count(s, string(open)) - strings.Count(s, string(close))
	if d < 0 {
		return -d
	}
	return d
}
