// Package fragment generates the shell text fragments that make up a
// statusline script: per-feature utility, data-collection and display
// blocks, plus the runtime disk-cache snippets embedded in the output.
//
// Everything here is string templating. There is no shell AST; textual
// correctness (quote balance, bracket balance, case patterns written in
// their balanced "(pattern)" form) is the responsibility of each fragment.
// All escaping of values interpolated into shell text goes through the
// helpers in this file so quoting rules live in exactly one place.
package fragment

import "strings"

// DoubleQuote wraps s in double quotes, escaping the characters the shell
// interprets inside them.
func DoubleQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// SingleQuote wraps s in single quotes. Embedded single quotes are closed,
// escaped and reopened, the only representation the shell accepts.
func SingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// PrintfLiteral escapes s for use inside a printf format string so user
// text can never introduce conversion directives.
func PrintfLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "%", "%%")
}

// Ident reports whether s is safe to use as part of a shell identifier.
// Fragment generators only accept domain and variable names that pass this.
func Ident(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
