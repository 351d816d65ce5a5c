package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubleQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", `"hello"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{"$HOME", `"\$HOME"`},
		{`back\slash`, `"back\\slash"`},
		{"tick`tock", "\"tick\\`tock\""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DoubleQuote(tt.in))
	}
}

func TestSingleQuote(t *testing.T) {
	assert.Equal(t, `'hello'`, SingleQuote("hello"))
	assert.Equal(t, `'$HOME'`, SingleQuote("$HOME"), "single quotes suppress expansion")
	assert.Equal(t, `'it'\''s'`, SingleQuote("it's"))
}

func TestPrintfLiteral(t *testing.T) {
	assert.Equal(t, "plain", PrintfLiteral("plain"))
	assert.Equal(t, "100%%", PrintfLiteral("100%"))
	assert.Equal(t, `a\\b`, PrintfLiteral(`a\b`))
}

func TestIdent(t *testing.T) {
	valid := []string{"usage", "git_repo", "A1", "_x", "cwd_hash2"}
	for _, s := range valid {
		assert.True(t, Ident(s), "%q should be a valid identifier", s)
	}

	invalid := []string{"", "1abc", "git-repo", "a b", "a$b", "héllo"}
	for _, s := range invalid {
		assert.False(t, Ident(s), "%q should not be a valid identifier", s)
	}
}
