package fragment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetup(t *testing.T) {
	setup := CacheSetup()

	assert.Contains(t, setup, `STATLINE_CACHE_DIR="${XDG_CACHE_HOME:-$HOME/.cache}/statline"`)
	assert.Contains(t, setup, "mkdir -p")
	assert.Contains(t, setup, "-mmin +360 -delete", "stale files older than 6h are removed")
	assert.Contains(t, setup, "file_age()")
	assert.Contains(t, setup, "stat -c", "GNU stat first")
	assert.Contains(t, setup, "stat -f", "BSD stat fallback")
	assertBalanced(t, setup)
}

func TestCacheDomain_Snippet(t *testing.T) {
	snippet := DomainUsage.Snippet("timeout 3 ccusage blocks --active --json 2>/dev/null")

	assert.Contains(t, snippet, `usage_cache_file="$STATLINE_CACHE_DIR/usage.cache"`)
	assert.Contains(t, snippet, "-lt 30", "TTL is embedded as a literal")
	assert.Contains(t, snippet, `usage_value=$(timeout 3 ccusage`)
	// Atomic write: tmp file then rename
	assert.Contains(t, snippet, `"$usage_cache_file.tmp.$$"`)
	assert.Contains(t, snippet, `mv -f "$usage_cache_file.tmp.$$" "$usage_cache_file"`)
	assertBalanced(t, snippet)
}

func TestCacheDomain_SnippetPerDir(t *testing.T) {
	snippet := DomainGitBranch.Snippet("git_current_branch .")

	assert.Contains(t, snippet, `git_branch_cache_file="$STATLINE_CACHE_DIR/git_branch_${cwd_hash}.cache"`,
		"per-dir domains suffix the file name with the directory hash")
	assertBalanced(t, snippet)
}

func TestCacheDomain_IntegrityCheck(t *testing.T) {
	snippet := DomainGitRepo.Snippet("probe")

	// Pattern validation deletes non-matching content and falls back to a miss
	assert.Contains(t, snippet, `grep -Eq '^(yes|no)$'`)
	assert.Contains(t, snippet, `rm -f "$git_repo_cache_file"`)
	// Plain-text domains also reject shell metacharacters
	assert.Contains(t, snippet, `(*[\;\&\<\>]*)`)
	assertBalanced(t, snippet)
}

func TestCacheDomain_UsageSkipsMetacharGuard(t *testing.T) {
	snippet := DomainUsage.Snippet("cmd")

	// JSON payloads legitimately contain metacharacters
	assert.NotContains(t, snippet, `(*[\;\&\<\>]*)`)
	assert.Contains(t, snippet, "grep -Eq 'costUSD|isActive|blocks'")
}

func TestCacheDomain_SnippetPanicsOnBadName(t *testing.T) {
	bad := CacheDomain{Name: "rm -rf", TTLSeconds: 10}
	assert.Panics(t, func() { bad.Snippet("cmd") })
}

func TestSystemDomain(t *testing.T) {
	d := SystemDomain(15)
	assert.Equal(t, 15, d.TTLSeconds)
	assert.True(t, d.PerDir)

	snippet := d.Snippet("collect_system_metrics linux")
	assert.Contains(t, snippet, "-lt 15")
	assertBalanced(t, snippet)
}

func TestDomainTTLs(t *testing.T) {
	assert.Equal(t, 30, DomainUsage.TTLSeconds)
	assert.Equal(t, 300, DomainGitRepo.TTLSeconds)
	assert.Equal(t, 30, DomainGitBranch.TTLSeconds)
	assert.Equal(t, 3600, DomainPlatform.TTLSeconds)

	assert.True(t, DomainGitRepo.PerDir)
	assert.True(t, DomainGitBranch.PerDir)
	assert.False(t, DomainUsage.PerDir)
	assert.False(t, DomainPlatform.PerDir)
}

// assertBalanced checks the textual well-formedness conventions all emitted
// shell text must satisfy: paired double quotes, balanced brackets, no
// backticks.
func assertBalanced(t *testing.T, text string) {
	t.Helper()
	require.Zero(t, strings.Count(text, `"`)%2, "double quotes must pair up")
	assert.Equal(t, strings.Count(text, "{"), strings.Count(text, "}"), "curly braces must balance")
	assert.Equal(t, strings.Count(text, "("), strings.Count(text, ")"), "parentheses must balance")
	assert.NotContains(t, text, "`", "backticks are never emitted")
}
