package fragment

import (
	"fmt"
	"strings"
)

// CacheDirVar is the shell variable holding the runtime cache directory.
// The optimizer treats it as a critical name that must survive rewriting.
const CacheDirVar = "STATLINE_CACHE_DIR"

// staleCleanupMinutes is the age beyond which runtime cache files are
// opportunistically removed on script startup.
const staleCleanupMinutes = 360

// CacheDomain describes one on-disk cache maintained by the generated
// script. Each domain has its own file, TTL and content validation rule.
type CacheDomain struct {
	// Name prefixes the cache file and every related shell variable.
	// Must satisfy Ident.
	Name string
	// TTLSeconds is embedded as a literal in the generated code.
	TTLSeconds int
	// PerDir appends the working-directory hash to the file name so
	// different workspaces never share state.
	PerDir bool
	// Validate is a grep -E pattern cached content must match. Content
	// failing it is deleted and treated as a miss. Empty means any
	// non-empty content is accepted. Patterns must keep the generated
	// text bracket-balanced, so character classes stand in for bare
	// braces and parentheses come in pairs.
	Validate string
}

// Runtime cache domains emitted into generated scripts. TTLs differ by how
// fast the underlying data changes: repo-ness almost never, branches and
// usage within a session, system metrics per refresh interval.
var (
	DomainUsage     = CacheDomain{Name: "usage", TTLSeconds: 30, Validate: `costUSD|isActive|blocks`}
	DomainGitRepo   = CacheDomain{Name: "git_repo", TTLSeconds: 300, PerDir: true, Validate: `^(yes|no)$`}
	DomainGitBranch = CacheDomain{Name: "git_branch", TTLSeconds: 30, PerDir: true, Validate: `^[A-Za-z0-9._/-]+$`}
	DomainPlatform  = CacheDomain{Name: "platform", TTLSeconds: 3600, Validate: `^(linux|wsl|macos|generic)$`}
)

// SystemDomain returns the per-directory system metrics domain with the
// configured refresh rate as its TTL.
func SystemDomain(refreshRateSeconds int) CacheDomain {
	return CacheDomain{
		Name:       "system",
		TTLSeconds: refreshRateSeconds,
		PerDir:     true,
		Validate:   `^[a-z_]+=[0-9. ]*$`,
	}
}

// CacheSetup returns the shell block that prepares the runtime cache
// directory, defines the shared file_age helper and opportunistically
// removes stale cache files. Emitted once per script, before any snippet.
func CacheSetup() string {
	return fmt.Sprintf(`# runtime cache setup
%[1]s="${XDG_CACHE_HOME:-$HOME/.cache}/statline"
mkdir -p "$%[1]s" 2>/dev/null
find "$%[1]s" -name "*.cache" -mmin +%[2]d -delete 2>/dev/null
find "$%[1]s" -name "*.cache.tmp.*" -mmin +60 -delete 2>/dev/null
file_age() {
  fa_mtime=$(stat -c %%Y "$1" 2>/dev/null || stat -f %%m "$1" 2>/dev/null)
  if [ -n "$fa_mtime" ]; then
    printf '%%s' "$(($(date +%%s) - fa_mtime))"
  else
    printf '999999'
  fi
}
`, CacheDirVar, staleCleanupMinutes)
}

// Snippet generates the shell text implementing disk caching of command
// output for this domain. The produced block leaves the result in
// <name>_value: a fresh cached value on a hit, otherwise the output of
// command (cached for the next invocation via an atomic tmp-then-rename
// write so concurrent readers never observe partial content).
func (d CacheDomain) Snippet(command string) string {
	if !Ident(d.Name) {
		// Domain names come from this package, never from user input.
		panic("fragment: invalid cache domain name " + d.Name)
	}

	suffix := ""
	if d.PerDir {
		suffix = "_${cwd_hash}"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s cache, ttl %ds\n", d.Name, d.TTLSeconds)
	fmt.Fprintf(&b, "%s_cache_file=\"$%s/%s%s.cache\"\n", d.Name, CacheDirVar, d.Name, suffix)
	fmt.Fprintf(&b, "%s_value=\"\"\n", d.Name)
	fmt.Fprintf(&b, "if [ -f \"$%s_cache_file\" ]; then\n", d.Name)
	fmt.Fprintf(&b, "  if [ \"$(file_age \"$%s_cache_file\")\" -lt %d ]; then\n", d.Name, d.TTLSeconds)
	fmt.Fprintf(&b, "    %s_value=$(cat \"$%s_cache_file\" 2>/dev/null)\n", d.Name, d.Name)
	fmt.Fprintf(&b, "  fi\n")
	b.WriteString(d.integrityCheck())
	fmt.Fprintf(&b, "fi\n")
	fmt.Fprintf(&b, "if [ -z \"$%s_value\" ]; then\n", d.Name)
	fmt.Fprintf(&b, "  %s_value=$(%s)\n", d.Name, command)
	fmt.Fprintf(&b, "  if [ -n \"$%s_value\" ]; then\n", d.Name)
	fmt.Fprintf(&b, "    printf '%%s' \"$%s_value\" > \"$%s_cache_file.tmp.$$\" 2>/dev/null && mv -f \"$%s_cache_file.tmp.$$\" \"$%s_cache_file\" 2>/dev/null\n",
		d.Name, d.Name, d.Name, d.Name)
	fmt.Fprintf(&b, "  fi\n")
	fmt.Fprintf(&b, "fi\n")
	return b.String()
}

// integrityCheck emits validation of a freshly read cache value: content
// must match the domain pattern and carry no shell metacharacters. Corrupt
// files are deleted and treated as a miss.
func (d CacheDomain) integrityCheck() string {
	var b strings.Builder
	if d.Validate != "" {
		fmt.Fprintf(&b, "  if [ -n \"$%s_value\" ] && ! printf '%%s' \"$%s_value\" | grep -Eq %s; then\n",
			d.Name, d.Name, SingleQuote(d.Validate))
		fmt.Fprintf(&b, "    rm -f \"$%s_cache_file\" 2>/dev/null\n", d.Name)
		fmt.Fprintf(&b, "    %s_value=\"\"\n", d.Name)
		fmt.Fprintf(&b, "  fi\n")
	}
	if d.Name != "usage" {
		// JSON payloads legitimately contain metacharacters; plain-text
		// domains must not.
		fmt.Fprintf(&b, "  case \"$%s_value\" in\n", d.Name)
		fmt.Fprintf(&b, "    (*[\\;\\&\\<\\>]*)\n")
		fmt.Fprintf(&b, "      rm -f \"$%s_cache_file\" 2>/dev/null\n", d.Name)
		fmt.Fprintf(&b, "      %s_value=\"\"\n", d.Name)
		fmt.Fprintf(&b, "      ;;\n")
		fmt.Fprintf(&b, "  esac\n")
	}
	return b.String()
}
