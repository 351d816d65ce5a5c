package fragment

import (
	"fmt"

	"github.com/NikitaCOEUR/statline/internal/config"
)

// Git resolves the current branch name with a cached repo-detection guard:
// the script never invokes git at all when the working directory is known
// not to be a repository. Repo-ness changes far less often than branches,
// so the detection flag carries a longer TTL than the branch name.
type Git struct{}

// Name implements Family.
func (Git) Name() string { return "git" }

// Utilities implements Family.
func (Git) Utilities(cfg *config.Config) string {
	if !cfg.Has(config.FeatureGit) {
		return ""
	}

	return `# utilities: git
git_current_branch() {
  git -C "$1" symbolic-ref --short HEAD 2>/dev/null || git -C "$1" rev-parse --short HEAD 2>/dev/null
}
`
}

// Data implements Family.
func (Git) Data(cfg *config.Config) string {
	if !cfg.Has(config.FeatureGit) {
		return ""
	}

	repoProbe := `if git -C "$workspace_directory" rev-parse --is-inside-work-tree >/dev/null 2>&1; then printf 'yes'; else printf 'no'; fi`

	return fmt.Sprintf(`# data: git
git_branch_name=""
if [ -n "$(command -v git)" ]; then
if [ -z "${cwd_hash:-}" ]; then
  cwd_hash=$(printf '%%s' "$workspace_directory" | cksum | cut -d ' ' -f1)
fi
%sif [ "$git_repo_value" = "yes" ]; then
%sgit_branch_name="$git_branch_value"
fi
fi
`, DomainGitRepo.Snippet(repoProbe), DomainGitBranch.Snippet(`git_current_branch "$workspace_directory"`))
}

// gitDisplay renders the branch segment. Nothing is printed outside a
// repository, keeping the line free of empty placeholders.
func gitDisplay(cfg *config.Config) string {
	return fmt.Sprintf(`# display: git
if [ -n "$git_branch_name" ]; then
  printf '%%s%s%%s%%s ' "$(color 32)" "$git_branch_name" "$(color_reset)"
fi
`, PrintfLiteral(glyph(cfg, "\U0001F33F", "git")))
}
