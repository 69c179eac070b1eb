package vcs

import (
	"context"
	"os/exec"
	"strings"
)

// Provider resolves commit and branch identifiers by shelling out to git.
//
// Contract:
// - Errors: lookups are best-effort and report (value, ok); they never fail the caller.
// - Context: lookups honor cancellation through exec.CommandContext.
type Provider struct {
	// Dir is the working directory for git invocations. Empty means the
	// process working directory.
	Dir string
}

// CommitSHA returns the HEAD commit hash of the checkout, if resolvable.
func (p *Provider) CommitSHA(ctx context.Context) (string, bool) {
	return p.git(ctx, "rev-parse", "HEAD")
}

// Branch returns the current branch name of the checkout, if resolvable.
// A detached HEAD resolves to the literal "HEAD".
func (p *Provider) Branch(ctx context.Context) (string, bool) {
	return p.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

func (p *Provider) git(ctx context.Context, args ...string) (string, bool) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.Dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	s := strings.TrimSpace(string(out))
	if s == "" {
		return "", false
	}
	return s, true
}
