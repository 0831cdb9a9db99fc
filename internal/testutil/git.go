// Package testutil provides ephemeral git repository fixtures shared by
// tests that exercise version recomputation against real VCS state.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test when no git binary is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// Repo is a throwaway git repository rooted in a test temp directory.
type Repo struct {
	Dir string

	t *testing.T
}

// NewRepo initializes an empty repository with a configured test identity.
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	RequireGit(t)

	r := &Repo{Dir: t.TempDir(), t: t}
	r.Git("init", "-q")
	r.configureIdentity()
	return r
}

// Clone clones r into a fresh temp directory. Extra flags (e.g. "--no-tags")
// are passed through to git clone.
func (r *Repo) Clone(flags ...string) *Repo {
	r.t.Helper()

	clone := &Repo{Dir: r.t.TempDir(), t: r.t}
	args := append([]string{"clone", "-q"}, flags...)
	args = append(args, r.Dir, clone.Dir)

	cmd := exec.Command("git", args...)
	out, err := cmd.CombinedOutput()
	require.NoError(r.t, err, "git clone: %s", out)

	clone.configureIdentity()
	return clone
}

// Git runs a git subcommand in the repository and returns its trimmed
// output, failing the test on error.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	require.NoError(r.t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// Commit creates an empty commit.
func (r *Repo) Commit(message string) {
	r.t.Helper()
	r.Git("commit", "-q", "--allow-empty", "-m", message)
}

// Tag creates a lightweight tag on HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()
	r.Git("tag", name)
}

// Head returns the abbreviated hash of HEAD.
func (r *Repo) Head() string {
	r.t.Helper()
	return r.Git("rev-parse", "--short=7", "HEAD")
}

// Branch returns the current branch name.
func (r *Repo) Branch() string {
	r.t.Helper()
	return r.Git("rev-parse", "--abbrev-ref", "HEAD")
}

// WriteFile writes a file relative to the repository root, creating parent
// directories as needed. The file is not committed.
func (r *Repo) WriteFile(rel, content string) string {
	r.t.Helper()

	path := filepath.Join(r.Dir, rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CommitAll stages everything and commits.
func (r *Repo) CommitAll(message string) {
	r.t.Helper()
	r.Git("add", ".")
	r.Git("commit", "-q", "-m", message)
}

func (r *Repo) configureIdentity() {
	r.Git("config", "user.email", "test@example.com")
	r.Git("config", "user.name", "Test User")
	r.Git("config", "commit.gpgsign", "false")
	r.Git("config", "tag.gpgsign", "false")
}
