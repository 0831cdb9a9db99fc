// Package gitver computes version descriptors from git state. It shells out
// to the git binary, which is treated as the authoritative oracle for tag
// and commit queries; its describe semantics are consumed, never
// reimplemented.
package gitver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tagdrift/tagdrift/internal/apperr"
)

// FallbackBase is the base version used when no tag is reachable from HEAD.
const FallbackBase = "0.1"

// Version is a snapshot of the repository's version state.
type Version struct {
	// Tag is the most recent tag reachable from HEAD (including its "v"
	// prefix), or empty when the repository has no reachable tag.
	Tag string

	// Distance is the number of commits since Tag, or the total number of
	// commits when Tag is empty.
	Distance int

	// Node is the abbreviated commit hash of HEAD.
	Node string

	// Dirty reports uncommitted changes in the working tree.
	Dirty bool
}

// String renders the descriptor: the bare release version when HEAD sits
// exactly on a clean tag, a next-patch development descriptor such as
// "100.2.4.dev1+gabcdef0" otherwise, and a "0.1.devN+g..." fallback when no
// tag exists.
func (v Version) String() string {
	if v.Tag == "" {
		return v.devString(FallbackBase)
	}

	release := strings.TrimPrefix(v.Tag, "v")
	if v.Distance == 0 && !v.Dirty {
		return release
	}

	next := release
	if sv, err := semver.NewVersion(release); err == nil {
		bumped := sv.IncPatch()
		next = bumped.String()
	}
	return v.devString(next)
}

func (v Version) devString(base string) string {
	s := fmt.Sprintf("%s.dev%d+g%s", base, v.Distance, v.Node)
	if v.Dirty {
		s += ".dirty"
	}
	return s
}

// describeRe matches `git describe --tags --long` output:
// TAG-DISTANCE-gHASH with an optional -dirty suffix.
var describeRe = regexp.MustCompile(`^(.+)-(\d+)-g([0-9a-f]+?)(-dirty)?$`)

// Describe queries the repository at dir for its version state. It fails
// with apperr.ErrNoVCS when dir is not inside a git work tree or the
// repository has no commits; git's own diagnostic is preserved in the error
// message.
func Describe(ctx context.Context, dir string) (Version, error) {
	if _, err := git(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return Version{}, fmt.Errorf("%w: %s", apperr.ErrNoVCS, err)
	}

	out, err := git(ctx, dir, "describe", "--tags", "--long", "--dirty", "--abbrev=7")
	if err != nil {
		if !isNoTags(err) {
			return Version{}, err
		}
		return describeUntagged(ctx, dir)
	}

	m := describeRe.FindStringSubmatch(out)
	if m == nil {
		return Version{}, fmt.Errorf("unexpected git describe output %q", out)
	}
	distance, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("unexpected git describe output %q: %w", out, err)
	}

	return Version{
		Tag:      m[1],
		Distance: distance,
		Node:     m[3],
		Dirty:    m[4] != "",
	}, nil
}

// isNoTags reports whether a describe failure means no tag is reachable
// from HEAD, the only failure the untagged fallback may absorb. Other
// describe errors (shallow clones, object-store corruption) must surface
// with git's own diagnostic. Messages are stable because git runs with
// LC_ALL=C.
func isNoTags(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no names found") ||
		strings.Contains(msg, "no tags can describe") ||
		strings.Contains(msg, "cannot describe")
}

// describeUntagged builds the no-tag fallback descriptor. The repository is
// known to exist at this point; a missing HEAD means there are no commits
// at all, which counts as absent VCS state.
func describeUntagged(ctx context.Context, dir string) (Version, error) {
	node, err := git(ctx, dir, "rev-parse", "--short=7", "HEAD")
	if err != nil {
		return Version{}, fmt.Errorf("%w: %s", apperr.ErrNoVCS, err)
	}
	countOut, err := git(ctx, dir, "rev-list", "--count", "HEAD")
	if err != nil {
		return Version{}, fmt.Errorf("%w: %s", apperr.ErrNoVCS, err)
	}
	count, err := strconv.Atoi(countOut)
	if err != nil {
		return Version{}, fmt.Errorf("unexpected git rev-list output %q: %w", countOut, err)
	}
	status, err := git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return Version{}, fmt.Errorf("%w: %s", apperr.ErrNoVCS, err)
	}

	return Version{
		Distance: count,
		Node:     node,
		Dirty:    status != "",
	}, nil
}

// git runs a git subcommand in dir and returns its trimmed stdout. On
// failure the error carries git's stderr so diagnostics reach the caller
// verbatim.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	// Untranslated output, so error classification can match on messages.
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
