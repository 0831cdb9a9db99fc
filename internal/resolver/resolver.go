// Package resolver decides what version string the running binary reports:
// the version frozen at build time, or one recomputed from current VCS
// state. The two can diverge — that divergence is the footgun this project
// demonstrates.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tagdrift/tagdrift/internal/apperr"
	"github.com/tagdrift/tagdrift/internal/manifest"
	"github.com/tagdrift/tagdrift/internal/metadata"
	"github.com/tagdrift/tagdrift/internal/version"
)

// Mode selects the version source.
type Mode int

const (
	// ModeFrozen reports the version fixed at build time.
	ModeFrozen Mode = iota
	// ModeRecomputed re-derives the version from VCS state on every
	// invocation.
	ModeRecomputed
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeFrozen:
		return "frozen"
	case ModeRecomputed:
		return "recomputed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Resolver resolves the project version according to its Mode.
type Resolver struct {
	mode   Mode
	logger *slog.Logger
	frozen func() (string, error)
	eval   *metadata.Evaluator
	start  string
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithProjectRoot sets the directory where the project-root search starts
// instead of the process working directory.
func WithProjectRoot(dir string) Option {
	return func(r *Resolver) { r.start = dir }
}

// WithFrozen replaces the frozen-version lookup.
func WithFrozen(fn func() (string, error)) Option {
	return func(r *Resolver) { r.frozen = fn }
}

// WithEvaluator replaces the metadata evaluator used for recomputation.
func WithEvaluator(e *metadata.Evaluator) Option {
	return func(r *Resolver) { r.eval = e }
}

// New returns a Resolver for the given mode.
func New(mode Mode, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		mode:   mode,
		logger: logger,
		frozen: version.Frozen,
		eval:   metadata.New(logger),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the resolver's mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Resolve returns the version string for the resolver's mode. In frozen
// mode a missing install surfaces as apperr.ErrNotInstalled; in recomputed
// mode any failure is wrapped in apperr.ErrResolution with the underlying
// diagnostic preserved verbatim.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.mode == ModeRecomputed {
		v, err := r.recompute(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %w", apperr.ErrResolution, err)
		}
		return v, nil
	}

	v, err := r.frozen()
	if err == nil {
		return v, nil
	}
	if errors.Is(err, apperr.ErrNotInstalled) {
		fv, fileErr := r.frozenFromFile()
		if fileErr == nil {
			return fv, nil
		}
		r.logger.Debug("no generated version file", "error", fileErr)
	}
	return "", err
}

// frozenFromFile reads the generated version file the manifest declares, the
// last frozen source tried when the binary itself carries no version. The
// file holds a version written at build time, so reading it never touches
// VCS state.
func (r *Resolver) frozenFromFile() (string, error) {
	root, err := r.projectRoot()
	if err != nil {
		return "", err
	}
	m, err := manifest.Load(filepath.Join(root, manifest.Filename))
	if err != nil {
		return "", err
	}
	if m.Version.File == "" {
		return "", fmt.Errorf("manifest declares no version file")
	}
	return version.FromFile(filepath.Join(root, m.Version.File))
}

// recompute locates the project root, normalizes the process working
// directory to it, and evaluates the project metadata there. The caller's
// working directory is restored on every exit path: metadata hooks resolve
// relative paths against cwd and would otherwise fail spuriously, and the
// caller's environment must not be left corrupted.
func (r *Resolver) recompute(ctx context.Context) (string, error) {
	root, err := r.projectRoot()
	if err != nil {
		return "", err
	}

	orig, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("reading working directory: %w", err)
	}
	if err := os.Chdir(root); err != nil {
		return "", fmt.Errorf("entering project root: %w", err)
	}
	defer func() {
		if err := os.Chdir(orig); err != nil {
			r.logger.Warn("could not restore working directory", "dir", orig, "error", err)
		}
	}()

	r.logger.Debug("recomputing version", "root", root)
	return r.eval.Evaluate(ctx, root)
}

// projectRoot finds the directory holding the build manifest, walking up
// from the configured start directory or from the process working
// directory.
func (r *Resolver) projectRoot() (string, error) {
	start := r.start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("reading working directory: %w", err)
		}
		start = wd
	}
	return manifest.Locate(start)
}
