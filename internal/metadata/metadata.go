// Package metadata evaluates project metadata from the build manifest on
// demand, the runtime counterpart of what a build backend computes during a
// package build.
//
// Evaluation deliberately mirrors build-backend semantics: relative paths
// in the manifest (the readme hook) and the VCS query resolve against the
// process working directory, not against the manifest's location. Callers
// invoking the evaluator outside of a build must first normalize cwd to the
// project root; see the resolver package.
package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tagdrift/tagdrift/internal/apperr"
	"github.com/tagdrift/tagdrift/internal/gitver"
	"github.com/tagdrift/tagdrift/internal/manifest"
)

// Source computes a dynamic version. Implementations run with the process
// working directory already set to the project root.
type Source func(ctx context.Context) (string, error)

// Evaluator resolves a project's version from its manifest and a registry
// of dynamic version sources.
type Evaluator struct {
	logger  *slog.Logger
	sources map[string]Source
}

// New returns an evaluator with the built-in "vcs" source registered.
func New(logger *slog.Logger) *Evaluator {
	e := NewWithSources(logger, nil)
	e.Register(manifest.SourceVCS, vcsSource)
	return e
}

// NewWithSources returns an evaluator with exactly the given sources. A
// manifest referencing an unregistered source fails with
// apperr.ErrUnknownVersionSource, which is also how a deployment missing
// its versioning tooling presents at runtime.
func NewWithSources(logger *slog.Logger, sources map[string]Source) *Evaluator {
	e := &Evaluator{logger: logger, sources: map[string]Source{}}
	for name, src := range sources {
		e.sources[name] = src
	}
	return e
}

// Register adds or replaces a dynamic version source.
func (e *Evaluator) Register(name string, src Source) {
	e.sources[name] = src
}

// Evaluate computes the version for the project rooted at root. The readme
// hook runs first when configured, then the static version is returned or
// the declared dynamic source is invoked.
func (e *Evaluator) Evaluate(ctx context.Context, root string) (string, error) {
	m, err := manifest.Load(filepath.Join(root, manifest.Filename))
	if err != nil {
		return "", err
	}

	if m.Project.Readme != "" {
		if err := e.assembleReadme(m.Project.Readme); err != nil {
			return "", err
		}
	}

	if !m.Dynamic() {
		e.logger.Debug("using static manifest version", "version", m.Project.Version)
		return m.Project.Version, nil
	}

	src, ok := e.sources[m.Version.Source]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperr.ErrUnknownVersionSource, m.Version.Source)
	}

	e.logger.Debug("recomputing version", "source", m.Version.Source, "root", root)
	return src(ctx)
}

// assembleReadme is the metadata hook that trips callers invoking
// evaluation from the wrong directory: the readme path resolves against
// the process working directory, exactly as it would during a build where
// cwd is guaranteed to be the project root.
func (e *Evaluator) assembleReadme(path string) error {
	if _, err := os.ReadFile(path); err != nil {
		return fmt.Errorf("assembling readme %s: %w", path, err)
	}
	return nil
}

// vcsSource queries git in the current working directory.
func vcsSource(ctx context.Context) (string, error) {
	v, err := gitver.Describe(ctx, ".")
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
