// Package manifest models the tagdrift.toml build manifest: the file that
// declares the project identity and where its version comes from.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Filename is the name of the build manifest at the project root.
const Filename = "tagdrift.toml"

// SourceVCS is the dynamic version source backed by git tags.
const SourceVCS = "vcs"

// Manifest is the decoded tagdrift.toml.
type Manifest struct {
	Project Project       `toml:"project"`
	Version VersionSource `toml:"version"`
}

// Project declares the project identity. Version is set for statically
// versioned projects and empty when the version is dynamic.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
	Readme  string `toml:"readme,omitempty"`
}

// VersionSource declares how a dynamic version is computed. Source names
// the evaluator ("vcs"); File optionally names a generated version file,
// written at build time and consulted by frozen resolution when the binary
// itself carries no version metadata.
type VersionSource struct {
	Source string `toml:"source,omitempty"`
	File   string `toml:"file,omitempty"`
}

// Dynamic reports whether the project version must be computed rather than
// read from the manifest.
func (m *Manifest) Dynamic() bool {
	return m.Project.Version == ""
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}
	if m.Project.Name == "" {
		return nil, fmt.Errorf("manifest %s: project.name is required", path)
	}
	if m.Project.Version == "" && m.Version.Source == "" {
		return nil, fmt.Errorf("manifest %s: no version declared: set project.version or version.source", path)
	}
	return &m, nil
}

// Locate walks from start up through its parent directories and returns the
// first directory containing the manifest file. It fails when the
// filesystem root is reached without finding one.
func Locate(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, Filename)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent directory", Filename, start)
		}
		dir = parent
	}
}
