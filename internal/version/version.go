package version

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/tagdrift/tagdrift/internal/apperr"
)

// Build-time variables injected via -ldflags:
//
//	-X github.com/tagdrift/tagdrift/internal/version.Version=100.2.3
//	-X github.com/tagdrift/tagdrift/internal/version.Commit=abc1234
//	-X github.com/tagdrift/tagdrift/internal/version.Date=2026-01-01T00:00:00Z
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	applyBuildInfo(bi)
}

// Frozen returns the version string fixed at build time. It fails with
// apperr.ErrNotInstalled when the binary carries no version information at
// all, i.e. it was built without ldflags from source that is not an
// installed module.
func Frozen() (string, error) {
	if Version == "dev" {
		return "", fmt.Errorf("%w: binary built without version information", apperr.ErrNotInstalled)
	}
	return Version, nil
}

// FromFile reads a version from a generated version file: a single version
// string written at build time, the file-based frozen strategy for builds
// that carry no ldflags or module metadata.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading version file: %w", err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("version file %s is empty", path)
	}
	return v, nil
}

// applyBuildInfo overwrites package vars from bi only when they still hold
// their default (ldflags-unset) values. ldflags always win.
func applyBuildInfo(bi *debug.BuildInfo) {
	if Version == "dev" {
		v := bi.Main.Version
		if v != "" && v != "(devel)" {
			Version = strings.TrimPrefix(v, "v")
		}
	}

	var revision, vcsTime string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}

	if Commit == "none" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
	}

	if Date == "unknown" && vcsTime != "" {
		Date = vcsTime
	}
}
