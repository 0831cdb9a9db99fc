package manifest

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// pinned is the encode model for a patched manifest: the static version
// replaces the [version] table entirely.
type pinned struct {
	Project Project `toml:"project"`
}

// PinVersion rewrites the manifest at path so the project carries the given
// static version instead of a dynamic declaration. Documentation builds use
// this to publish against a fixed release version, since doc hosts check
// out the repository without tags and a dynamic version would drift.
func PinVersion(path, version string) error {
	if version == "" {
		return fmt.Errorf("pin version must not be empty")
	}

	m, err := Load(path)
	if err != nil {
		return err
	}

	p := pinned{Project: m.Project}
	p.Project.Version = version

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encoding patched manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing patched manifest: %w", err)
	}
	return nil
}
