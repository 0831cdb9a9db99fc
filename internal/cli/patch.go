package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tagdrift/tagdrift/internal/manifest"
)

func newPatchCmd(d *deps) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "patch <version>",
		Short: "Pin a static version in the build manifest",
		Long: `Rewrite the build manifest so the project carries a fixed version instead
of a dynamic VCS declaration. Documentation builds run from checkouts
without tags; pinning before publishing keeps the rendered version from
drifting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifestPath
			if path == "" {
				start := d.cfg.ProjectRoot
				if start == "" {
					wd, err := os.Getwd()
					if err != nil {
						return fmt.Errorf("reading working directory: %w", err)
					}
					start = wd
				}
				root, err := manifest.Locate(start)
				if err != nil {
					return err
				}
				path = filepath.Join(root, manifest.Filename)
			}

			if err := manifest.PinVersion(path, args[0]); err != nil {
				return err
			}

			d.logger.Debug("manifest version pinned", "path", path, "version", args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s to version '%s'\n", path, args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the manifest (default: locate from the working directory)")

	return cmd
}
