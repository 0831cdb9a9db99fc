package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagdrift/tagdrift/internal/version"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Mode    string `json:"mode"`
}

func newVersionCmd(d *deps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print detailed version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := d.resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			info := versionInfo{
				Version: resolved,
				Commit:  version.Commit,
				Date:    version.Date,
				Mode:    d.resolver.Mode().String(),
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"tagdrift version %s (commit: %s, built: %s, mode: %s)\n",
				info.Version, info.Commit, info.Date, info.Mode)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
