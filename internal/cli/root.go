// Package cli provides the Cobra command tree for tagdrift.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tagdrift/tagdrift/internal/config"
	"github.com/tagdrift/tagdrift/internal/resolver"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
// It is populated by the root command's PersistentPreRunE before any
// subcommand's RunE runs. Cobra only executes the innermost
// PersistentPreRunE in the command chain; do not add one to a subcommand
// without re-calling buildDeps.
type deps struct {
	logger   *slog.Logger
	cfg      *config.Config
	resolver *resolver.Resolver
}

// NewRootCmd builds the top-level command. Running it without a subcommand
// resolves the project version and prints it. Callers must set stdout and
// stderr via cmd.SetOut / cmd.SetErr before Execute.
func NewRootCmd(logger *slog.Logger, programLevel *slog.LevelVar) *cobra.Command {
	var d deps

	cmd := &cobra.Command{
		Use:   "tagdrift",
		Short: "Report the project version, frozen or recomputed from VCS state",
		Long: `tagdrift demonstrates the VCS versioning footgun: a version derived from
git tags at build time and re-derived at runtime can silently diverge from
what was installed.

By default the version frozen into the binary at build time is reported.
Set ` + config.EnvRuntimeVersion + ` to recompute it from current git state
instead — and to inherit every way that can go wrong.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, logger, programLevel)
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := d.resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "My version is '%s'\n", v)
			return err
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newVersionCmd(&d),
		newPatchCmd(&d),
	)

	return cmd
}

// buildDeps loads the environment configuration and constructs the version
// resolver for the selected mode.
func buildDeps(cmd *cobra.Command, logger *slog.Logger, programLevel *slog.LevelVar) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	if verbose || cfg.Verbose {
		programLevel.Set(slog.LevelDebug)
	}

	mode := resolver.ModeFrozen
	if cfg.RuntimeVersion {
		mode = resolver.ModeRecomputed
	}
	logger.Debug("resolution mode selected", "mode", mode)

	var opts []resolver.Option
	if cfg.ProjectRoot != "" {
		opts = append(opts, resolver.WithProjectRoot(cfg.ProjectRoot))
	}

	return &deps{
		logger:   logger,
		cfg:      cfg,
		resolver: resolver.New(mode, logger, opts...),
	}, nil
}
