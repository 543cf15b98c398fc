// repoforge turns a natural-language description into one or more starter
// repositories: an LLM provider plans the repos, the plan is validated and
// reviewed, and only then written to disk.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/repoforge/internal/config"
	"github.com/Protocol-Lattice/repoforge/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	slog.SetDefault(logging.New())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		outDir  string
		dryRun  bool
		yes     bool
	)

	root := &cobra.Command{
		Use:   "repoforge [description...]",
		Short: "Generate ready-to-review starter repositories from a description",
		Long: `Repoforge asks an LLM provider to plan one or more small repositories
for a natural-language description, validates every planned path before a
byte touches disk, and lets you review, edit or regenerate the plan in an
interactive terminal UI.

The description comes from the arguments, from piped stdin, or from the
interactive prompt when neither is given.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(cfgPath)
			description, err := resolveDescription(args)
			if err != nil {
				return err
			}
			if yes {
				return runHeadless(cmd.Context(), cfg, description, outDir, dryRun)
			}
			return runTUI(cmd.Context(), cfg, description, outDir, dryRun)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Config file path")
	root.Flags().StringVarP(&outDir, "out", "o", ".", "Base directory for repos whose target dir is relative")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the plan only, write nothing")
	root.Flags().BoolVarP(&yes, "yes", "y", false, "Accept the generated plan as-is, no interactive review")

	root.AddCommand(
		newConfigCmd(&cfgPath),
		newVersionCmd(),
	)
	return root
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure provider, model, endpoint and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				return showConfig(cmd.OutOrStdout(), *cfgPath)
			}
			return runWizard(*cfgPath)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Print the current configuration with redacted keys")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repoforge %s\n", version)
		},
	}
}
