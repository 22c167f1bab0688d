package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fixstatic/internal/logger"
	"fixstatic/internal/patch"
	"fixstatic/internal/rewrite"
)

var (
	// target and fsys are replaced in tests.
	target           = patch.DefaultTarget()
	fsys    patch.FS = patch.OSFS{}
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixstatic",
	Short: "Collapse the static initializer block in web-ifc-api-node.js",
	Long: `fixstatic rewrites the class static block in node_modules/web-ifc/web-ifc-api-node.js
into a plain static field assignment, staging the result in /tmp and renaming it into place.
It prints nothing on success.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Config{Verbose: verbose, Output: cmd.ErrOrStderr()})
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	log := logger.WithComponent("patch").With("source", target.Source, "temp", target.Temp)

	stats, err := patch.Apply(fsys, target)
	if err != nil {
		return err
	}

	log.Debug("patched file",
		"lines_read", stats.LinesRead,
		"lines_written", stats.LinesWritten,
		"rewrites", stats.Rewrites,
	)
	if stats.Rewrites == 0 && stats.Final == rewrite.Reading {
		log.Info("no static block found, content unchanged")
	}
	if stats.Final != rewrite.Reading {
		log.Info("input ended inside a static block, trailing lines were discarded", "state", stats.Final)
	}
	return nil
}

// Execute runs the root command and exits with status 1 on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("fixstatic failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log details of the rewrite to stderr")
}
