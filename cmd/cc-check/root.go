package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nfriedli/cc-check/internal/log"
)

// errValidationFailed signals a rejected commit message. The failure
// has already been reported by the command, so Execute only translates
// it into exit code 1.
var errValidationFailed = errors.New("commit message validation failed")

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cc-check",
	Short: "Validate commit messages against Conventional Commits",
	Long: `cc-check validates git commit messages against the Conventional
Commits convention (type(scope)!: description) and installs itself as a
git commit-msg hook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger := log.New(os.Stderr, verbose)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show diagnostic output")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newRangeCmd())
}
