package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/nfriedli/cc-check/internal/log"
	"github.com/nfriedli/cc-check/internal/revrange"
)

func newRangeCmd() *cobra.Command {
	flags := &validationFlags{}

	var baseRef, headRef string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Validate commit messages in a revision range",
		Long: `Validate the messages of all commits in base..head.

Merge commits (more than one parent) are skipped unless
--allow-merge-commits=false.`,
		Example: `  cc-check range                        # main..HEAD
  cc-check range --base-ref v1.2.0
  cc-check range --base-ref main --head-ref feature`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRange(cmd, flags, baseRef, headRef)
		},
	}

	addValidationFlags(cmd, flags)
	cmd.Flags().StringVar(&baseRef, "base-ref", "main", "Base ref or SHA to compare from")
	cmd.Flags().StringVar(&headRef, "head-ref", "HEAD", "Head ref or SHA to compare to")

	return cmd
}

func runRange(cmd *cobra.Command, flags *validationFlags, baseRef string, headRef string) error {
	l := log.FromContext(cmd.Context())

	cfg, err := flags.resolve(cmd, ".")
	if err != nil {
		return err
	}

	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	failure, err := revrange.Check(repo, baseRef, headRef, cfg)
	if err != nil {
		return err
	}

	if failure != nil {
		fmt.Fprintf(os.Stderr, "Conventional commit check failed: %s\n", failure)
		return errValidationFailed
	}

	l.Verbosef("all commits in %s..%s passed\n", baseRef, headRef)

	return nil
}
