package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfriedli/cc-check/internal/githook"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install git commit-msg hook",
		Long: `Install git commit-msg hook that validates commit messages with
cc-check.

An existing commit-msg hook is backed up to commit-msg.backup before
being replaced. An existing backup is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			hookPath, err := githook.Install(".")
			if err != nil {
				return err
			}

			fmt.Printf("Installed %s hook at %s\n", githook.HookName, hookPath)

			return nil
		},
	}
}
