package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nfriedli/cc-check/internal/commitmsg"
	"github.com/nfriedli/cc-check/internal/githook"
	"github.com/nfriedli/cc-check/internal/log"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newCheckCmd() *cobra.Command {
	flags := &validationFlags{}

	var format string

	cmd := &cobra.Command{
		Use:   "check [COMMIT_MSG_FILE]",
		Short: "Validate a commit message",
		Long: `Validate a commit message against the Conventional Commits convention.

The message is read from COMMIT_MSG_FILE (as git passes it to the
commit-msg hook), from stdin when piped, or from .git/COMMIT_EDITMSG
as a fallback.`,
		Example: `  cc-check check .git/COMMIT_EDITMSG
  echo "feat(api): add endpoint" | cc-check check
  cc-check check --extra-types wip,release --max-subject 50 msg.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags, format)
		},
	}

	addValidationFlags(cmd, flags)
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text or json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *validationFlags, format string) error {
	l := log.FromContext(cmd.Context())

	if format != formatText && format != formatJSON {
		return fmt.Errorf("unsupported format %q (supported formats: text, json)", format)
	}

	cfg, err := flags.resolve(cmd, ".")
	if err != nil {
		return err
	}

	message, source, err := loadMessage(args)
	if err != nil {
		return err
	}

	l.Verbosef("validating commit message from %s\n", source)

	result := commitmsg.Validate(message, cfg)

	if result.Subject != nil && result.Subject.Breaking {
		l.Verbosef("breaking change signaled\n")
	}

	return report(result, format)
}

// loadMessage returns the raw commit message and a description of its
// source. Precedence: file argument, piped stdin, .git/COMMIT_EDITMSG.
func loadMessage(args []string) (message string, source string, err error) {
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read commit message file: %w", readErr)
		}

		return string(data), args[0], nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", readErr)
		}

		return string(data), "stdin", nil
	}

	// Interactive invocation without a file: check the message git
	// last recorded for editing.
	gitDir, gitErr := githook.GitDir(".")
	if gitErr == nil {
		path := filepath.Join(gitDir, "COMMIT_EDITMSG")

		data, readErr := os.ReadFile(path)
		if readErr == nil {
			return string(data), path, nil
		}
	}

	return "", "", fmt.Errorf("no commit message file provided")
}

// report renders the validation result. Text failures go to stderr;
// JSON always goes to stdout. A rejected message maps to exit code 1
// via errValidationFailed.
func report(result commitmsg.Result, format string) error {
	if format == formatJSON {
		payload := struct {
			OK    bool   `json:"ok"`
			Error string `json:"error,omitempty"`
		}{OK: result.OK, Error: result.Reason}

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to render JSON result: %w", err)
		}

		fmt.Println(string(data))

		if !result.OK {
			return errValidationFailed
		}

		return nil
	}

	if !result.OK {
		fmt.Fprintf(os.Stderr, "Conventional commit check failed: %s\n", result.Reason)
		return errValidationFailed
	}

	return nil
}
