package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfriedli/cc-check/internal/commitmsg"
	"github.com/nfriedli/cc-check/internal/githook"
)

// validationFlags are the rule-tuning flags shared by check and range.
type validationFlags struct {
	extraTypes       string
	maxSubject       int
	noTrailingPeriod bool
	ignoreComments   bool
	allowMerges      bool
	configPath       string
}

func addValidationFlags(cmd *cobra.Command, f *validationFlags) {
	cmd.Flags().StringVar(&f.extraTypes, "extra-types", "", "Allow types in addition to the default list (comma-separated)")
	cmd.Flags().IntVar(&f.maxSubject, "max-subject", commitmsg.DefaultMaxSubjectLength, "Enforce max subject line length (0 to disable)")
	cmd.Flags().BoolVar(&f.noTrailingPeriod, "no-trailing-period", true, "Disallow trailing period in the description")
	cmd.Flags().BoolVar(&f.ignoreComments, "ignore-comments", true, "Ignore comment lines (starting with '#') in the commit message")
	cmd.Flags().BoolVar(&f.allowMerges, "allow-merge-commits", true, "Allow merge-like messages (e.g. 'Merge ...') to pass")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file path (default: .cc-check.yml in the repository root)")
}

// resolve builds the effective config: defaults, overlaid by the
// repository config file, overlaid by any flag set on the command
// line. Outside a git repository only defaults and flags apply.
func (f *validationFlags) resolve(cmd *cobra.Command, workDir string) (commitmsg.Config, error) {
	var (
		cfg commitmsg.Config
		err error
	)

	switch root, rootErr := githook.Root(workDir); {
	case f.configPath != "":
		cfg, err = commitmsg.LoadConfigFile(f.configPath, true)
	case rootErr == nil:
		cfg, err = commitmsg.LoadConfig(root)
	default:
		cfg = commitmsg.DefaultConfig()
	}

	if err != nil {
		return commitmsg.Config{}, err
	}

	cfg = cfg.WithExtraTypes(splitTypes(f.extraTypes)...)

	flags := cmd.Flags()

	if flags.Changed("max-subject") {
		if f.maxSubject < 0 {
			return commitmsg.Config{}, fmt.Errorf("--max-subject must not be negative, got %d", f.maxSubject)
		}

		cfg.MaxSubjectLength = f.maxSubject
	}

	if flags.Changed("no-trailing-period") {
		cfg.DisallowTrailingPeriod = f.noTrailingPeriod
	}

	if flags.Changed("ignore-comments") {
		cfg.IgnoreComments = f.ignoreComments
	}

	if flags.Changed("allow-merge-commits") {
		cfg.AllowMergeCommits = f.allowMerges
	}

	return cfg, nil
}

func splitTypes(s string) []string {
	var types []string

	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			types = append(types, t)
		}
	}

	return types
}
