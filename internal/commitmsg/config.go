package commitmsg

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the optional per-repository configuration file,
// looked up in the repository root.
const DefaultConfigFile = ".cc-check.yml"

// DefaultMaxSubjectLength is the default subject line limit in runes.
// Zero disables the check.
const DefaultMaxSubjectLength = 72

// DefaultTypes returns the standard Conventional Commit types.
func DefaultTypes() []string {
	return []string{
		"feat", "fix", "docs", "style", "refactor", "perf",
		"test", "build", "ci", "chore", "revert",
	}
}

// Config holds the resolved validation parameters for one invocation.
// Build it with DefaultConfig and the With* methods; a zero Config
// rejects every type.
type Config struct {
	// AllowedTypes is the case-sensitive set of accepted type tokens.
	AllowedTypes []string

	// MaxSubjectLength limits the rune count of the subject line.
	// Zero disables the check.
	MaxSubjectLength int

	// DisallowTrailingPeriod rejects descriptions ending with a period.
	DisallowTrailingPeriod bool

	// AllowMergeCommits exempts "Merge ..." and `Revert "..."` subject
	// lines from grammar and rule checks.
	AllowMergeCommits bool

	// IgnoreComments drops lines starting with '#' before parsing.
	IgnoreComments bool
}

// DefaultConfig returns the configuration used when neither a config
// file nor flags override anything.
func DefaultConfig() Config {
	return Config{
		AllowedTypes:           DefaultTypes(),
		MaxSubjectLength:       DefaultMaxSubjectLength,
		DisallowTrailingPeriod: true,
		AllowMergeCommits:      true,
		IgnoreComments:         true,
	}
}

// TypeAllowed reports whether t is in the allowed set. Comparison is
// case-sensitive: "Feat" does not match "feat".
func (c Config) TypeAllowed(t string) bool {
	return slices.Contains(c.AllowedTypes, t)
}

// WithExtraTypes returns a copy of c whose allowed set additionally
// contains types. Duplicates and empty strings are dropped.
func (c Config) WithExtraTypes(types ...string) Config {
	allowed := slices.Clone(c.AllowedTypes)
	for _, t := range types {
		if t == "" || slices.Contains(allowed, t) {
			continue
		}

		allowed = append(allowed, t)
	}

	c.AllowedTypes = allowed

	return c
}

// FileConfig mirrors the optional .cc-check.yml. The booleans are
// pointers so that an absent key keeps its default instead of being
// forced to false.
type FileConfig struct {
	ExtraTypes             []string `yaml:"extra_types"`
	MaxSubjectLength       *int     `yaml:"max_subject_length"`
	DisallowTrailingPeriod *bool    `yaml:"disallow_trailing_period"`
	AllowMergeCommits      *bool    `yaml:"allow_merge_commits"`
	IgnoreComments         *bool    `yaml:"ignore_comments"`
}

// Apply overlays the file values on top of base and returns the result.
func (f FileConfig) Apply(base Config) Config {
	cfg := base.WithExtraTypes(f.ExtraTypes...)

	if f.MaxSubjectLength != nil {
		cfg.MaxSubjectLength = *f.MaxSubjectLength
	}

	if f.DisallowTrailingPeriod != nil {
		cfg.DisallowTrailingPeriod = *f.DisallowTrailingPeriod
	}

	if f.AllowMergeCommits != nil {
		cfg.AllowMergeCommits = *f.AllowMergeCommits
	}

	if f.IgnoreComments != nil {
		cfg.IgnoreComments = *f.IgnoreComments
	}

	return cfg
}

// LoadConfig reads .cc-check.yml from dir and applies it on top of the
// defaults. A missing file is not an error and yields the defaults.
func LoadConfig(dir string) (Config, error) {
	return LoadConfigFile(filepath.Join(dir, DefaultConfigFile), false)
}

// LoadConfigFile reads the config file at path and applies it on top
// of the defaults. When required is false a missing file yields the
// defaults.
func LoadConfigFile(path string, required bool) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return DefaultConfig(), nil
	}

	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg FileConfig
	err = yaml.Unmarshal(data, &fileCfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	err = validateFileConfig(fileCfg)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return fileCfg.Apply(DefaultConfig()), nil
}

func validateFileConfig(cfg FileConfig) error {
	if cfg.MaxSubjectLength != nil && *cfg.MaxSubjectLength < 0 {
		return fmt.Errorf("max_subject_length must not be negative, got %d", *cfg.MaxSubjectLength)
	}

	for i, t := range cfg.ExtraTypes {
		if t == "" {
			return fmt.Errorf("extra_types[%d]: type must not be empty", i)
		}
	}

	return nil
}
