package commitmsg

import (
	"fmt"
	"strings"
)

// Validate checks a raw commit message against cfg and returns the
// first failing check, or an accepting Result. It is a pure function:
// the same message and config always produce the same Result.
//
// Check order: empty message, merge/revert exemption, grammar, allowed
// type, subject length, trailing period. The order is fixed so that a
// message is always reported with a single deterministic reason.
func Validate(message string, cfg Config) Result {
	line, rest, ok := SubjectLine(message, cfg.IgnoreComments)
	if !ok {
		return rejected(KindEmptyMessage, "empty commit message", nil)
	}

	if cfg.AllowMergeCommits && MergeLike(line) {
		return Result{OK: true, Merge: true}
	}

	subject, ok := ParseSubject(line)
	if !ok {
		reason := fmt.Sprintf("subject line %q does not match <type>(<scope>)!: <description>", line)
		return rejected(KindMalformedSubject, reason, nil)
	}

	subject.Breaking = subject.Breaking || HasBreakingFooter(rest)

	if !cfg.TypeAllowed(subject.Type) {
		reason := fmt.Sprintf("type %q is not allowed", subject.Type)
		return rejected(KindUnknownType, reason, &subject)
	}

	if cfg.MaxSubjectLength > 0 && subject.Length > cfg.MaxSubjectLength {
		reason := fmt.Sprintf("subject line too long: %d/%d", subject.Length, cfg.MaxSubjectLength)
		return rejected(KindSubjectTooLong, reason, &subject)
	}

	if cfg.DisallowTrailingPeriod && strings.HasSuffix(subject.Description, ".") {
		return rejected(KindTrailingPeriod, "description must not end with a period", &subject)
	}

	return accepted(&subject)
}
