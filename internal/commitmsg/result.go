package commitmsg

// Kind identifies why a commit message was rejected. The kinds are
// mutually exclusive; validation stops at the first failing check.
type Kind string

const (
	// KindEmptyMessage means no non-comment content was found.
	KindEmptyMessage Kind = "empty-message"
	// KindMalformedSubject means the subject line failed the grammar.
	KindMalformedSubject Kind = "malformed-subject"
	// KindUnknownType means the type token is not in the allowed set.
	KindUnknownType Kind = "unknown-type"
	// KindSubjectTooLong means the subject line exceeds the limit.
	KindSubjectTooLong Kind = "subject-too-long"
	// KindTrailingPeriod means the description ends with a period.
	KindTrailingPeriod Kind = "trailing-period"
)

// Result is the outcome of validating a single commit message. It is a
// value, not an error: callers inspect Kind programmatically (JSON
// rendering, hook exit codes) rather than unwrapping error chains.
type Result struct {
	OK bool

	// Kind and Reason are set only when OK is false.
	Kind   Kind
	Reason string

	// Merge is true when the message was accepted through the
	// merge/revert exemption without grammar checking.
	Merge bool

	// Subject is the parsed subject line. It is nil for the merge
	// exemption and for messages that never produced a parse
	// (empty or malformed). The Breaking flag on it is informational
	// and never causes a failure.
	Subject *Subject
}

func accepted(subject *Subject) Result {
	return Result{OK: true, Subject: subject}
}

func rejected(kind Kind, reason string, subject *Subject) Result {
	return Result{Kind: kind, Reason: reason, Subject: subject}
}
