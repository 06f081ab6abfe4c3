package commitmsg

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// subjectRegexp matches a Conventional Commit subject line.
//
// Capture groups:
//  1. type - alphabetic type token (feat, fix, ...)
//  2. scope - optional parenthesized scope, parens included
//  3. bang - optional "!" breaking-change marker
//  4. description - text after the mandatory ": " separator
//
// The type accepts upper-case letters on purpose: "Feat: x" must parse
// and then fail the allowed-type check, which is a different error than
// a malformed subject. The scope may be empty ("feat(): x") but must
// not contain parens or colons.
var subjectRegexp = regexp.MustCompile(`^([a-zA-Z]+)(\([^():]*\))?(!)?: (.+)$`)

// Breaking-change footer markers. Matching is case-sensitive and
// anchored to the start of the line.
const (
	breakingPrefix       = "BREAKING CHANGE:"
	breakingHyphenPrefix = "BREAKING-CHANGE:"
)

// Subject is the decomposed first line of a commit message.
type Subject struct {
	// Type is the token before the optional scope and the colon.
	Type string

	// Scope is the text inside the parentheses. HasScope distinguishes
	// an absent scope from empty parens, which are valid.
	Scope    string
	HasScope bool

	// Breaking is set by "!" before the colon or by a BREAKING CHANGE:
	// (or BREAKING-CHANGE:) line later in the message.
	Breaking bool

	// Description is the text after the separating space. Any spaces
	// beyond the single mandatory one are preserved.
	Description string

	// Line is the complete subject line, Length its rune count.
	Line   string
	Length int
}

// SubjectLine extracts the subject line from a raw commit message: the
// first line that is not blank and, when ignoreComments is set, does
// not start with '#' (after leading whitespace, the git convention).
// The remaining lines are returned for footer scanning, with comment
// lines already dropped. ok is false if no such line exists.
func SubjectLine(message string, ignoreComments bool) (line string, rest []string, ok bool) {
	message = strings.ReplaceAll(message, "\r\n", "\n")

	var kept []string
	for _, l := range strings.Split(message, "\n") {
		if ignoreComments && strings.HasPrefix(strings.TrimSpace(l), "#") {
			continue
		}

		kept = append(kept, l)
	}

	for i, l := range kept {
		if strings.TrimSpace(l) == "" {
			continue
		}

		return strings.TrimSpace(l), kept[i+1:], true
	}

	return "", nil, false
}

// ParseSubject matches line against the Conventional Commit grammar.
// ok is false when the line does not match. Breaking reflects only the
// inline "!" marker; callers combine it with HasBreakingFooter.
func ParseSubject(line string) (Subject, bool) {
	matches := subjectRegexp.FindStringSubmatch(line)
	if matches == nil {
		return Subject{}, false
	}

	subject := Subject{
		Type:        matches[1],
		Breaking:    matches[3] == "!",
		Description: matches[4],
		Line:        line,
		Length:      utf8.RuneCountInString(line),
	}

	if matches[2] != "" {
		subject.Scope = strings.TrimSuffix(strings.TrimPrefix(matches[2], "("), ")")
		subject.HasScope = true
	}

	return subject, true
}

// MergeLike reports whether line is a merge or revert header as
// produced by git itself ("Merge branch ...", `Revert "..."`). Such
// lines do not follow the conventional grammar.
func MergeLike(line string) bool {
	return strings.HasPrefix(line, "Merge ") || strings.HasPrefix(line, `Revert "`)
}

// HasBreakingFooter reports whether any line starts with a
// breaking-change marker. The check is case-sensitive per the
// Conventional Commits specification.
func HasBreakingFooter(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, breakingPrefix) || strings.HasPrefix(line, breakingHyphenPrefix) {
			return true
		}
	}

	return false
}
