// Package revrange validates the messages of commits already recorded
// in a repository, over a base..head revision range.
package revrange

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/nfriedli/cc-check/internal/commitmsg"
)

// Failure identifies the first commit in a range whose message was
// rejected.
type Failure struct {
	Hash   string
	Line   string
	Result commitmsg.Result
}

func (f *Failure) String() string {
	short := f.Hash
	if len(short) > 7 {
		short = short[:7]
	}

	return fmt.Sprintf("commit %s (%s): %s", short, f.Line, f.Result.Reason)
}

// Resolve resolves a ref name or SHA to a commit. Ref names are tried
// first (branches, remotes, tags, HEAD, HEAD^), then direct hashes.
func Resolve(repo *git.Repository, refOrSHA string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(refOrSHA))
	if err == nil {
		commit, commitErr := repo.CommitObject(*hash)
		if commitErr == nil {
			return commit, nil
		}
	}

	commit, err := repo.CommitObject(plumbing.NewHash(refOrSHA))
	if err == nil {
		return commit, nil
	}

	return nil, fmt.Errorf("failed to resolve '%s' as ref or SHA", refOrSHA)
}

// CommitsBetween returns the commits reachable from head but not from
// base, newest first.
func CommitsBetween(repo *git.Repository, base *object.Commit, head *object.Commit) ([]*object.Commit, error) {
	excluded := make(map[plumbing.Hash]bool)

	baseIter := object.NewCommitIterCTime(base, nil, nil)
	err := baseIter.ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate base commits: %w", err)
	}

	var commits []*object.Commit

	headIter := object.NewCommitIterCTime(head, nil, nil)
	err = headIter.ForEach(func(c *object.Commit) error {
		if !excluded[c.Hash] {
			commits = append(commits, c)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate head commits: %w", err)
	}

	return commits, nil
}

// Check validates every commit message in baseRef..headRef against
// cfg. Merge commits (more than one parent) are skipped when cfg
// allows merge commits, matching how their subject lines are exempted
// in single-message mode. Returns the first failure, or nil when all
// messages pass.
func Check(repo *git.Repository, baseRef string, headRef string, cfg commitmsg.Config) (*Failure, error) {
	base, err := Resolve(repo, baseRef)
	if err != nil {
		return nil, err
	}

	head, err := Resolve(repo, headRef)
	if err != nil {
		return nil, err
	}

	commits, err := CommitsBetween(repo, base, head)
	if err != nil {
		return nil, fmt.Errorf("failed to get commits: %w", err)
	}

	for _, commit := range commits {
		if cfg.AllowMergeCommits && len(commit.ParentHashes) > 1 {
			continue
		}

		result := commitmsg.Validate(commit.Message, cfg)
		if result.OK {
			continue
		}

		line, _, _ := commitmsg.SubjectLine(commit.Message, cfg.IgnoreComments)

		return &Failure{
			Hash:   commit.Hash.String(),
			Line:   line,
			Result: result,
		}, nil
	}

	return nil, nil
}
