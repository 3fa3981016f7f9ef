package gitscan

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/opsource/secrethog/pkg/scanner"
)

// WalkCommits produces a deduplicated stream of commits reachable from any
// reference under refs/*, in the repository's default commit order,
// optionally filtered by a since-commit time cutoff. The caller is
// responsible for skipping merge commits before diffing them; IsMerge is
// provided for that purpose.
//
// since_commit reads like a commit selector but is implemented as a time
// cutoff: only commits with committer time at or after the resolved
// commit's time are yielded, not DAG descendants of it. Rebases and clock
// skew can pull in or drop commits a caller would not expect from a purely
// ancestry-based reading of "since" — that surprising behavior is
// intentional and preserved verbatim.
func WalkCommits(repo *git.Repository, sinceCommit string) ([]*object.Commit, error) {
	cutoff, hasCutoff, err := sinceCutoff(repo, sinceCommit)
	if err != nil {
		return nil, err
	}

	seen := make(map[plumbing.Hash]struct{})
	var commits []*object.Commit

	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("walker: listing references: %w", err)
	}
	defer refs.Close()

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash().IsZero() {
			return nil
		}
		target, ok := peelToCommit(repo, ref.Hash())
		if !ok {
			scanner.Log.Debugf("walker: %s does not peel to a commit, skipping", ref.Name())
			return nil
		}
		return walkFrom(repo, target, seen, cutoff, hasCutoff, &commits)
	})
	if err != nil {
		return nil, fmt.Errorf("walker: walking references: %w", err)
	}

	return commits, nil
}

// peelToCommit follows an annotated tag chain (a tag may point at another
// tag) down to the commit it ultimately targets. A hash that isn't a tag
// object is returned unchanged. Reports false if the chain bottoms out at
// something other than a commit (e.g. a tag of a tree or blob).
func peelToCommit(repo *git.Repository, hash plumbing.Hash) (plumbing.Hash, bool) {
	current := hash
	for i := 0; i < 10; i++ {
		tag, err := repo.TagObject(current)
		if err != nil {
			// Not a tag object: either already a commit, or something this
			// walker doesn't resolve further.
			return current, true
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			current = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

func walkFrom(repo *git.Repository, from plumbing.Hash, seen map[plumbing.Hash]struct{}, cutoff time.Time, hasCutoff bool, commits *[]*object.Commit) error {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		// from resolved via peelToCommit but still isn't a commit (e.g. a
		// lightweight tag pointing directly at a tree or blob); skip it.
		scanner.Log.Debugf("walker: %s does not resolve to a commit log: %v", from, err)
		return nil
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if _, dup := seen[c.Hash]; dup {
			return nil
		}
		seen[c.Hash] = struct{}{}
		if hasCutoff && c.Committer.When.Before(cutoff) {
			return nil
		}
		*commits = append(*commits, c)
		return nil
	})
}

// sinceCutoff resolves a since_commit revspec to its committer time.
// Resolution failure is fatal.
func sinceCutoff(repo *git.Repository, sinceCommit string) (time.Time, bool, error) {
	if sinceCommit == "" {
		return time.Time{}, false, nil
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(sinceCommit))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("walker: resolving since_commit %q: %w", sinceCommit, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("walker: resolving since_commit %q: %w", sinceCommit, err)
	}
	return commit.Committer.When, true, nil
}

// IsMerge reports whether c has more than one parent. Merge commits are
// skipped entirely: no diff is produced and no finding may carry a merge
// commit's hash.
func IsMerge(c *object.Commit) bool {
	return c.NumParents() > 1
}
