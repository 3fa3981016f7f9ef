package gitscan

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/opsource/secrethog/pkg/scanner"
	"github.com/opsource/secrethog/pkg/types"
)

const dateLayout = "2006-01-02 15:04:05"

// decodeErrorPlaceholder is substituted when a byte range cannot be
// decoded at all.
const decodeErrorPlaceholder = "<STRING DECODE ERROR>"

// ScanOptions configures a single run of the git-history driver.
type ScanOptions struct {
	SinceCommit   string
	EnableEntropy bool
}

// Scan walks repo's history and returns the deduplicated set of findings
// produced by feeding every diff line through s, driving the commit walker
// and diff producer.
func Scan(repo *git.Repository, s *scanner.Scanner, opts ScanOptions) ([]types.Finding, error) {
	commits, err := WalkCommits(repo, opts.SinceCommit)
	if err != nil {
		return nil, err
	}

	set := types.NewFindingSet()
	for _, commit := range commits {
		if IsMerge(commit) {
			scanner.Log.Debugf("aggregator: skipping merge commit %s", commit.Hash)
			continue
		}

		scanner.Log.Infof("aggregator: scanning commit %s", commit.Hash)
		units, err := DiffLines(commit)
		if err != nil {
			return nil, fmt.Errorf("aggregator: %w", err)
		}

		for _, unit := range units {
			aggregateLine(set, commit, unit, s, opts.EnableEntropy)
		}
	}

	return set.Findings(), nil
}

func aggregateLine(set *types.FindingSet, commit *object.Commit, unit LineUnit, s *scanner.Scanner, entropyEnabled bool) {
	diffText := decodeASCII(unit.Line)

	matches := s.GetMatches(unit.Line)
	for reason, ranges := range matches {
		found := make([]string, 0, len(ranges))
		for _, r := range ranges {
			found = append(found, decodeASCII(unit.Line[r.Start:r.End]))
		}
		if len(found) == 0 {
			continue
		}
		set.Insert(types.Finding{
			CommitHash:   commit.Hash.String(),
			Commit:       commit.Message,
			Date:         commit.Committer.When.UTC().Format(dateLayout),
			Path:         unit.Path,
			Diff:         diffText,
			StringsFound: found,
			Reason:       reason,
		})
	}

	if entropyEnabled {
		tokens := s.GetEntropyFindings(unit.Line)
		if len(tokens) > 0 {
			set.Insert(types.Finding{
				CommitHash:   commit.Hash.String(),
				Commit:       commit.Message,
				Date:         commit.Committer.When.UTC().Format(dateLayout),
				Path:         unit.Path,
				Diff:         diffText,
				StringsFound: tokens,
				Reason:       types.EntropyReason,
			})
		}
	}
}

// decodeASCII lossily decodes b as strict ASCII: bytes >= 0x80 are invalid
// and dropped rather than replaced, matching DecoderTrap::Ignore semantics.
// If every byte is dropped and b was non-empty, the decode-error
// placeholder is substituted.
func decodeASCII(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x80 {
			out = append(out, c)
		}
	}
	if len(out) == 0 && len(b) > 0 {
		return decodeErrorPlaceholder
	}
	return string(out)
}
