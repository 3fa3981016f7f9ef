// Package types holds the data model shared across the secret-scanning
// engine and the git-history driver.
package types

// MatchRange is a half-open byte range [Start, End) within a scanned buffer.
type MatchRange struct {
	Start int
	End   int
}

// Finding is a single piece of evidence produced while scanning a git
// repository's history. Two findings are equal iff every field is equal;
// the aggregator relies on this for deduplication.
type Finding struct {
	CommitHash   string   `json:"commitHash"`
	Commit       string   `json:"commit"`
	Date         string   `json:"date"`
	Path         string   `json:"path"`
	Diff         string   `json:"diff"`
	StringsFound []string `json:"stringsFound"`
	Reason       string   `json:"reason"`
}

// EntropyReason is the literal reason string used for entropy-derived
// findings, as opposed to named regex reasons from the pattern catalogue.
const EntropyReason = "Entropy"

// key returns a string that is equal for two Findings iff every field of
// the two Findings is equal, suitable for use as a map key in a
// deduplicating set.
func (f Finding) key() string {
	b := make([]byte, 0, 64+len(f.Diff)+len(f.Commit))
	b = append(b, f.CommitHash...)
	b = append(b, '\x00')
	b = append(b, f.Commit...)
	b = append(b, '\x00')
	b = append(b, f.Date...)
	b = append(b, '\x00')
	b = append(b, f.Path...)
	b = append(b, '\x00')
	b = append(b, f.Diff...)
	b = append(b, '\x00')
	b = append(b, f.Reason...)
	for _, s := range f.StringsFound {
		b = append(b, '\x00')
		b = append(b, s...)
	}
	return string(b)
}

// FindingSet is an insertion-order-independent, deduplicating accumulator
// of Findings: inserting an already-present Finding is a no-op.
type FindingSet struct {
	seen  map[string]struct{}
	items []Finding
}

// NewFindingSet creates an empty FindingSet.
func NewFindingSet() *FindingSet {
	return &FindingSet{seen: make(map[string]struct{})}
}

// Insert adds f to the set. Inserting an already-present Finding is a no-op.
func (s *FindingSet) Insert(f Finding) {
	k := f.key()
	if _, ok := s.seen[k]; ok {
		return
	}
	s.seen[k] = struct{}{}
	s.items = append(s.items, f)
}

// Len returns the number of distinct findings accumulated so far.
func (s *FindingSet) Len() int {
	return len(s.items)
}

// Findings returns the accumulated findings. Order must not be relied upon
// by consumers — it reflects insertion order only incidentally.
func (s *FindingSet) Findings() []Finding {
	out := make([]Finding, len(s.items))
	copy(out, s.items)
	return out
}
