package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingSetDeduplicates(t *testing.T) {
	s := NewFindingSet()
	f := Finding{
		CommitHash:   "abc",
		Commit:       "msg",
		Date:         "2024-01-01 00:00:00",
		Path:         "f.go",
		Diff:         "line",
		StringsFound: []string{"a", "b"},
		Reason:       "AWS API Key",
	}

	s.Insert(f)
	s.Insert(f)

	assert.Equal(t, 1, s.Len())
}

func TestFindingSetDistinguishesByStringsFound(t *testing.T) {
	s := NewFindingSet()
	base := Finding{CommitHash: "abc", Path: "f.go", Reason: "AWS API Key"}

	s.Insert(Finding{CommitHash: base.CommitHash, Path: base.Path, Reason: base.Reason, StringsFound: []string{"a"}})
	s.Insert(Finding{CommitHash: base.CommitHash, Path: base.Path, Reason: base.Reason, StringsFound: []string{"b"}})

	assert.Equal(t, 2, s.Len())
}

func TestFindingSetFindingsReturnsCopy(t *testing.T) {
	s := NewFindingSet()
	s.Insert(Finding{CommitHash: "abc"})

	out := s.Findings()
	out[0].CommitHash = "mutated"

	assert.Equal(t, "abc", s.Findings()[0].CommitHash)
}
