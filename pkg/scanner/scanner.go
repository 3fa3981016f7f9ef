// Package scanner composes the pattern set and entropy analyzer into the
// fingerprint-match-and-entropy core shared by every front-end.
package scanner

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/opsource/secrethog/pkg/entropy"
	"github.com/opsource/secrethog/pkg/patterns"
	"github.com/opsource/secrethog/pkg/types"
)

// Log is the process-wide logger used by the scanning pipeline. Treating it
// as package state mirrors the original's global logger init: a side
// effect of driver startup, idempotent under repeated calls to SetLogging.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.WarnLevel)
}

// Scanner applies a Pattern Set and an Entropy Analyzer to byte buffers.
type Scanner struct {
	patterns *patterns.Set
	entropy  *entropy.Analyzer
}

// Option configures a Scanner at construction time.
type Option func(*buildOpts)

type buildOpts struct {
	regexFile       string
	caseInsensitive bool
}

// WithRegexFile overrides the default pattern catalogue with one loaded
// from the given JSON file path.
func WithRegexFile(path string) Option {
	return func(o *buildOpts) { o.regexFile = path }
}

// WithCaseInsensitive compiles every catalogue pattern case-insensitively.
func WithCaseInsensitive(on bool) Option {
	return func(o *buildOpts) { o.caseInsensitive = on }
}

// New builds a Scanner. A regex file, if given, is a fatal configuration
// error on read or parse failure; a bad pattern in either catalogue is
// likewise fatal, reported with the offending reason.
func New(opts ...Option) (*Scanner, error) {
	o := &buildOpts{}
	for _, opt := range opts {
		opt(o)
	}

	patOpts := []patterns.Option{patterns.WithCaseInsensitive(o.caseInsensitive)}
	if o.regexFile != "" {
		data, err := os.ReadFile(o.regexFile)
		if err != nil {
			return nil, err
		}
		catalogue, err := patterns.LoadCatalogue(data)
		if err != nil {
			return nil, err
		}
		patOpts = append(patOpts, patterns.WithCatalogue(catalogue))
	}

	set, err := patterns.New(patOpts...)
	if err != nil {
		return nil, err
	}

	return &Scanner{
		patterns: set,
		entropy:  entropy.New(),
	}, nil
}

// GetMatches returns, for each pattern reason, the non-overlapping match
// ranges found in line. Pure; no side effects.
func (s *Scanner) GetMatches(line []byte) map[string][]types.MatchRange {
	return s.patterns.Matches(line)
}

// GetEntropyFindings returns the ordered list of high-entropy tokens in
// line. Pure; no side effects.
func (s *Scanner) GetEntropyFindings(line []byte) []string {
	return s.entropy.Find(line)
}

// SetLogging configures the process-wide logging collaborator. 0 = warn,
// 1 = info, 2 = debug, >=3 = trace. Idempotent; the last call wins.
func SetLogging(verbosity int) {
	switch {
	case verbosity <= 0:
		Log.SetLevel(logrus.WarnLevel)
	case verbosity == 1:
		Log.SetLevel(logrus.InfoLevel)
	case verbosity == 2:
		Log.SetLevel(logrus.DebugLevel)
	default:
		Log.SetLevel(logrus.TraceLevel)
	}
}
