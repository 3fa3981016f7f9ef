package scanner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/opsource/secrethog/pkg/types"
)

// OutputFindings serializes findings as a JSON array to path (stdout if
// path is empty). pretty inserts two-space indentation; otherwise the
// array is emitted as a single compact line.
func OutputFindings(findings []types.Finding, path string, pretty bool) error {
	w, closeFn, err := sink(path)
	if err != nil {
		return err
	}
	defer closeFn()

	return writeJSON(w, findings, pretty)
}

func sink(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("output findings: opening %s: %w", path, err)
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, findings []types.Finding, pretty bool) error {
	if findings == nil {
		findings = []types.Finding{}
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(findings, "", "  ")
	} else {
		data, err = json.Marshal(findings)
	}
	if err != nil {
		return fmt.Errorf("output findings: marshaling: %w", err)
	}

	_, err = w.Write(data)
	return err
}
