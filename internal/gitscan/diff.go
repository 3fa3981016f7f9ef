package gitscan

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/opsource/secrethog/pkg/scanner"
)

// LineUnit is the (path, line-bytes) tuple the diff producer hands to the
// scanner. Path is the delta's post-image path.
type LineUnit struct {
	Path string
	Line []byte
}

// DiffLines computes the diff for commit against the appropriate parent
// (the empty tree for an initial commit, the sole parent's tree
// otherwise) and yields one LineUnit per added/context/deleted diff line.
//
// go-git has no option to force binary files through the textual diff
// path rather than summarizing them as "Binary files differ"; that effect
// is reproduced here by detecting FilePatch.IsBinary() and, in that case,
// reading the complete post-image blob and yielding it as a single
// LineUnit rather than skipping the file.
func DiffLines(commit *object.Commit) ([]LineUnit, error) {
	toTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("diff producer: reading tree for %s: %w", commit.Hash, err)
	}

	var fromTree *object.Tree
	if commit.NumParents() == 1 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("diff producer: reading parent of %s: %w", commit.Hash, err)
		}
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("diff producer: reading parent tree of %s: %w", commit.Hash, err)
		}
	} else {
		fromTree = &object.Tree{}
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("diff producer: diffing trees for %s: %w", commit.Hash, err)
	}

	var units []LineUnit
	for _, change := range changes {
		path := postImagePath(change)
		if path == "" {
			// Deletion delta: no post-image path to attribute findings to.
			continue
		}

		patch, err := change.Patch()
		if err != nil {
			scanner.Log.Warnf("diff producer: skipping unpatchable change in %s at %s: %v", commit.Hash, path, err)
			continue
		}

		for _, fp := range patch.FilePatches() {
			if fp.IsBinary() {
				blob, err := binaryBlob(change)
				if err != nil {
					scanner.Log.Warnf("diff producer: reading binary blob %s at %s: %v", commit.Hash, path, err)
					continue
				}
				units = append(units, LineUnit{Path: path, Line: blob})
				continue
			}
			for _, chunk := range fp.Chunks() {
				for _, line := range splitLines(chunk.Content()) {
					units = append(units, LineUnit{Path: path, Line: line})
				}
			}
		}
	}

	return units, nil
}

func postImagePath(change *object.Change) string {
	if change.To.Name != "" {
		return change.To.Name
	}
	return ""
}

func binaryBlob(change *object.Change) ([]byte, error) {
	file, err := change.To.Tree.TreeEntryFile(&change.To.TreeEntry)
	if err != nil {
		return nil, err
	}
	r, err := file.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// splitLines breaks a diff chunk's content into individual lines, dropping
// the trailing empty segment produced by a final newline. It intentionally
// does not validate UTF-8: content is arbitrary bytes.
func splitLines(content string) [][]byte {
	raw := []byte(content)
	parts := bytes.Split(raw, []byte("\n"))
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}
