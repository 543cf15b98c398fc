package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Protocol-Lattice/repoforge/internal/plan"
)

// WriteError reports an I/O failure while materializing one file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileResult records the outcome of one file write. Err is nil on success.
type FileResult struct {
	Path string
	Err  error
}

// Write materializes files under repoDir, creating the directory and any
// parents as needed. Each path is re-resolved through Resolve immediately
// before writing; content is written as UTF-8 text. One file's failure is
// recorded and does not abort the remaining files.
func Write(repoDir string, files []plan.File) (int, []FileResult) {
	results := make([]FileResult, 0, len(files))

	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		for _, f := range files {
			results = append(results, FileResult{Path: f.Path, Err: &WriteError{Path: f.Path, Err: err}})
		}
		return 0, results
	}

	written := 0
	for _, f := range files {
		if err := writeOne(repoDir, f); err != nil {
			results = append(results, FileResult{Path: f.Path, Err: err})
			continue
		}
		written++
		results = append(results, FileResult{Path: f.Path})
	}
	return written, results
}

func writeOne(repoDir string, f plan.File) error {
	target, err := Resolve(repoDir, f.Path)
	if err != nil {
		var trav *TraversalError
		if errors.As(err, &trav) {
			return err
		}
		return &WriteError{Path: f.Path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	return nil
}
