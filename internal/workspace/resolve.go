// Package workspace resolves model-chosen paths inside a target directory
// and materializes validated plans onto the real filesystem.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TraversalError reports a relative path that escapes its base directory.
type TraversalError struct {
	Path string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("unsafe path outside base dir: %q", e.Path)
}

// Resolve joins rel onto base and returns the absolute, symlink-free
// target. Back-slashes are normalized to forward slashes and leading
// slashes stripped, so an absolute-looking path degrades to a relative one.
// Parent traversal segments are rejected outright, and the resolved target
// must be base itself or nested under it; the containment check is
// separator-aware, so "base/foobar" is never treated as nested under
// "base/foo". Resolve touches nothing on disk.
func Resolve(base, rel string) (string, error) {
	cleaned := strings.TrimLeft(strings.ReplaceAll(rel, "\\", "/"), "/")
	for _, seg := range strings.Split(cleaned, "/") {
		if seg == ".." {
			return "", &TraversalError{Path: rel}
		}
	}

	canonBase, err := canonicalize(base)
	if err != nil {
		return "", err
	}
	target, err := canonicalize(filepath.Join(canonBase, filepath.FromSlash(cleaned)))
	if err != nil {
		return "", err
	}

	if target != canonBase && !strings.HasPrefix(target, canonBase+string(os.PathSeparator)) {
		return "", &TraversalError{Path: rel}
	}
	return target, nil
}

// canonicalize returns path in absolute form with symlinks resolved. A
// target that does not exist yet is resolved through its deepest existing
// ancestor, so a symlinked parent cannot smuggle a write outside base.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	dir, rest := abs, ""
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
}
