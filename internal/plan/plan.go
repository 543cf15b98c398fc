// Package plan defines the repository plan a model produces and the
// validation boundary that turns untrusted plan JSON into typed data.
package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// File is one generated file: a repo-relative path and its text content.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Repo is one planned repository.
type Repo struct {
	Name  string `json:"name"`
	Dir   string `json:"dir"`
	Files []File `json:"files"`
}

// Plan is an ordered sequence of repositories. Identity is positional;
// names are not required to be unique.
type Plan struct {
	Repos []Repo `json:"repos"`
}

// FileCount returns the total number of files across all repos.
func (p *Plan) FileCount() int {
	n := 0
	for _, r := range p.Repos {
		n += len(r.Files)
	}
	return n
}

// ErrEmptyPlan reports a plan whose repos sequence is missing or empty.
var ErrEmptyPlan = errors.New("model returned no repos")

// MalformedRepoError reports a repo entry missing its required structure.
type MalformedRepoError struct {
	Index  int
	Reason string
}

func (e *MalformedRepoError) Error() string {
	return fmt.Sprintf("invalid repo entry %d: %s", e.Index+1, e.Reason)
}

// UnsafePathError reports a file path that is empty, absolute, or escapes
// its repo directory.
type UnsafePathError struct {
	Path string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("unsafe or empty file path: %q", e.Path)
}

// Decode parses untrusted plan JSON and validates it, failing on the first
// violation. It is the single boundary between model output (or user-edited
// JSON) and typed plan data: required keys are checked explicitly, every
// file path must be a safe relative path, and non-string scalar or compound
// values are stringified rather than rejected. Unrecognized keys are
// ignored.
func Decode(data []byte) (*Plan, error) {
	var raw struct {
		Repos []json.RawMessage `json:"repos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("plan is not valid JSON: %w", err)
	}
	if len(raw.Repos) == 0 {
		return nil, ErrEmptyPlan
	}

	out := &Plan{Repos: make([]Repo, 0, len(raw.Repos))}
	for i, entry := range raw.Repos {
		var obj map[string]any
		if err := json.Unmarshal(entry, &obj); err != nil || obj == nil {
			return nil, &MalformedRepoError{Index: i, Reason: "not an object"}
		}
		for _, key := range []string{"name", "dir", "files"} {
			if _, ok := obj[key]; !ok {
				return nil, &MalformedRepoError{Index: i, Reason: fmt.Sprintf("missing %q", key)}
			}
		}
		rawFiles, ok := obj["files"].([]any)
		if !ok {
			return nil, &MalformedRepoError{Index: i, Reason: "files is not a list"}
		}

		repo := Repo{
			Name:  strings.TrimSpace(stringify(obj["name"])),
			Dir:   strings.TrimSpace(stringify(obj["dir"])),
			Files: make([]File, 0, len(rawFiles)),
		}
		for j, rf := range rawFiles {
			fobj, ok := rf.(map[string]any)
			if !ok {
				return nil, &MalformedRepoError{Index: i, Reason: fmt.Sprintf("file entry %d is not an object", j+1)}
			}
			path := strings.TrimSpace(stringify(fobj["path"]))
			if !safeRelPath(path) {
				return nil, &UnsafePathError{Path: path}
			}
			file := File{Path: path}
			if c, present := fobj["content"]; present && c != nil {
				file.Content = stringify(c)
			}
			repo.Files = append(repo.Files, file)
		}
		out.Repos = append(out.Repos, repo)
	}
	return out, nil
}

// safeRelPath reports whether p is usable as a repo-relative path:
// non-empty, not absolute, no drive-letter prefix, no parent traversal
// segment. This is the syntactic half of the traversal defense; the
// filesystem half runs again at write time.
func safeRelPath(p string) bool {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return false
	}
	if strings.HasPrefix(p, "/") {
		return false
	}
	if len(p) >= 2 && p[1] == ':' {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// stringify renders a decoded JSON value as text. Models occasionally emit
// numbers or nested objects where the schema wants strings; those are
// preserved as text instead of failing the whole plan.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
