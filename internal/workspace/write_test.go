package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Protocol-Lattice/repoforge/internal/plan"
)

func TestWriteHappyPath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "x")

	written, results := Write(base, []plan.File{
		{Path: "foo/bar.txt", Content: "hello"},
		{Path: "README.md", Content: "# x\n"},
	})
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("unexpected failure for %s: %v", r.Path, r.Err)
		}
	}

	got, err := os.ReadFile(filepath.Join(base, "foo", "bar.txt"))
	if err != nil {
		t.Fatalf("reading materialized file: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
}

func TestWriteTraversalSkipsFileButSiblingsSucceed(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "x")

	written, results := Write(base, []plan.File{
		{Path: "../escape.txt", Content: "nope"},
		{Path: "ok.txt", Content: "fine"},
	})
	if written != 1 {
		t.Fatalf("written = %d, want 1", written)
	}

	var trav *TraversalError
	if !errors.As(results[0].Err, &trav) {
		t.Fatalf("expected TraversalError for %s, got %v", results[0].Path, results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("sibling write failed: %v", results[1].Err)
	}

	if _, err := os.Stat(filepath.Join(parent, "escape.txt")); !os.IsNotExist(err) {
		t.Fatalf("traversal file was written outside base")
	}
	if _, err := os.Stat(filepath.Join(base, "ok.txt")); err != nil {
		t.Fatalf("expected ok.txt to exist: %v", err)
	}
}

func TestWriteCreatesRepoDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "deeply", "nested", "repo")

	written, _ := Write(base, []plan.File{{Path: "main.go", Content: "package main\n"}})
	if written != 1 {
		t.Fatalf("written = %d, want 1", written)
	}
	if _, err := os.Stat(filepath.Join(base, "main.go")); err != nil {
		t.Fatalf("expected file under created repo dir: %v", err)
	}
}

func TestWriteReportsPerFileErrors(t *testing.T) {
	base := t.TempDir()

	// A regular file where a directory is needed blocks that one write.
	if err := os.WriteFile(filepath.Join(base, "blocker"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	written, results := Write(base, []plan.File{
		{Path: "blocker/inner.txt", Content: "y"},
		{Path: "fine.txt", Content: "z"},
	})
	if written != 1 {
		t.Fatalf("written = %d, want 1", written)
	}
	var werr *WriteError
	if !errors.As(results[0].Err, &werr) {
		t.Fatalf("expected WriteError, got %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("sibling write failed: %v", results[1].Err)
	}
}

func TestWriteEmptyFileList(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty-repo")

	written, results := Write(base, nil)
	if written != 0 || len(results) != 0 {
		t.Fatalf("written = %d, results = %v, want 0 and none", written, results)
	}
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		t.Fatalf("repo dir was not created: %v", err)
	}
}
