package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollectDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "b.txt"))
	touch(t, filepath.Join(root, "c.jpg"))
	touch(t, filepath.Join(root, ".hidden.pdf"))
	touch(t, filepath.Join(root, "sub", "d.PDF"))
	touch(t, filepath.Join(root, ".git", "e.pdf"))

	paths, stats, err := CollectDirectory(root, nil)
	if err != nil {
		t.Fatalf("CollectDirectory: %v", err)
	}

	var names []string
	for _, p := range paths {
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			t.Fatalf("rel: %v", relErr)
		}
		names = append(names, rel)
	}
	sort.Strings(names)

	want := []string{"a.pdf", "b.txt", filepath.Join("sub", "d.PDF")}
	if len(names) != len(want) {
		t.Fatalf("paths = %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("paths = %v want %v", names, want)
		}
	}
	if stats.Matched != 3 {
		t.Fatalf("matched = %d want 3", stats.Matched)
	}
	if stats.Failed != 0 {
		t.Fatalf("failed = %d", stats.Failed)
	}
}

func TestCollectDirectoryCustomExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "b.csv"))

	paths, stats, err := CollectDirectory(root, []string{".CSV"})
	if err != nil {
		t.Fatalf("CollectDirectory: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "b.csv" {
		t.Fatalf("paths = %v", paths)
	}
	if stats.Matched != 1 {
		t.Fatalf("matched = %d", stats.Matched)
	}
}

func TestCollectDirectoryEmptyRoot(t *testing.T) {
	t.Parallel()

	if _, _, err := CollectDirectory("  ", nil); err == nil {
		t.Fatalf("blank root accepted")
	}
}
