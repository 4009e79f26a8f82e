package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemoveJob(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	path, size, mimeType, err := store.Save(ctx, "job-1", "terms.txt", strings.NewReader("Holders may redeem at par."))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("Holders may redeem at par.")) {
		t.Fatalf("unexpected size: %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime type: %q", mimeType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "Holders may redeem at par." {
		t.Fatalf("unexpected contents: %q", data)
	}

	if err := store.RemoveJob("job-1"); err != nil {
		t.Fatalf("remove job: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file gone after RemoveJob, stat err: %v", err)
	}
}

func TestSaveScopesFilesPerJob(t *testing.T) {
	base := t.TempDir()
	store := New(base)
	ctx := context.Background()

	pathA, _, _, err := store.Save(ctx, "job-a", "doc.txt", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	pathB, _, _, err := store.Save(ctx, "job-b", "doc.txt", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if filepath.Dir(pathA) == filepath.Dir(pathB) {
		t.Fatalf("expected per-job directories, got %s and %s", pathA, pathB)
	}

	if err := store.RemoveJob("job-a"); err != nil {
		t.Fatalf("remove job-a: %v", err)
	}
	if _, err := os.Stat(pathB); err != nil {
		t.Fatalf("removing job-a must not touch job-b: %v", err)
	}
}

func TestSaveRejectsTraversalNames(t *testing.T) {
	store := New(t.TempDir())

	if _, _, _, err := store.Save(context.Background(), "job-1", "../escape.txt", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal name to be rejected")
	}
}

func TestSaveFlattensPathSeparators(t *testing.T) {
	base := t.TempDir()
	store := New(base)

	path, _, _, err := store.Save(context.Background(), "job-1", "nested/doc.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(base, "job-1") {
		t.Fatalf("file escaped the job directory: %s", path)
	}
	if filepath.Base(path) != "nested_doc.txt" {
		t.Fatalf("unexpected sanitized name: %s", filepath.Base(path))
	}
}

func TestRemoveJobRequiresID(t *testing.T) {
	store := New(t.TempDir())
	if err := store.RemoveJob(""); err == nil {
		t.Fatalf("expected error for empty job id")
	}
}
