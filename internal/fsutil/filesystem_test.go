package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestDiskFS_RoundTrip(t *testing.T) {
	disk := DiskFS{}
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")

	if err := disk.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path := filepath.Join(dir, "trails.html")
	if err := disk.WriteFile(path, []byte("<html>"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := disk.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "<html>" {
		t.Errorf("expected %q, got %q", "<html>", data)
	}

	if !disk.Exists(path) {
		t.Error("expected Exists to report the written file")
	}
	if disk.Exists(filepath.Join(dir, "missing.png")) {
		t.Error("expected Exists to be false for a missing file")
	}
}

func TestMemFS_RoundTrip(t *testing.T) {
	mem := NewMemFS()

	if err := mem.MkdirAll("snapshots/session", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if !mem.Exists("snapshots/session") {
		t.Error("expected directory to exist after MkdirAll")
	}
	if !mem.Exists("snapshots") {
		t.Error("expected parent directory to exist after MkdirAll")
	}

	if err := mem.WriteFile("snapshots/session/trails.png", []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := mem.ReadFile("snapshots/session/trails.png")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("expected 3 bytes, got %d", len(data))
	}
}

func TestMemFS_ReadMissing(t *testing.T) {
	_, err := NewMemFS().ReadFile("nope.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemFS_OverwriteReplacesContents(t *testing.T) {
	mem := NewMemFS()

	if err := mem.WriteFile("log.txt", []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := mem.WriteFile("log.txt", []byte("second"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := mem.ReadFile("log.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", data)
	}
}

func TestMemFS_CleansPaths(t *testing.T) {
	mem := NewMemFS()

	if err := mem.WriteFile("out//shot.png", []byte("png"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := mem.ReadFile("out/shot.png"); err != nil {
		t.Errorf("expected the cleaned path to resolve, got %v", err)
	}
}

func TestMemFS_CopiesData(t *testing.T) {
	mem := NewMemFS()

	buf := []byte("original")
	if err := mem.WriteFile("a.txt", buf, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	buf[0] = 'X'

	data, err := mem.ReadFile("a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("stored contents aliased the caller's buffer: %q", data)
	}
}
