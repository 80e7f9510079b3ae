package windowstate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winstate/internal/platform"
)

func TestFileStore_MissingFileIsNoState(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if filepath.Base(store.Path()) != DefaultFileName {
		t.Fatalf("expected default file name, got %q", store.Path())
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoState) {
		t.Fatalf("expected ErrNoState, got %v", err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := NewFileStore(dir, DefaultFileName)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	_, err = store.Load()
	if err == nil || errors.Is(err, ErrNoState) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestFileStore_RoundTripKeys(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store, err := NewFileStore(dir, "state.json")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	g := Geometry{
		X:             intPtr(1),
		Y:             intPtr(2),
		Width:         3,
		Height:        4,
		IsMaximized:   true,
		DisplayBounds: &platform.Rect{Width: 1920, Height: 1080},
	}
	if err := store.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, key := range []string{`"x": 1`, `"isMaximized": true`, `"isFullScreen": false`, `"displayBounds"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in saved file:\n%s", key, data)
		}
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rec.HasBounds() || !rec.IsMaximized || rec.DisplayBounds == nil || rec.DisplayBounds.Width != 1920 {
		t.Fatalf("unexpected record %+v", rec)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the state file, found %d entries", len(entries))
	}
}

func TestNewFileStore_RejectsPaths(t *testing.T) {
	for _, file := range []string{"../x.json", "a/b.json", ".."} {
		if _, err := NewFileStore(t.TempDir(), file); err == nil {
			t.Errorf("expected error for file %q", file)
		}
	}
	if _, err := NewFileStore("", "x.json"); err == nil {
		t.Errorf("expected error for empty dir")
	}
}

func TestFileStore_Remove(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := store.Save(Geometry{Width: 1, Height: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoState) {
		t.Fatalf("expected ErrNoState after remove, got %v", err)
	}
}
