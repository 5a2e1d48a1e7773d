package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCatalogWalksTree(t *testing.T) {
	root := t.TempDir()
	// Untagged files fall back to filename-derived titles.
	writeFile(t, filepath.Join(root, "a.mp3"), []byte("not really audio"))
	writeFile(t, filepath.Join(root, "albums", "b.flac"), []byte("also not audio"))
	writeFile(t, filepath.Join(root, "cover.jpg"), []byte("image"))
	writeFile(t, filepath.Join(root, ".hidden", "c.mp3"), []byte("skipped"))

	catalog, err := NewScanner(root).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if catalog.Size() != 2 {
		t.Fatalf("expected 2 tracks, got %d", catalog.Size())
	}

	titles := make(map[string]bool)
	for _, track := range catalog.Tracks() {
		titles[track.Title] = true
		if track.Size == 0 {
			t.Errorf("track %s has no size", track.Path)
		}
	}
	if !titles["a"] || !titles["b"] {
		t.Errorf("unexpected titles: %v", titles)
	}
}

func TestLoadCatalogStableIDs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), []byte("x"))

	first, err := NewScanner(root).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	second, err := NewScanner(root).LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if first.Tracks()[0].ID != second.Tracks()[0].ID {
		t.Error("rescan changed track ID")
	}
}

func TestLoadCatalogMissingRoot(t *testing.T) {
	if _, err := NewScanner("/does/not/exist").LoadCatalog(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
