package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/contre95/soulsync/src/music"
)

func openTestCatalog(t *testing.T) *SqliteCatalog {
	t.Helper()
	store, err := NewSqliteCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewSqliteCatalog: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadCatalog(t *testing.T) {
	store := openTestCatalog(t)

	in, err := music.NewCatalog([]*music.Track{
		{ID: "1", Title: "One", Artist: "Ann", Album: "First", Genre: "Rock", Path: "/lib/1.mp3", Size: 10},
		{ID: "2", Title: "Two", Artist: "Bob", Album: "Second", Genre: "Jazz", Path: "/lib/2.mp3", Size: 20},
	}, []*music.Playlist{
		{Name: "Favs", TrackIDs: []string{"2", "1"}},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if err := store.SaveCatalog(context.Background(), in); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	out, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if out.Size() != 2 {
		t.Fatalf("expected 2 tracks, got %d", out.Size())
	}
	track, ok := out.Track("2")
	if !ok || track.Artist != "Bob" || track.Size != 20 {
		t.Errorf("unexpected track: %+v", track)
	}

	playlist, ok := out.Playlist("Favs")
	if !ok {
		t.Fatal("missing playlist")
	}
	// Member order survives the round trip.
	if len(playlist.TrackIDs) != 2 || playlist.TrackIDs[0] != "2" || playlist.TrackIDs[1] != "1" {
		t.Errorf("unexpected playlist members: %v", playlist.TrackIDs)
	}
}

func TestSaveCatalogReplacesSnapshot(t *testing.T) {
	store := openTestCatalog(t)
	ctx := context.Background()

	first, _ := music.NewCatalog([]*music.Track{
		{ID: "1", Title: "One", Path: "/lib/1.mp3", Size: 10},
	}, nil)
	if err := store.SaveCatalog(ctx, first); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	second, _ := music.NewCatalog([]*music.Track{
		{ID: "2", Title: "Two", Path: "/lib/2.mp3", Size: 20},
	}, nil)
	if err := store.SaveCatalog(ctx, second); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	out, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if out.Size() != 1 {
		t.Fatalf("expected snapshot replaced, got %d tracks", out.Size())
	}
	if _, ok := out.Track("1"); ok {
		t.Error("old track survived the replace")
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	store := openTestCatalog(t)

	out, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if out.Size() != 0 {
		t.Fatalf("expected empty catalog, got %d tracks", out.Size())
	}
}
