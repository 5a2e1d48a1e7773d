package library

import (
	"testing"

	"github.com/contre95/soulsync/src/music"
)

func testService(t *testing.T) *Service {
	t.Helper()
	catalog, err := music.NewCatalog([]*music.Track{
		{ID: "1", Title: "One", Artist: "Ann", Album: "First", Genre: "Rock", Path: "/lib/1.mp3", Size: 10},
		{ID: "2", Title: "Two", Artist: "Ann", Album: "First", Genre: "Rock", Path: "/lib/2.mp3", Size: 20},
		{ID: "3", Title: "Three", Artist: "Bob", Album: "Second", Genre: "Jazz", Path: "/lib/3.mp3", Size: 30},
	}, []*music.Playlist{
		{Name: "Favs", TrackIDs: []string{"1", "3"}},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return NewService(catalog)
}

func TestGetStats(t *testing.T) {
	stats := testService(t).GetStats()

	if stats.Tracks != 3 {
		t.Errorf("expected 3 tracks, got %d", stats.Tracks)
	}
	if stats.Artists != 2 || stats.Albums != 2 || stats.Genres != 2 {
		t.Errorf("unexpected distinct counts: %+v", stats)
	}
	if stats.Playlists != 1 {
		t.Errorf("expected 1 playlist, got %d", stats.Playlists)
	}
	if stats.TotalBytes != 60 {
		t.Errorf("expected 60 total bytes, got %d", stats.TotalBytes)
	}
}

func TestGetTrack(t *testing.T) {
	service := testService(t)

	track, err := service.GetTrack("2")
	if err != nil {
		t.Fatalf("GetTrack: %v", err)
	}
	if track.Title != "Two" {
		t.Errorf("expected track Two, got %s", track.Title)
	}

	if _, err := service.GetTrack("missing"); err == nil {
		t.Error("expected error for unknown track ID")
	}
}

func TestGetPlaylist(t *testing.T) {
	service := testService(t)

	playlist, err := service.GetPlaylist("Favs")
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if len(playlist.TrackIDs) != 2 {
		t.Errorf("expected 2 playlist members, got %d", len(playlist.TrackIDs))
	}

	if _, err := service.GetPlaylist("nope"); err == nil {
		t.Error("expected error for unknown playlist")
	}
}

func TestGetArtistsSorted(t *testing.T) {
	artists := testService(t).GetArtists()
	if len(artists) != 2 || artists[0] != "Ann" || artists[1] != "Bob" {
		t.Errorf("unexpected artists: %v", artists)
	}
}
