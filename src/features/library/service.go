package library

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soulsync/src/music"
)

// Service is the domain service for browsing the loaded catalog.
type Service struct {
	catalog *music.Catalog
}

// NewService creates a new library service.
func NewService(catalog *music.Catalog) *Service {
	return &Service{catalog: catalog}
}

// GetTracks returns all tracks in the catalog in stable order.
func (s *Service) GetTracks() []*music.Track {
	slog.Debug("GetTracks service called")
	tracks := s.catalog.Tracks()
	slog.Debug("GetTracks completed", "count", len(tracks))
	return tracks
}

// GetTrack returns a single track by its catalog ID.
func (s *Service) GetTrack(id string) (*music.Track, error) {
	track, ok := s.catalog.Track(id)
	if !ok {
		return nil, fmt.Errorf("track %s not found", id)
	}
	return track, nil
}

// GetArtists returns the distinct artist names in the catalog.
func (s *Service) GetArtists() []string {
	return s.catalog.Artists()
}

// GetAlbums returns the distinct album names in the catalog.
func (s *Service) GetAlbums() []string {
	return s.catalog.Albums()
}

// GetGenres returns the distinct genre names in the catalog.
func (s *Service) GetGenres() []string {
	return s.catalog.Genres()
}

// GetPlaylists returns all playlists in the catalog.
func (s *Service) GetPlaylists() []*music.Playlist {
	return s.catalog.Playlists()
}

// GetPlaylist returns a playlist by name.
func (s *Service) GetPlaylist(name string) (*music.Playlist, error) {
	playlist, ok := s.catalog.Playlist(name)
	if !ok {
		return nil, fmt.Errorf("playlist %s not found", name)
	}
	return playlist, nil
}

// Stats summarizes the catalog for status surfaces.
type Stats struct {
	Tracks     int   `json:"tracks"`
	Artists    int   `json:"artists"`
	Albums     int   `json:"albums"`
	Genres     int   `json:"genres"`
	Playlists  int   `json:"playlists"`
	TotalBytes int64 `json:"totalBytes"`
}

// GetStats returns catalog counts and total size.
func (s *Service) GetStats() Stats {
	var total int64
	for _, t := range s.catalog.Tracks() {
		total += t.Size
	}
	return Stats{
		Tracks:     s.catalog.Size(),
		Artists:    len(s.catalog.Artists()),
		Albums:     len(s.catalog.Albums()),
		Genres:     len(s.catalog.Genres()),
		Playlists:  len(s.catalog.Playlists()),
		TotalBytes: total,
	}
}
