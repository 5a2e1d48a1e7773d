package music

import (
	"fmt"
	"strings"
)

// Playlist represents a named, ordered collection of track IDs from the
// source library. Playlist membership is read-only here; the library that
// exported the snapshot owns the playlists themselves.
type Playlist struct {
	Name     string
	TrackIDs []string
}

// Validate validates the playlist fields.
func (p *Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("playlist name cannot be empty")
	}
	if len(p.Name) > 200 {
		return fmt.Errorf("playlist name cannot exceed 200 characters, got %d: name -> %s", len(p.Name), p.Name)
	}
	return nil
}

// Contains checks if a track is in the playlist.
func (p *Playlist) Contains(trackID string) bool {
	for _, id := range p.TrackIDs {
		if id == trackID {
			return true
		}
	}
	return false
}
