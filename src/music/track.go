package music

import (
	"fmt"
	"strings"
)

// Track represents a single audio file in the source library snapshot.
// Tracks are immutable once loaded; the catalog owns them.
type Track struct {
	ID     string // persistent library identifier
	Title  string
	Artist string
	Album  string
	Genre  string
	Path   string // absolute path of the source file
	Size   int64  // file size in bytes
}

// Validate validates the track fields.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("track id cannot be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("track title cannot be empty: id -> %s", t.ID)
	}
	if strings.TrimSpace(t.Path) == "" {
		return fmt.Errorf("track path cannot be empty: id -> %s", t.ID)
	}
	if len(t.Path) > 1000 {
		return fmt.Errorf("track path cannot exceed 1000 characters, got %d: path -> %s", len(t.Path), t.Path)
	}
	if t.Size < 0 {
		return fmt.Errorf("track size cannot be negative, got %d: id -> %s", t.Size, t.ID)
	}
	return nil
}

// Filename returns just the filename from the source path.
func (t *Track) Filename() string {
	if i := strings.LastIndexByte(t.Path, '/'); i >= 0 {
		return t.Path[i+1:]
	}
	return t.Path
}

// Less orders tracks by artist, then album, then title, with the ID as a
// final tie breaker so the order is total.
func (t *Track) Less(other *Track) bool {
	if t.Artist != other.Artist {
		return t.Artist < other.Artist
	}
	if t.Album != other.Album {
		return t.Album < other.Album
	}
	if t.Title != other.Title {
		return t.Title < other.Title
	}
	return t.ID < other.ID
}
