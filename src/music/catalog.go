package music

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is an immutable in-memory snapshot of the source library: every
// track plus playlist membership. It is loaded once per run by a
// CatalogSource and discarded at process end.
type Catalog struct {
	tracks    []*Track
	byID      map[string]*Track
	playlists []*Playlist
}

// CatalogSource loads a library snapshot from some backing store
// (an iTunes XML export, a database, a directory scan).
type CatalogSource interface {
	LoadCatalog() (*Catalog, error)
}

// NewCatalog builds a catalog from tracks and playlists. Track IDs must be
// unique; playlist entries referencing unknown tracks are dropped.
func NewCatalog(tracks []*Track, playlists []*Playlist) (*Catalog, error) {
	byID := make(map[string]*Track, len(tracks))
	for _, t := range tracks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid track in catalog: %w", err)
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate track id in catalog: %s", t.ID)
		}
		byID[t.ID] = t
	}

	kept := make([]*Playlist, 0, len(playlists))
	for _, p := range playlists {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid playlist in catalog: %w", err)
		}
		ids := make([]string, 0, len(p.TrackIDs))
		for _, id := range p.TrackIDs {
			if _, ok := byID[id]; ok {
				ids = append(ids, id)
			}
		}
		kept = append(kept, &Playlist{Name: p.Name, TrackIDs: ids})
	}

	return &Catalog{tracks: tracks, byID: byID, playlists: kept}, nil
}

// Tracks returns all tracks in load order.
func (c *Catalog) Tracks() []*Track {
	return c.tracks
}

// Track returns the track with the given ID.
func (c *Catalog) Track(id string) (*Track, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Size returns the number of tracks in the catalog.
func (c *Catalog) Size() int {
	return len(c.tracks)
}

// Playlists returns all playlists in load order.
func (c *Catalog) Playlists() []*Playlist {
	return c.playlists
}

// Playlist returns the playlist with the given name.
func (c *Catalog) Playlist(name string) (*Playlist, bool) {
	for _, p := range c.playlists {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Artists returns all distinct artist names, sorted case-insensitively.
func (c *Catalog) Artists() []string {
	return c.distinct(func(t *Track) string { return t.Artist })
}

// Albums returns all distinct album titles, sorted case-insensitively.
func (c *Catalog) Albums() []string {
	return c.distinct(func(t *Track) string { return t.Album })
}

// Genres returns all distinct genres, sorted case-insensitively.
func (c *Catalog) Genres() []string {
	return c.distinct(func(t *Track) string { return t.Genre })
}

// PlaylistNames returns all playlist names, sorted case-insensitively.
func (c *Catalog) PlaylistNames() []string {
	seen := make(map[string]struct{}, len(c.playlists))
	names := make([]string, 0, len(c.playlists))
	for _, p := range c.playlists {
		if _, ok := seen[p.Name]; !ok {
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}
	sortCaseInsensitive(names)
	return names
}

func (c *Catalog) distinct(field func(*Track) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, t := range c.tracks {
		v := field(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	sortCaseInsensitive(values)
	return values
}

func sortCaseInsensitive(values []string) {
	sort.Slice(values, func(i, j int) bool {
		li, lj := strings.ToLower(values[i]), strings.ToLower(values[j])
		if li != lj {
			return li < lj
		}
		return values[i] < values[j]
	})
}

// SortTracks sorts tracks in place by the stable sync order
// (artist, album, title, id). Re-runs with identical inputs then produce
// identical layouts downstream.
func SortTracks(tracks []*Track) {
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Less(tracks[j])
	})
}
