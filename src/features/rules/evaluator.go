package rules

import (
	"github.com/contre95/soulsync/src/music"
)

// Selection is the outcome of evaluating a rule set against a catalog.
type Selection struct {
	// Tracks are the selected tracks in stable (artist, album, title)
	// order.
	Tracks []*music.Track
	// FillPool are the tracks that were not selected but are not vetoed
	// by an exclusion either; random fill may draw from them. Same
	// stable order.
	FillPool []*music.Track
}

// Evaluate computes the selected set for a rule set. It is a pure function
// of its inputs: no I/O, no side effects. An empty catalog yields an empty
// selection, which is not an error.
//
// A track is selected iff it matches at least one include value in some
// category (or the rule set is open), and matches no exclude value in any
// category. Exclusion always wins, even when the same value appears on
// both sides of a category.
func Evaluate(catalog *music.Catalog, rs RuleSet) Selection {
	m := newMatcher(catalog, rs)

	var sel Selection
	for _, t := range catalog.Tracks() {
		if m.excluded(t) {
			continue
		}
		if m.included(t) {
			sel.Tracks = append(sel.Tracks, t)
		} else {
			sel.FillPool = append(sel.FillPool, t)
		}
	}

	music.SortTracks(sel.Tracks)
	music.SortTracks(sel.FillPool)
	return sel
}

// matcher holds the rule set materialized as lookup sets, with playlist
// names resolved to track ID sets against the catalog.
type matcher struct {
	open bool

	inArtists, exArtists map[string]struct{}
	inAlbums, exAlbums   map[string]struct{}
	inGenres, exGenres   map[string]struct{}
	inTracks, exTracks   map[string]struct{}
}

func newMatcher(catalog *music.Catalog, rs RuleSet) *matcher {
	return &matcher{
		open:      rs.Open(),
		inArtists: toSet(rs.IncludedArtists),
		exArtists: toSet(rs.ExcludedArtists),
		inAlbums:  toSet(rs.IncludedAlbums),
		exAlbums:  toSet(rs.ExcludedAlbums),
		inGenres:  toSet(rs.IncludedGenres),
		exGenres:  toSet(rs.ExcludedGenres),
		inTracks:  playlistTrackIDs(catalog, rs.IncludedPlaylists),
		exTracks:  playlistTrackIDs(catalog, rs.ExcludedPlaylists),
	}
}

func (m *matcher) excluded(t *music.Track) bool {
	return contains(m.exArtists, t.Artist) ||
		contains(m.exAlbums, t.Album) ||
		contains(m.exGenres, t.Genre) ||
		contains(m.exTracks, t.ID)
}

func (m *matcher) included(t *music.Track) bool {
	if m.open {
		return true
	}
	return contains(m.inArtists, t.Artist) ||
		contains(m.inAlbums, t.Album) ||
		contains(m.inGenres, t.Genre) ||
		contains(m.inTracks, t.ID)
}

// playlistTrackIDs resolves playlist names to the union of their member
// track IDs. Names absent from the catalog resolve to nothing.
func playlistTrackIDs(catalog *music.Catalog, names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	wanted := toSet(names)
	ids := make(map[string]struct{})
	for _, p := range catalog.Playlists() {
		if _, ok := wanted[p.Name]; !ok {
			continue
		}
		for _, id := range p.TrackIDs {
			ids[id] = struct{}{}
		}
	}
	return ids
}

func contains(set map[string]struct{}, v string) bool {
	if set == nil {
		return false
	}
	_, ok := set[v]
	return ok
}
