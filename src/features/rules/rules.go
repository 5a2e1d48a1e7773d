package rules

// RuleSet describes which parts of the catalog a device receives. Each
// category carries an include list and an exclude list of values. A value
// referencing nothing in the catalog simply matches no tracks.
type RuleSet struct {
	IncludedArtists   []string `json:"includedArtists,omitempty"`
	ExcludedArtists   []string `json:"excludedArtists,omitempty"`
	IncludedAlbums    []string `json:"includedAlbums,omitempty"`
	ExcludedAlbums    []string `json:"excludedAlbums,omitempty"`
	IncludedGenres    []string `json:"includedGenres,omitempty"`
	ExcludedGenres    []string `json:"excludedGenres,omitempty"`
	IncludedPlaylists []string `json:"includedPlaylists,omitempty"`
	ExcludedPlaylists []string `json:"excludedPlaylists,omitempty"`
}

// Open reports whether the rule set includes everything: no include value
// in any category means the selection is open, filtered only by exclusions.
func (r RuleSet) Open() bool {
	return len(r.IncludedArtists) == 0 &&
		len(r.IncludedAlbums) == 0 &&
		len(r.IncludedGenres) == 0 &&
		len(r.IncludedPlaylists) == 0
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
