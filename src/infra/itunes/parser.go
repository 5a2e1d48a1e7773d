// Package itunes loads a catalog from an iTunes/Music "Library.xml"
// export. The file is an Apple plist: a tree of dict/array/scalar
// elements where each dict is a flat sequence of <key> elements each
// followed by its value element.
package itunes

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/contre95/soulsync/src/music"
)

// Library is a CatalogSource backed by a Library.xml export.
type Library struct {
	path string
}

// NewLibrary creates a Library reading from the given Library.xml path.
func NewLibrary(path string) *Library {
	return &Library{path: path}
}

// LoadCatalog parses the export and builds the catalog snapshot.
func (l *Library) LoadCatalog() (*music.Catalog, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(l.path); err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	plist := doc.SelectElement("plist")
	if plist == nil {
		return nil, fmt.Errorf("not a plist file: %s", l.path)
	}
	root := plist.SelectElement("dict")
	if root == nil {
		return nil, fmt.Errorf("plist has no root dict: %s", l.path)
	}

	var tracks []*music.Track
	var playlists []*music.Playlist
	// Playlist items reference tracks by their numeric library ID, which
	// changes between exports. The persistent ID is stable, so tracks are
	// keyed by it and the numeric IDs are remapped.
	byLibraryID := make(map[string]string)

	for key, value := range dictPairs(root) {
		switch key {
		case "Tracks":
			if value.Tag != "dict" {
				return nil, fmt.Errorf("unexpected Tracks element <%s>", value.Tag)
			}
			for _, trackDict := range dictValues(value) {
				track, libraryID, err := parseTrack(trackDict)
				if err != nil {
					slog.Warn("Skipping unparseable track", "error", err)
					continue
				}
				if track == nil {
					continue
				}
				tracks = append(tracks, track)
				byLibraryID[libraryID] = track.ID
			}
		case "Playlists":
			if value.Tag != "array" {
				return nil, fmt.Errorf("unexpected Playlists element <%s>", value.Tag)
			}
			for _, playlistDict := range value.SelectElements("dict") {
				if playlist := parsePlaylist(playlistDict, byLibraryID); playlist != nil {
					playlists = append(playlists, playlist)
				}
			}
		}
	}

	slog.Info("Parsed library export", "tracks", len(tracks), "playlists", len(playlists))
	return music.NewCatalog(tracks, playlists)
}

// parseTrack builds a track from its plist dict. Entries with no local
// file location (streams, cloud-only items) return nil without error.
func parseTrack(dict *etree.Element) (*music.Track, string, error) {
	track := &music.Track{}
	libraryID := ""

	for key, value := range dictPairs(dict) {
		switch key {
		case "Track ID":
			libraryID = value.Text()
		case "Persistent ID":
			track.ID = value.Text()
		case "Name":
			track.Title = value.Text()
		case "Artist":
			track.Artist = value.Text()
		case "Album":
			track.Album = value.Text()
		case "Genre":
			track.Genre = value.Text()
		case "Size":
			size, err := strconv.ParseInt(value.Text(), 10, 64)
			if err != nil {
				return nil, "", fmt.Errorf("bad track size %q: %w", value.Text(), err)
			}
			track.Size = size
		case "Location":
			path, err := locationToPath(value.Text())
			if err != nil {
				return nil, "", err
			}
			track.Path = path
		}
	}

	if track.Path == "" {
		return nil, "", nil
	}
	if track.ID == "" {
		// Old exports may lack persistent IDs; the numeric ID still
		// identifies the track within this snapshot.
		track.ID = libraryID
	}
	if err := track.Validate(); err != nil {
		return nil, "", err
	}
	return track, libraryID, nil
}

// parsePlaylist builds a playlist from its plist dict, remapping member
// IDs. Library-internal playlists (Master, Distinguished Kind) are
// dropped, as are playlists with no resolvable members.
func parsePlaylist(dict *etree.Element, byLibraryID map[string]string) *music.Playlist {
	playlist := &music.Playlist{}

	for key, value := range dictPairs(dict) {
		switch key {
		case "Name":
			playlist.Name = value.Text()
		case "Master", "Distinguished Kind":
			return nil
		case "Playlist Items":
			for _, item := range value.SelectElements("dict") {
				for itemKey, itemValue := range dictPairs(item) {
					if itemKey != "Track ID" {
						continue
					}
					if trackID, ok := byLibraryID[itemValue.Text()]; ok {
						playlist.TrackIDs = append(playlist.TrackIDs, trackID)
					}
				}
			}
		}
	}

	if playlist.Name == "" || len(playlist.TrackIDs) == 0 {
		return nil
	}
	return playlist
}

// locationToPath converts a plist Location URL to a filesystem path.
func locationToPath(location string) (string, error) {
	path := strings.TrimPrefix(location, "file://localhost")
	path = strings.TrimPrefix(path, "file://")
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("bad track location %q: %w", location, err)
	}
	return decoded, nil
}

// dictPairs iterates a plist dict as (key, value) pairs. A trailing key
// with no value element is ignored.
func dictPairs(dict *etree.Element) func(yield func(string, *etree.Element) bool) {
	return func(yield func(string, *etree.Element) bool) {
		children := dict.ChildElements()
		for i := 0; i+1 < len(children); i++ {
			if children[i].Tag != "key" {
				continue
			}
			if !yield(children[i].Text(), children[i+1]) {
				return
			}
			i++
		}
	}
}

// dictValues returns the value elements of a dict, skipping the keys.
func dictValues(dict *etree.Element) []*etree.Element {
	children := dict.ChildElements()
	values := make([]*etree.Element, 0, len(children)/2)
	for i := 0; i+1 < len(children); i++ {
		if children[i].Tag != "key" {
			continue
		}
		values = append(values, children[i+1])
		i++
	}
	return values
}
