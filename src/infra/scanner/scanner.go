// Package scanner builds a catalog by walking a music directory and
// reading file tags. It is the fallback source when no library export or
// database exists.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/soulsync/src/music"
	"github.com/dhowden/tag"
	"github.com/google/uuid"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

// Scanner is a CatalogSource that walks a directory tree.
type Scanner struct {
	root string
}

// NewScanner creates a Scanner rooted at the given directory.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// LoadCatalog walks the tree and builds the catalog snapshot. Files whose
// tags cannot be read still enter the catalog with path-derived metadata;
// a directory scan has no playlists.
func (s *Scanner) LoadCatalog() (*music.Catalog, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("music directory unreadable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("music path is not a directory: %s", s.root)
	}

	var tracks []*music.Track
	err = filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		track, err := s.readTrack(path, entry)
		if err != nil {
			slog.Warn("Skipping unreadable file", "path", path, "error", err)
			return nil
		}
		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	slog.Info("Scanned music directory", "root", s.root, "tracks", len(tracks))
	return music.NewCatalog(tracks, nil)
}

// readTrack reads one file's tags. The ID is derived from the path so
// rescans produce stable IDs without any stored state.
func (s *Scanner) readTrack(path string, entry fs.DirEntry) (*music.Track, error) {
	info, err := entry.Info()
	if err != nil {
		return nil, err
	}

	track := &music.Track{
		ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte(path)).String(),
		Path: path,
		Size: info.Size(),
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		// Untagged files are still syncable; fall back to the filename.
		slog.Debug("No readable tags", "path", path, "error", err)
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return track, nil
	}

	track.Title = tags.Title()
	track.Artist = tags.Artist()
	track.Album = tags.Album()
	track.Genre = tags.Genre()
	if track.Title == "" {
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return track, nil
}
