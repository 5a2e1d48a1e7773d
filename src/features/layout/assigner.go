package layout

import (
	"fmt"

	"github.com/contre95/soulsync/src/music"
)

// Entry maps one track to its relative destination path. Paths are unique
// within a layout.
type Entry struct {
	Track *music.Track
	// Path is relative to the managed root, forward-slash separated.
	Path string
}

// Assign walks the stable-ordered track list and gives every track a
// destination path. With subfolders disabled every track maps to a flat
// sanitized filename; with subfolders enabled tracks fill
// subfolder-0, subfolder-1, ... in order, each holding at most
// maxFilesPerSubfolder entries. The walk is greedy and order-preserving:
// identical inputs always produce identical layouts, which is what keeps
// the diff engine from reshuffling unrelated files between runs.
func Assign(tracks []*music.Track, useSubfolders bool, maxFilesPerSubfolder int) ([]Entry, error) {
	if useSubfolders && maxFilesPerSubfolder <= 0 {
		return nil, fmt.Errorf("maxFilesPerSubfolder must be positive, got %d", maxFilesPerSubfolder)
	}

	entries := make([]Entry, 0, len(tracks))
	taken := make(map[string]struct{}, len(tracks))

	folder := ""
	inFolder := 0
	folderIndex := 0

	for _, t := range tracks {
		if useSubfolders {
			if inFolder == maxFilesPerSubfolder {
				folderIndex++
				inFolder = 0
			}
			folder = fmt.Sprintf("subfolder-%d/", folderIndex)
		}

		name := SanitizeFilename(t.Filename())
		path := folder + name
		if _, collision := taken[path]; collision {
			// Two tracks reduced to the same sanitized name; the
			// catalog ID keeps the path unique and deterministic.
			stem, ext := splitExt(name)
			path = folder + stem + "-" + SanitizeFilename(t.ID) + ext
			if _, still := taken[path]; still {
				// IDs are unique, so this is an internal invariant
				// violation, not a user error.
				return nil, fmt.Errorf("unresolved layout collision at %s", path)
			}
		}

		taken[path] = struct{}{}
		entries = append(entries, Entry{Track: t, Path: path})
		inFolder++
	}

	return entries, nil
}
