package destination

import (
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/soulsync/src/features/planning"
)

// fingerprintHead is how much of each file feeds the fingerprint. Reading
// whole files off removable media would dominate planning time.
const fingerprintHead = 64 * 1024

// Reader enumerates what currently exists under a managed root. It is the
// only I/O inside the planning boundary and runs once per planning pass.
type Reader struct{}

// NewReader creates a new destination state reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read walks the managed root and returns the observed state. A missing
// managed root on an existing mount is an empty state (first sync); an
// unreadable mount is an error and no plan should be produced from it.
// Dot-prefixed files and directories (including the profile directory)
// are not part of the state.
func (r *Reader) Read(mountPath, managedRoot string) (planning.DestinationState, error) {
	if _, err := os.Stat(mountPath); err != nil {
		return nil, fmt.Errorf("destination unreadable at %s: %w", mountPath, err)
	}

	root := filepath.Join(mountPath, managedRoot)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return planning.DestinationState{}, nil
	}

	state := planning.DestinationState{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		fp, err := headFingerprint(path)
		if err != nil {
			return err
		}
		state[filepath.ToSlash(rel)] = planning.FileState{
			Size:        info.Size(),
			Fingerprint: fp,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("destination unreadable at %s: %w", root, err)
	}

	return state, nil
}

// headFingerprint hashes the first chunk of a file as a cheap identity
// signal.
func headFingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err := io.CopyN(h, f, fingerprintHead); err != nil && err != io.EOF {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
