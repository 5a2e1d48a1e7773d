package destination

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contre95/soulsync/src/features/planning"
)

// Stats summarizes what an execution actually did.
type Stats struct {
	Copied      int
	Deleted     int
	Kept        int
	BytesCopied int64
}

// Executor applies an operation plan to a mounted volume. Planning never
// touches bytes; all copy and delete I/O lives here. Cancellation stops
// issuing further operations and leaves the destination in a consistent,
// re-plannable state.
type Executor struct{}

// NewExecutor creates a new plan executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Apply executes the plan in order against mountPath/managedRoot. The
// progress callback, if set, is called after every operation with the
// count done, the total, and a message.
func (e *Executor) Apply(ctx context.Context, mountPath, managedRoot string, plan *planning.Plan, progress func(done, total int, msg string)) (Stats, error) {
	var stats Stats
	root := filepath.Join(mountPath, managedRoot)

	for i, op := range plan.Ops {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		target := filepath.Join(root, filepath.FromSlash(op.Path))
		switch op.Type {
		case planning.OpDelete:
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return stats, fmt.Errorf("failed to delete %s: %w", op.Path, err)
			}
			stats.Deleted++
		case planning.OpCopy:
			written, err := copyFile(op.SourcePath, target)
			if err != nil {
				return stats, fmt.Errorf("failed to copy %s: %w", op.Path, err)
			}
			if written != op.Size {
				return stats, fmt.Errorf("short copy of %s: wrote %d of %d bytes", op.Path, written, op.Size)
			}
			stats.Copied++
			stats.BytesCopied += written
		case planning.OpRemoveDir:
			// Best effort: the directory may already be gone, or may
			// have gained files since planning.
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				slog.Debug("Leaving non-empty directory in place", "path", op.Path)
			}
		case planning.OpKeep:
			stats.Kept++
		}

		if progress != nil {
			progress(i+1, len(plan.Ops), progressMessage(op))
		}
	}

	return stats, nil
}

func progressMessage(op planning.Operation) string {
	switch op.Type {
	case planning.OpCopy:
		return "Copying " + op.Path
	case planning.OpDelete:
		return "Deleting " + op.Path
	case planning.OpRemoveDir:
		return "Removing " + op.Path
	default:
		return "Keeping " + op.Path
	}
}

func copyFile(src, dst string) (int64, error) {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !sourceFileStat.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, err
	}
	dest, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(dest, source)
	if cerr := dest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// The next planning pass recopies on size mismatch anyway;
		// remove the partial file to reclaim its space now.
		os.Remove(dst)
		return written, err
	}
	return written, nil
}
