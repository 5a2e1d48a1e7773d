package destination

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/soulsync/src/features/layout"
	"github.com/contre95/soulsync/src/features/planning"
	"github.com/contre95/soulsync/src/music"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestReader_MissingManagedRootIsFirstSync(t *testing.T) {
	mount := t.TempDir()

	state, err := NewReader().Read(mount, "Music")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(state) != 0 {
		t.Errorf("expected empty state, got %d entries", len(state))
	}
}

func TestReader_UnmountedVolumeIsFatal(t *testing.T) {
	if _, err := NewReader().Read("/no/such/mount", "Music"); err == nil {
		t.Fatal("expected an error for an unreadable destination")
	}
}

func TestReader_RecordsSizesAndSkipsDotfiles(t *testing.T) {
	mount := t.TempDir()
	writeFile(t, filepath.Join(mount, "Music", "alpha.mp3"), "0123456789")
	writeFile(t, filepath.Join(mount, "Music", "subfolder-0", "beta.mp3"), "beta")
	writeFile(t, filepath.Join(mount, "Music", ".soulsync", "profile.json"), "{}")
	writeFile(t, filepath.Join(mount, "Music", ".DS_Store"), "junk")
	writeFile(t, filepath.Join(mount, "Other", "stray.txt"), "user data")

	state, err := NewReader().Read(mount, "Music")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(state) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(state), state)
	}
	if fs, ok := state["alpha.mp3"]; !ok || fs.Size != 10 {
		t.Errorf("alpha.mp3 missing or wrong size: %v", state)
	}
	if fs, ok := state["subfolder-0/beta.mp3"]; !ok || fs.Size != 4 {
		t.Errorf("subfolder-0/beta.mp3 missing or wrong size: %v", state)
	}
	if state["alpha.mp3"].Fingerprint == "" {
		t.Error("expected a fingerprint to be recorded")
	}
}

func TestExecutor_AppliesPlanAndConverges(t *testing.T) {
	mount := t.TempDir()
	source := t.TempDir()

	writeFile(t, filepath.Join(source, "alpha.mp3"), "aaaaaaaaaa") // 10 bytes
	writeFile(t, filepath.Join(source, "gamma.mp3"), "ggggg")      // 5 bytes
	writeFile(t, filepath.Join(mount, "Music", "stale.mp3"), "old")

	tracks := []*music.Track{
		{ID: "a", Title: "Alpha", Artist: "X", Album: "L", Path: filepath.Join(source, "alpha.mp3"), Size: 10},
		{ID: "g", Title: "Gamma", Artist: "X", Album: "L", Path: filepath.Join(source, "gamma.mp3"), Size: 5},
	}
	entries, err := layout.Assign(tracks, false, 0)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}

	reader := NewReader()
	state, err := reader.Read(mount, "Music")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	plan, err := planning.BuildPlan(entries, state)
	if err != nil {
		t.Fatalf("planning failed: %v", err)
	}

	stats, err := NewExecutor().Apply(context.Background(), mount, "Music", plan, nil)
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if stats.Copied != 2 || stats.Deleted != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.BytesCopied != 15 {
		t.Errorf("expected 15 bytes copied, got %d", stats.BytesCopied)
	}

	if _, err := os.Stat(filepath.Join(mount, "Music", "stale.mp3")); !os.IsNotExist(err) {
		t.Error("stale file survived execution")
	}

	// Re-plan against the converged destination: keeps only.
	state, err = reader.Read(mount, "Music")
	if err != nil {
		t.Fatalf("re-read failed: %v", err)
	}
	replan, err := planning.BuildPlan(entries, state)
	if err != nil {
		t.Fatalf("re-planning failed: %v", err)
	}
	if !replan.Converged() {
		t.Fatalf("expected convergence, got %+v", replan.Ops)
	}
	if len(replan.Keeps()) != 2 {
		t.Errorf("expected 2 keeps, got %d", len(replan.Keeps()))
	}
}

func TestExecutor_RemovesEmptiedSubfolders(t *testing.T) {
	mount := t.TempDir()
	writeFile(t, filepath.Join(mount, "Music", "subfolder-1", "old.mp3"), "old")

	plan := &planning.Plan{Ops: []planning.Operation{
		{Type: planning.OpDelete, Path: "subfolder-1/old.mp3"},
		{Type: planning.OpRemoveDir, Path: "subfolder-1"},
	}}

	if _, err := NewExecutor().Apply(context.Background(), mount, "Music", plan, nil); err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(mount, "Music", "subfolder-1")); !os.IsNotExist(err) {
		t.Error("emptied subfolder was not removed")
	}
}

func TestExecutor_CancellationStopsIssuingOperations(t *testing.T) {
	mount := t.TempDir()
	source := t.TempDir()
	writeFile(t, filepath.Join(source, "alpha.mp3"), "aaaaaaaaaa")

	plan := &planning.Plan{Ops: []planning.Operation{
		{Type: planning.OpCopy, Path: "alpha.mp3", SourcePath: filepath.Join(source, "alpha.mp3"), Size: 10},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewExecutor().Apply(ctx, mount, "Music", plan, nil); err == nil {
		t.Fatal("expected a cancellation error")
	}
	if _, err := os.Stat(filepath.Join(mount, "Music", "alpha.mp3")); !os.IsNotExist(err) {
		t.Error("operation was issued after cancellation")
	}
}

func TestExecutor_ReportsProgress(t *testing.T) {
	mount := t.TempDir()

	plan := &planning.Plan{Ops: []planning.Operation{
		{Type: planning.OpKeep, Path: "alpha.mp3", Size: 10},
		{Type: planning.OpKeep, Path: "beta.mp3", Size: 10},
	}}

	var calls int
	_, err := NewExecutor().Apply(context.Background(), mount, "Music", plan, func(done, total int, msg string) {
		calls++
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
	})
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 progress calls, got %d", calls)
	}
}
