package packing

import (
	"testing"

	"github.com/contre95/soulsync/src/music"
)

// fixedShuffler returns a canned permutation, padding with identity when
// asked for more than it has.
type fixedShuffler struct {
	perm []int
}

func (s fixedShuffler) Perm(n int) []int {
	if len(s.perm) == n {
		return s.perm
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func track(id string, size int64) *music.Track {
	return &music.Track{ID: id, Title: id, Artist: "A", Album: "L", Path: "/m/" + id + ".mp3", Size: size}
}

func TestPack_SelectionWithinCapacity(t *testing.T) {
	selected := []*music.Track{track("a", 100), track("c", 50)}

	res := Pack(selected, nil, 1000, false, nil)

	if res.Truncated {
		t.Error("expected no truncation")
	}
	if len(res.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(res.Tracks))
	}
	if res.TotalBytes != 150 {
		t.Errorf("expected 150 total bytes, got %d", res.TotalBytes)
	}
}

func TestPack_TruncatesFromEndWhenOverCapacity(t *testing.T) {
	selected := []*music.Track{track("a", 100), track("c", 50)}

	res := Pack(selected, nil, 120, false, nil)

	if !res.Truncated {
		t.Error("expected truncation to be reported")
	}
	if len(res.Tracks) != 1 || res.Tracks[0].ID != "a" {
		t.Fatalf("expected only track a to survive, got %d tracks", len(res.Tracks))
	}
	if res.TotalBytes != 100 {
		t.Errorf("expected 100 total bytes, got %d", res.TotalBytes)
	}
}

func TestPack_ZeroCapacityDropsEverything(t *testing.T) {
	selected := []*music.Track{track("a", 100)}

	res := Pack(selected, nil, 0, false, nil)

	if !res.Truncated {
		t.Error("expected truncation to be reported")
	}
	if len(res.Tracks) != 0 {
		t.Fatalf("expected no tracks, got %d", len(res.Tracks))
	}
}

func TestPack_RandomFillUsesRemainingCapacity(t *testing.T) {
	selected := []*music.Track{track("a", 100)}
	pool := []*music.Track{track("x", 300), track("y", 80), track("z", 50)}

	res := Pack(selected, pool, 250, true, fixedShuffler{perm: []int{1, 2, 0}})

	// y (80) fits, z (50) fits, x (300) never does.
	if res.Filled != 2 {
		t.Fatalf("expected 2 filled tracks, got %d", res.Filled)
	}
	if res.TotalBytes != 230 {
		t.Errorf("expected 230 total bytes, got %d", res.TotalBytes)
	}
	for _, tr := range res.Tracks {
		if tr.ID == "x" {
			t.Error("oversized candidate was forced in")
		}
	}
}

func TestPack_OversizedCandidateSkippedNotFatal(t *testing.T) {
	selected := []*music.Track{track("a", 100)}
	pool := []*music.Track{track("big", 1000), track("small", 10)}

	// big is drawn first, does not fit, packing continues with small.
	res := Pack(selected, pool, 120, true, fixedShuffler{perm: []int{0, 1}})

	if res.Filled != 1 {
		t.Fatalf("expected 1 filled track, got %d", res.Filled)
	}
	if res.TotalBytes != 110 {
		t.Errorf("expected 110 total bytes, got %d", res.TotalBytes)
	}
}

func TestPack_FillNeverDuplicates(t *testing.T) {
	selected := []*music.Track{track("a", 10)}
	pool := []*music.Track{track("b", 10), track("c", 10)}

	res := Pack(selected, pool, 10_000, true, fixedShuffler{perm: []int{0, 1}})

	seen := make(map[string]int)
	for _, tr := range res.Tracks {
		seen[tr.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("track %s appears %d times in the packed list", id, n)
		}
	}
	if len(res.Tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(res.Tracks))
	}
}

func TestPack_FilledTracksKeepStableOrder(t *testing.T) {
	a := &music.Track{ID: "1", Title: "One", Artist: "B", Album: "L", Path: "/m/1.mp3", Size: 10}
	b := &music.Track{ID: "2", Title: "Two", Artist: "A", Album: "L", Path: "/m/2.mp3", Size: 10}

	res := Pack([]*music.Track{a}, []*music.Track{b}, 100, true, fixedShuffler{perm: []int{0}})

	if len(res.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(res.Tracks))
	}
	// Artist A sorts before artist B regardless of fill order.
	if res.Tracks[0].ID != "2" {
		t.Error("filled track was not merged into stable order")
	}
}
