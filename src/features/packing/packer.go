package packing

import (
	"math/rand"
	"time"

	"github.com/contre95/soulsync/src/music"
)

// Shuffler produces a permutation of [0, n). Production uses a freshly
// seeded entropy source; tests inject a fixed permutation so packing is
// deterministic.
type Shuffler interface {
	Perm(n int) []int
}

type randShuffler struct {
	r *rand.Rand
}

func (s randShuffler) Perm(n int) []int { return s.r.Perm(n) }

// NewShuffler returns a Shuffler seeded from the clock. Draws are not
// reproducible across runs, which is fine: fill only ever adds tracks that
// still fit, and the diff engine converges regardless of which ones.
func NewShuffler() Shuffler {
	return randShuffler{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Result is the packer outcome: the final track list in stable order plus
// capacity accounting.
type Result struct {
	Tracks     []*music.Track
	TotalBytes int64
	// Truncated reports that the selection alone exceeded capacity and
	// tracks were dropped from the end of the stable order. This is
	// surfaced to the caller, never silently hidden.
	Truncated bool
	// Filled is the number of tracks added by random fill.
	Filled int
}

// Pack fits the selection into the destination capacity. If the selection
// exceeds capacityBytes, tracks are dropped from the end of the stable
// order until the remainder fits. If capacity remains and randomFill is
// set, tracks are drawn duplicate-free from the fill pool in shuffled
// order, adding each one that still fits. A candidate larger than the
// remaining capacity is skipped, not forced in; this is best-effort fill,
// not bin packing.
func Pack(selected, fillPool []*music.Track, capacityBytes int64, randomFill bool, shuffler Shuffler) Result {
	var res Result

	cut := len(selected)
	var total int64
	for i, t := range selected {
		if total+t.Size > capacityBytes {
			cut = i
			res.Truncated = true
			break
		}
		total += t.Size
	}
	res.Tracks = append(res.Tracks, selected[:cut]...)
	res.TotalBytes = total

	if randomFill && len(fillPool) > 0 {
		added := make([]*music.Track, 0)
		for _, i := range shuffler.Perm(len(fillPool)) {
			t := fillPool[i]
			if res.TotalBytes+t.Size > capacityBytes {
				continue
			}
			res.TotalBytes += t.Size
			added = append(added, t)
			res.Filled++
		}
		// Filled tracks are merged back into the stable order so the
		// layout stays deterministic given the same draw.
		res.Tracks = append(res.Tracks, added...)
		music.SortTracks(res.Tracks)
	}

	return res
}
