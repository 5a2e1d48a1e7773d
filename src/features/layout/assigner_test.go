package layout

import (
	"strings"
	"testing"

	"github.com/contre95/soulsync/src/music"
)

func track(id, path string) *music.Track {
	return &music.Track{ID: id, Title: id, Artist: "A", Album: "L", Path: path, Size: 1}
}

func TestAssign_FlatLayout(t *testing.T) {
	tracks := []*music.Track{
		track("a", "/m/alpha.mp3"),
		track("b", "/m/beta.mp3"),
	}

	entries, err := Assign(tracks, false, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != "alpha.mp3" || entries[1].Path != "beta.mp3" {
		t.Errorf("unexpected paths: %s, %s", entries[0].Path, entries[1].Path)
	}
}

func TestAssign_CollisionDisambiguatedByID(t *testing.T) {
	tracks := []*music.Track{
		track("id1", "/one/song.mp3"),
		track("id2", "/two/song.mp3"),
	}

	entries, err := Assign(tracks, false, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entries[0].Path != "song.mp3" {
		t.Errorf("first occupant should keep its name, got %s", entries[0].Path)
	}
	if entries[1].Path != "song-id2.mp3" {
		t.Errorf("expected id-suffixed path, got %s", entries[1].Path)
	}
}

func TestAssign_SubfolderFillIsGreedyAndContiguous(t *testing.T) {
	tracks := make([]*music.Track, 7)
	for i := range tracks {
		id := string(rune('a' + i))
		tracks[i] = track(id, "/m/"+id+".mp3")
	}

	entries, err := Assign(tracks, true, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	counts := make(map[string]int)
	for _, e := range entries {
		folder, _, ok := strings.Cut(e.Path, "/")
		if !ok {
			t.Fatalf("entry %s is not inside a subfolder", e.Path)
		}
		counts[folder]++
	}

	if counts["subfolder-0"] != 3 || counts["subfolder-1"] != 3 || counts["subfolder-2"] != 1 {
		t.Errorf("unexpected distribution: %v", counts)
	}
}

func TestAssign_SubfolderRequiresPositiveLimit(t *testing.T) {
	if _, err := Assign(nil, true, 0); err == nil {
		t.Fatal("expected an error for non-positive limit")
	}
}

func TestAssign_PathsAreUnique(t *testing.T) {
	tracks := []*music.Track{
		track("1", "/a/x.mp3"),
		track("2", "/b/x.mp3"),
		track("3", "/c/x.mp3"),
	}

	entries, err := Assign(tracks, true, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	seen := make(map[string]struct{})
	for _, e := range entries {
		if _, dup := seen[e.Path]; dup {
			t.Fatalf("duplicate path in layout: %s", e.Path)
		}
		seen[e.Path] = struct{}{}
	}
}

func TestAssign_DeterministicAcrossRuns(t *testing.T) {
	tracks := []*music.Track{
		track("1", "/a/x.mp3"),
		track("2", "/b/y.mp3"),
		track("3", "/c/z.mp3"),
	}

	first, err := Assign(tracks, true, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := Assign(tracks, true, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Fatalf("layout differs between runs at %d: %s vs %s", i, first[i].Path, second[i].Path)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AC/DC: Live?.mp3", "AC-DC -  Live.mp3"},
		{"Motörhead.flac", "Motorhead.flac"},
		{`a<b>c|d"e.ogg`, "a(b)c-d'e.ogg"},
		{"plain.mp3", "plain.mp3"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
