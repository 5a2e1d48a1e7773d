package syncing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/soulsync/src/features/rules"
)

func TestProfileRoundTrip(t *testing.T) {
	mount := t.TempDir()

	in := Profile{
		Rules: rules.RuleSet{
			IncludedGenres:  []string{"Jazz"},
			ExcludedArtists: []string{"Someone"},
		},
		Options: SyncOptions{
			UseRandomFill:            true,
			UseSubfolders:            true,
			MaxFilesPerSubfolder:     100,
			DestinationCapacityBytes: 1 << 30,
		},
	}

	if err := SaveProfile(mount, "Music", in); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	out, found, err := LoadProfile(mount, "Music")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if !found {
		t.Fatal("expected profile to be found after save")
	}
	if out.Options != in.Options {
		t.Fatalf("options mismatch: got %+v, want %+v", out.Options, in.Options)
	}
	if len(out.Rules.IncludedGenres) != 1 || out.Rules.IncludedGenres[0] != "Jazz" {
		t.Fatalf("rules mismatch: %+v", out.Rules)
	}
}

func TestLoadProfileMissingMeansFirstSync(t *testing.T) {
	mount := t.TempDir()

	_, found, err := LoadProfile(mount, "Music")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if found {
		t.Fatal("expected no profile on a fresh volume")
	}
}

func TestLoadProfileRejectsCorruptFile(t *testing.T) {
	mount := t.TempDir()
	dir := filepath.Join(mount, "Music", profileDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, profileFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := LoadProfile(mount, "Music")
	if err == nil {
		t.Fatal("expected error for corrupt profile")
	}
}

func TestSaveProfileRejectsInvalidOptions(t *testing.T) {
	mount := t.TempDir()

	bad := Profile{Options: SyncOptions{UseSubfolders: true, MaxFilesPerSubfolder: 0, DestinationCapacityBytes: 10}}
	if err := SaveProfile(mount, "Music", bad); err == nil {
		t.Fatal("expected validation error for zero subfolder limit")
	}

	negative := Profile{Options: SyncOptions{DestinationCapacityBytes: -1}}
	if err := SaveProfile(mount, "Music", negative); err == nil {
		t.Fatal("expected validation error for negative capacity")
	}
}
