package syncing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contre95/soulsync/src/features/config"
	"github.com/contre95/soulsync/src/features/rules"
)

// profileDir is the reserved directory under the managed root where sync
// settings live on the volume itself.
const profileDir = ".soulsync"

// profileFile is the profile filename inside profileDir.
const profileFile = "profile.json"

// SyncOptions are the per-device packing and layout settings.
type SyncOptions struct {
	UseRandomFill            bool  `json:"useRandomFill"`
	UseSubfolders            bool  `json:"useSubfolders"`
	MaxFilesPerSubfolder     int   `json:"maxFilesPerSubfolder"`
	DestinationCapacityBytes int64 `json:"destinationCapacityBytes"`
}

// Profile is the rule set and options for one destination volume,
// persisted on the volume so it travels with it.
type Profile struct {
	Rules   rules.RuleSet `json:"rules"`
	Options SyncOptions   `json:"options"`
}

// Validate checks the profile options.
func (p *Profile) Validate() error {
	if p.Options.DestinationCapacityBytes < 0 {
		return fmt.Errorf("destination capacity cannot be negative, got %d", p.Options.DestinationCapacityBytes)
	}
	if p.Options.UseSubfolders && p.Options.MaxFilesPerSubfolder <= 0 {
		return fmt.Errorf("maxFilesPerSubfolder must be positive when subfolders are enabled, got %d", p.Options.MaxFilesPerSubfolder)
	}
	return nil
}

// defaultProfile builds a first-sync profile from the device's configured
// defaults: everything included, device options carried over.
func defaultProfile(device config.Device) Profile {
	return Profile{
		Options: SyncOptions{
			UseRandomFill:            device.RandomFill,
			UseSubfolders:            device.UseSubfolders,
			MaxFilesPerSubfolder:     device.MaxFilesPerSubfolder,
			DestinationCapacityBytes: device.CapacityBytes,
		},
	}
}

func profilePath(mountPath, managedRoot string) string {
	return filepath.Join(mountPath, managedRoot, profileDir, profileFile)
}

// LoadProfile reads the profile stored on the volume. A missing profile
// means first sync and returns found=false, not an error.
func LoadProfile(mountPath, managedRoot string) (Profile, bool, error) {
	var profile Profile

	data, err := os.ReadFile(profilePath(mountPath, managedRoot))
	if os.IsNotExist(err) {
		return profile, false, nil
	}
	if err != nil {
		return profile, false, fmt.Errorf("failed to read profile: %w", err)
	}

	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, false, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return profile, false, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, true, nil
}

// SaveProfile writes the profile onto the volume.
func SaveProfile(mountPath, managedRoot string, profile Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	path := profilePath(mountPath, managedRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
