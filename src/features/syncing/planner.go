package syncing

import (
	"github.com/contre95/soulsync/src/features/layout"
	"github.com/contre95/soulsync/src/features/packing"
	"github.com/contre95/soulsync/src/features/planning"
	"github.com/contre95/soulsync/src/features/rules"
	"github.com/contre95/soulsync/src/music"
)

// PlanReport carries the planning outcome alongside the plan itself:
// what was selected, what survived packing, and whether the selection had
// to be truncated to fit.
type PlanReport struct {
	SelectedTracks   int   `json:"selectedTracks"`
	FinalTracks      int   `json:"finalTracks"`
	FilledTracks     int   `json:"filledTracks"`
	PlannedBytes     int64 `json:"plannedBytes"`
	CapacityExceeded bool  `json:"capacityExceeded"`
	Copies           int   `json:"copies"`
	Deletes          int   `json:"deletes"`
	Keeps            int   `json:"keeps"`
}

// BuildDevicePlan runs the full planning pipeline over already-loaded
// inputs: rule evaluation, capacity packing, layout assignment and the
// diff against observed destination state. Pure computation; the only
// I/O of a planning pass is reading the destination state, which callers
// do beforehand.
func BuildDevicePlan(catalog *music.Catalog, profile Profile, state planning.DestinationState, shuffler packing.Shuffler) (*planning.Plan, *PlanReport, error) {
	selection := rules.Evaluate(catalog, profile.Rules)

	packed := packing.Pack(
		selection.Tracks,
		selection.FillPool,
		profile.Options.DestinationCapacityBytes,
		profile.Options.UseRandomFill,
		shuffler,
	)

	entries, err := layout.Assign(packed.Tracks, profile.Options.UseSubfolders, profile.Options.MaxFilesPerSubfolder)
	if err != nil {
		return nil, nil, err
	}

	plan, err := planning.BuildPlan(entries, state)
	if err != nil {
		return nil, nil, err
	}

	report := &PlanReport{
		SelectedTracks:   len(selection.Tracks),
		FinalTracks:      len(packed.Tracks),
		FilledTracks:     packed.Filled,
		PlannedBytes:     packed.TotalBytes,
		CapacityExceeded: packed.Truncated,
		Copies:           len(plan.Copies()),
		Deletes:          len(plan.Deletes()),
		Keeps:            len(plan.Keeps()),
	}
	return plan, report, nil
}
