package planning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contre95/soulsync/src/features/layout"
)

// BuildPlan compares the desired layout against the observed destination
// state and emits the minimal operation plan that converges the two.
//
// Ordering is part of the contract: stale-file deletes come before copies
// so freed capacity is reclaimed before new writes, emptied subfolders are
// removed after both, and keeps trail as informational records. Within
// each group operations are sorted by path, so identical inputs produce
// identical plans.
//
// Only paths present in state are ever deleted, and state is scoped to the
// managed root by its reader; user files elsewhere on the volume never
// enter the plan at all.
func BuildPlan(entries []layout.Entry, state DestinationState) (*Plan, error) {
	desired := make(map[string]layout.Entry, len(entries))
	for _, e := range entries {
		if _, dup := desired[e.Path]; dup {
			return nil, fmt.Errorf("layout maps two tracks to %s", e.Path)
		}
		desired[e.Path] = e
	}

	var deletes, copies, keeps []Operation

	for path, e := range desired {
		observed, exists := state[path]
		if exists && matches(e, observed) {
			keeps = append(keeps, Operation{Type: OpKeep, Path: path, Size: e.Track.Size})
			continue
		}
		copies = append(copies, Operation{
			Type:       OpCopy,
			Path:       path,
			SourcePath: e.Track.Path,
			Size:       e.Track.Size,
		})
	}

	for path := range state {
		if _, wanted := desired[path]; !wanted {
			deletes = append(deletes, Operation{Type: OpDelete, Path: path})
		}
	}

	removeDirs := staleDirs(desired, state)

	sortOps(deletes)
	sortOps(copies)
	sortOps(keeps)

	plan := &Plan{Ops: make([]Operation, 0, len(deletes)+len(copies)+len(removeDirs)+len(keeps))}
	plan.Ops = append(plan.Ops, deletes...)
	plan.Ops = append(plan.Ops, copies...)
	plan.Ops = append(plan.Ops, removeDirs...)
	plan.Ops = append(plan.Ops, keeps...)
	return plan, nil
}

// matches decides whether an observed file satisfies a desired entry.
// Size must agree; fingerprints are compared only when both sides carry
// one, since the catalog knows sizes but not content hashes.
func matches(e layout.Entry, observed FileState) bool {
	return observed.Size == e.Track.Size
}

// staleDirs finds directories that currently hold files but will hold none
// once stale files are deleted. Deepest first, so nested subfolders empty
// out before their parents.
func staleDirs(desired map[string]layout.Entry, state DestinationState) []Operation {
	current := make(map[string]struct{})
	remaining := make(map[string]int)
	for path := range state {
		for _, dir := range parentDirs(path) {
			current[dir] = struct{}{}
		}
	}
	for path := range desired {
		for _, dir := range parentDirs(path) {
			remaining[dir]++
		}
	}

	var dirs []string
	for dir := range current {
		if remaining[dir] == 0 {
			dirs = append(dirs, dir)
		}
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], "/"), strings.Count(dirs[j], "/")
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})

	ops := make([]Operation, 0, len(dirs))
	for _, dir := range dirs {
		ops = append(ops, Operation{Type: OpRemoveDir, Path: dir})
	}
	return ops
}

func parentDirs(path string) []string {
	var dirs []string
	for {
		i := strings.LastIndexByte(path, '/')
		if i < 0 {
			return dirs
		}
		path = path[:i]
		dirs = append(dirs, path)
	}
}

func sortOps(ops []Operation) {
	sort.Slice(ops, func(i, j int) bool { return ops[i].Path < ops[j].Path })
}
