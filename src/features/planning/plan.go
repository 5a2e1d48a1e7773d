package planning

// OperationType tags one step of an operation plan.
type OperationType string

const (
	// OpDelete removes a stale file under the managed root.
	OpDelete OperationType = "delete"
	// OpCopy copies a source file to a destination path.
	OpCopy OperationType = "copy"
	// OpRemoveDir removes a subfolder left empty by deletions.
	OpRemoveDir OperationType = "remove_dir"
	// OpKeep marks a file already correctly placed. Informational, no I/O.
	OpKeep OperationType = "keep"
)

// Operation is one tagged step. Paths are relative to the managed root.
type Operation struct {
	Type       OperationType `json:"type"`
	Path       string        `json:"path"`
	SourcePath string        `json:"sourcePath,omitempty"` // absolute, copy only
	Size       int64         `json:"size,omitempty"`       // expected bytes, copy/keep
}

// Plan is the ordered operation list produced by one planning run: all
// deletes of stale files, then all copies, then removal of emptied
// subfolders, then keeps. It is never mutated after emission, only
// executed or discarded; the next planning run derives a fresh one from
// current destination state.
type Plan struct {
	Ops []Operation `json:"ops"`
}

func (p *Plan) ofType(t OperationType) []Operation {
	var ops []Operation
	for _, op := range p.Ops {
		if op.Type == t {
			ops = append(ops, op)
		}
	}
	return ops
}

// Deletes returns the stale-file deletions.
func (p *Plan) Deletes() []Operation { return p.ofType(OpDelete) }

// Copies returns the copy operations.
func (p *Plan) Copies() []Operation { return p.ofType(OpCopy) }

// Keeps returns the no-op operations.
func (p *Plan) Keeps() []Operation { return p.ofType(OpKeep) }

// CopyBytes returns the total bytes the plan will write.
func (p *Plan) CopyBytes() int64 {
	var n int64
	for _, op := range p.Ops {
		if op.Type == OpCopy {
			n += op.Size
		}
	}
	return n
}

// Converged reports whether the plan requires no I/O beyond directory
// cleanup: nothing to copy, nothing to delete.
func (p *Plan) Converged() bool {
	for _, op := range p.Ops {
		if op.Type == OpCopy || op.Type == OpDelete {
			return false
		}
	}
	return true
}
