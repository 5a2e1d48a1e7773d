package planning

// FileState is the identity signal for one file observed at the
// destination: its size and an optional cheap content fingerprint. The
// diff engine trusts this signal completely and never inspects contents
// itself.
type FileState struct {
	Size        int64
	Fingerprint string
}

// DestinationState maps relative paths under the managed root to their
// observed state. It is read once at the start of each planning pass and
// never cached across runs; the volume may have changed since the last
// sync.
type DestinationState map[string]FileState
