package node

// Status is the health of a simulated node. It starts Online and, the first
// time a transient failure is observed, becomes Failed forever.
type Status uint32

const (
	// Online is the status of a node that has not yet been caught by a
	// transient failure.
	Online Status = iota

	// Failed is the status of a node caught by a transient failure. It is
	// definitive: no counter of a Failed node ever changes again.
	Failed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case Online:
		return "Online"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
