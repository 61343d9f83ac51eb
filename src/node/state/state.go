// Package state holds the lifecycle states of a simulated node.
package state

// State captures the lifecycle state of a node, from NotConnected all the
// way to one of the two terminal states, Done or Failed.
type State uint32

const (
	// NotConnected is the initial state, in which a node repeatedly attempts
	// to connect to the network.
	NotConnected State = iota

	// Connected is the state reached after a successful connection attempt.
	Connected

	// Forking is the state in which a node forks its lifecycle into the two
	// watch branches.
	Forking

	// WatchingRelayRequest is the state in which a node watches the network
	// for a relay request.
	WatchingRelayRequest

	// WatchingRelayEntry is the state in which a node watches the network for
	// a relay entry.
	WatchingRelayEntry

	// GroupSelection is the state in which a node plays the group-selection
	// lottery, rerolling until it wins a ticket.
	GroupSelection

	// GroupFormation is the state in which a node takes membership of a
	// signing group.
	GroupFormation

	// GroupMemberCheck is the state in which a node verifies its group
	// membership before generating an entry.
	GroupMemberCheck

	// EntryGeneration is the state in which a group member produces a beacon
	// entry, completing one lifecycle cycle.
	EntryGeneration

	// Done is the terminal state of a node that exhausted its cycle budget.
	Done

	// Failed is the terminal state of a node caught by a transient failure.
	Failed
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case NotConnected:
		return "NotConnected"
	case Connected:
		return "Connected"
	case Forking:
		return "Forking"
	case WatchingRelayRequest:
		return "WatchingRelayRequest"
	case WatchingRelayEntry:
		return "WatchingRelayEntry"
	case GroupSelection:
		return "GroupSelection"
	case GroupFormation:
		return "GroupFormation"
	case GroupMemberCheck:
		return "GroupMemberCheck"
	case EntryGeneration:
		return "EntryGeneration"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s is one of the two terminal states, from which a
// node schedules no further work.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
