// Package scheduler implements the cooperative work queues that drive
// simulated nodes to completion.
//
// Every pending unit of work in a simulation is a Continuation: a closure
// tagged with the node it belongs to and the lifecycle state that node is
// about to enter. Running a continuation may spawn further continuations,
// which go back on the queue. A scheduler is the only execution driver of a
// simulation: it runs continuations one at a time, on a single goroutine,
// until none remain, which is why node state never needs locking.
//
// Two implementations are provided. FIFO is the default: it dispatches in
// strict registration order and ignores sampled delays, which are recorded
// as node statistics only. VirtualTime dispatches by sampled delay on a
// virtual clock, for when the timing of the lifecycle matters more than its
// raw throughput; ties break in registration order so runs remain
// reproducible.
package scheduler

import "errors"

// ErrStepLimit is returned by Run when the scheduler has executed its
// maximum number of continuations and work remains. It is the safety bound
// on lifecycles whose retry loops would otherwise never terminate.
var ErrStepLimit = errors.New("scheduler: step limit reached")

// A Continuation is a pending unit of work: one entry of one node into one
// lifecycle state.
type Continuation struct {
	// NodeID identifies the node the work belongs to.
	NodeID uint32

	// Moniker is the friendly name of that node, carried for inspection.
	Moniker string

	// State names the lifecycle state the node will enter.
	State string

	// Delay is the sampled duration that precedes the work. FIFO ignores it;
	// VirtualTime uses it to order dispatch. Negative values count as zero.
	Delay float64

	// Run executes the work and returns the continuations it spawned.
	Run func() []Continuation
}

// Scheduler is a cooperative work queue. Implementations are single-threaded
// and not safe for concurrent use: Schedule must only be called before Run,
// or from within a running continuation.
type Scheduler interface {
	// Schedule enqueues a continuation.
	Schedule(c Continuation)

	// Run executes continuations until none remain and returns the number
	// executed. It returns ErrStepLimit if a step limit was configured and
	// reached before the queue emptied.
	Run() (int, error)

	// Len returns the number of pending continuations.
	Len() int

	// Pending returns the pending continuations in registration order.
	Pending() []Continuation
}
