// Package node implements the probabilistic lifecycle of a simulated network
// participant.
//
// A node models one member of a threshold-relay randomness beacon: it joins
// the network, watches for relay traffic, competes for group membership, and
// produces beacon entries. None of that work is real; every duration and
// decision is a draw from the variate package, and the point of a run is the
// statistics the population accumulates. Node implements a state machine
// where the states are defined in the state package.
//
// Lifecycle
//
// A node starts NotConnected and repeatedly attempts to connect; attempts
// whose sampled duration reaches the failure limit are retried without
// bound. Once Connected, the lifecycle forks into two watch branches:
// WatchingRelayRequest leads through the group-selection lottery to
// GroupFormation, GroupMemberCheck and EntryGeneration, while
// WatchingRelayEntry only records how long the node would have watched for a
// relay entry, and ends. Generating an entry completes a cycle and consumes
// the group membership, sending the node back to Forking. A node is Done
// when its cycle count exceeds its budget.
//
// Nodes do not run on goroutines. Each state entry is packaged as a
// scheduler.Continuation which returns the follow-up continuations, and a
// single-threaded scheduler drives the whole population. A run is therefore
// reproducible from its seed, and nodes keep no locks.
//
// Failure
//
// Entering any state first consults the failure Oracle, which draws afresh
// on every call. The first Failed answer freezes the node: its status and
// state become Failed, its counters never change again, and any stale
// continuations left in the scheduler for it are ignored when they run.
package node
