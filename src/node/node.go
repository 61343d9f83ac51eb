package node

import (
	"strconv"
	"time"

	"github.com/mosaicnetworks/beaconsim/src/node/state"
	"github.com/mosaicnetworks/beaconsim/src/report"
	"github.com/mosaicnetworks/beaconsim/src/scheduler"
	"github.com/mosaicnetworks/beaconsim/src/variate"
	"github.com/sirupsen/logrus"
)

// Parameters of the lifecycle draws. Connection attempts and staking amounts
// are log-normal; watch durations are normal; group selection is a uniform
// lottery won by draws below the threshold.
const (
	connectionMu    = 3.0
	connectionSigma = 1.0

	// connectionLimit is the attempt duration at and above which a
	// connection counts as failed and is retried.
	connectionLimit = 30.0

	watchMu    = 3.0
	watchSigma = 1.0

	selectionRange     = 10
	selectionThreshold = 5

	stakingMu    = 3.0
	stakingSigma = 1.0
)

//Node is a single participant of the simulated network. It progresses
//through the lifecycle states by returning continuations to a scheduler, and
//accumulates the counters that end up in the run report. All of its methods
//run on the scheduler's goroutine.
type Node struct {
	*Participant

	source variate.Source
	oracle Oracle
	logger *logrus.Entry

	created   time.Time
	state     state.State
	status    Status
	maxCycles int

	// stakingAmount is drawn once at construction and never consumed by the
	// lifecycle. It is carried into the report for staking-economics
	// analysis.
	stakingAmount float64

	ingroup bool

	entriesGenerated   int
	groupsJoined       int
	cycleCount         int
	connectionFailures int
	selectionRetries   int

	relayRequestTime    float64
	relayEntryWatchTime float64
}

//NewNode is a factory method that returns a Node in the NotConnected state,
//with its staking amount already drawn.
func NewNode(
	participant *Participant,
	maxCycles int,
	source variate.Source,
	oracle Oracle,
	logger *logrus.Entry,
) *Node {
	node := &Node{
		Participant:   participant,
		source:        source,
		oracle:        oracle,
		created:       time.Now(),
		state:         state.NotConnected,
		status:        Online,
		maxCycles:     maxCycles,
		stakingAmount: source.SampleLogNormal(stakingMu, stakingSigma),
	}

	node.logger = logger.WithFields(logrus.Fields{
		"this_id": node.ID(),
		"moniker": participant.Moniker,
	})

	return node
}

//Start returns the continuation that enters the initial NotConnected state.
//Handing it to a scheduler is what sets the node in motion.
func (n *Node) Start() scheduler.Continuation {
	return n.continuation(state.NotConnected, 0)
}

func (n *Node) continuation(s state.State, delay float64) scheduler.Continuation {
	return scheduler.Continuation{
		NodeID:  n.ID(),
		Moniker: n.Moniker,
		State:   s.String(),
		Delay:   delay,
		Run:     func() []scheduler.Continuation { return n.transition(s) },
	}
}

func (n *Node) spawn(s state.State, delay float64) []scheduler.Continuation {
	return []scheduler.Continuation{n.continuation(s, delay)}
}

// transition enters state s and runs its behaviour, returning the spawned
// continuations. Entering any state begins with the transient-failure check.
// A node that already reached a terminal state ignores whatever stale
// continuations are still queued for it.
func (n *Node) transition(s state.State) []scheduler.Continuation {
	if n.state.Terminal() {
		return nil
	}

	n.state = s

	if n.oracle.Check() == Failed {
		n.status = Failed
		n.state = state.Failed
		n.logger.WithFields(logrus.Fields{
			"state": s.String(),
			"cycle": n.cycleCount,
		}).Debug("Transient failure")
		return nil
	}

	n.logger.WithFields(logrus.Fields{
		"state": s.String(),
		"cycle": n.cycleCount,
	}).Debug("Run state")

	switch s {
	case state.NotConnected:
		return n.connect()
	case state.Connected:
		return n.spawn(state.Forking, 0)
	case state.Forking:
		return n.fork()
	case state.WatchingRelayRequest:
		return n.watchRelayRequest()
	case state.WatchingRelayEntry:
		return n.watchRelayEntry()
	case state.GroupSelection:
		return n.selectGroup()
	case state.GroupFormation:
		return n.formGroup()
	case state.GroupMemberCheck:
		return n.checkMembership()
	case state.EntryGeneration:
		return n.generateEntry()
	}

	return nil
}

// connect draws a connection-attempt duration. A draw at or above
// connectionLimit counts as a failed attempt, and the node retries without
// bound.
func (n *Node) connect() []scheduler.Continuation {
	duration := n.source.SampleLogNormal(connectionMu, connectionSigma)
	if duration >= connectionLimit {
		n.connectionFailures++
		n.logger.WithFields(logrus.Fields{
			"duration": duration,
			"failures": n.connectionFailures,
		}).Debug("Connection failure")
		return n.spawn(state.NotConnected, duration)
	}

	return n.spawn(state.Connected, duration)
}

// fork spawns the two watch branches. Forking is not a waiting state: it
// produces its children and exits immediately.
func (n *Node) fork() []scheduler.Continuation {
	return []scheduler.Continuation{
		n.continuation(state.WatchingRelayRequest, 0),
		n.continuation(state.WatchingRelayEntry, 0),
	}
}

func (n *Node) watchRelayRequest() []scheduler.Continuation {
	n.relayRequestTime = n.source.SampleNormal(watchMu, watchSigma)
	return n.spawn(state.GroupSelection, n.relayRequestTime)
}

// watchRelayEntry records its watch duration and ends the branch: the main
// chain continues from the relay-request side of the fork.
func (n *Node) watchRelayEntry() []scheduler.Continuation {
	n.relayEntryWatchTime = n.source.SampleNormal(watchMu, watchSigma)
	return nil
}

// selectGroup plays the group-selection lottery. A losing ticket rerolls
// without bound.
func (n *Node) selectGroup() []scheduler.Continuation {
	if n.source.SampleUniformInt(selectionRange) >= selectionThreshold {
		n.selectionRetries++
		n.logger.WithField("retries", n.selectionRetries).Debug("Group selection failure")
		return n.spawn(state.GroupSelection, 0)
	}

	return n.spawn(state.GroupFormation, 0)
}

func (n *Node) formGroup() []scheduler.Continuation {
	n.ingroup = true
	n.groupsJoined++
	return n.spawn(state.GroupMemberCheck, 0)
}

// checkMembership proceeds to entry generation for group members. A node
// that finds itself out of group goes back to watching for a relay entry.
func (n *Node) checkMembership() []scheduler.Continuation {
	if n.ingroup {
		return n.spawn(state.EntryGeneration, 0)
	}
	return n.spawn(state.WatchingRelayEntry, 0)
}

// generateEntry produces one beacon entry, completing a cycle. Group
// membership is good for a single entry. The node loops back to Forking
// until its cycle count exceeds the budget, at which point it is Done.
func (n *Node) generateEntry() []scheduler.Continuation {
	n.entriesGenerated++
	n.ingroup = false
	n.cycleCount++

	if n.cycleCount > n.maxCycles {
		n.state = state.Done
		n.logger.WithFields(logrus.Fields{
			"entries": n.entriesGenerated,
			"groups":  n.groupsJoined,
		}).Debug("Done")
		return nil
	}

	return n.spawn(state.Forking, 0)
}

//State returns the node's current lifecycle state.
func (n *Node) State() state.State {
	return n.state
}

//GetStatus returns the node's health status.
func (n *Node) GetStatus() Status {
	return n.status
}

//Terminal reports whether the node has stopped scheduling work.
func (n *Node) Terminal() bool {
	return n.state.Terminal()
}

//StakingAmount returns the token amount staked by this node. It is drawn
//once at construction and never changes.
func (n *Node) StakingAmount() float64 {
	return n.stakingAmount
}

//GetStats returns a mapping of the node's counters as strings.
func (n *Node) GetStats() map[string]string {
	return map[string]string{
		"id":                     strconv.FormatUint(uint64(n.ID()), 10),
		"moniker":                n.Moniker,
		"state":                  n.state.String(),
		"status":                 n.status.String(),
		"entries_generated":      strconv.Itoa(n.entriesGenerated),
		"groups_joined":          strconv.Itoa(n.groupsJoined),
		"cycle_count":            strconv.Itoa(n.cycleCount),
		"connection_failures":    strconv.Itoa(n.connectionFailures),
		"selection_retries":      strconv.Itoa(n.selectionRetries),
		"staking_amount":         strconv.FormatFloat(n.stakingAmount, 'f', 2, 64),
		"relay_request_time":     strconv.FormatFloat(n.relayRequestTime, 'f', 2, 64),
		"relay_entry_watch_time": strconv.FormatFloat(n.relayEntryWatchTime, 'f', 2, 64),
	}
}

//Record returns the node's contribution to the run report.
func (n *Node) Record() *report.Record {
	return &report.Record{
		ID:                  n.ID(),
		Moniker:             n.Moniker,
		PubKeyHex:           n.PublicKeyHex(),
		State:               n.state.String(),
		Status:              n.status.String(),
		EntriesGenerated:    n.entriesGenerated,
		GroupsJoined:        n.groupsJoined,
		CycleCount:          n.cycleCount,
		ConnectionFailures:  n.connectionFailures,
		SelectionRetries:    n.selectionRetries,
		StakingAmount:       n.stakingAmount,
		RelayRequestTime:    n.relayRequestTime,
		RelayEntryWatchTime: n.relayEntryWatchTime,
		Created:             n.created,
	}
}
