package scheduler

import (
	"cmp"
	"sort"

	"github.com/addrummond/heap"
)

// timedWork is a heap entry: a continuation stamped with the virtual time at
// which it becomes due and the sequence number of its registration.
type timedWork struct {
	due  float64
	seq  uint64
	cont Continuation
}

// Cmp orders entries by due time, breaking ties in registration order so
// that a run is reproducible.
func (a *timedWork) Cmp(b *timedWork) int {
	if c := cmp.Compare(a.due, b.due); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// VirtualTime is a Scheduler that dispatches continuations in order of
// virtual due time: the clock reading at registration plus the
// continuation's sampled delay. Per-node semantics are identical to FIFO;
// only the interleaving between nodes changes, driven by the sampled
// durations instead of registration order.
type VirtualTime struct {
	eventHeap heap.Heap[timedWork, heap.Min]
	pending   map[uint64]Continuation
	now       float64
	seq       uint64
	maxSteps  int
}

// NewVirtualTime returns an empty VirtualTime scheduler at virtual time
// zero. maxSteps bounds the number of continuations a single Run may
// execute; 0 means unbounded.
func NewVirtualTime(maxSteps int) *VirtualTime {
	return &VirtualTime{
		pending:  make(map[uint64]Continuation),
		maxSteps: maxSteps,
	}
}

// Schedule implements Scheduler. A negative delay counts as zero; virtual
// time never flows backwards.
func (v *VirtualTime) Schedule(c Continuation) {
	due := v.now
	if c.Delay > 0 {
		due += c.Delay
	}

	v.seq++
	heap.PushOrderable(&v.eventHeap, timedWork{due: due, seq: v.seq, cont: c})
	v.pending[v.seq] = c
}

// Run implements Scheduler.
func (v *VirtualTime) Run() (int, error) {
	steps := 0
	for {
		if v.maxSteps > 0 && steps == v.maxSteps && len(v.pending) > 0 {
			return steps, ErrStepLimit
		}

		work, ok := heap.PopOrderable(&v.eventHeap)
		if !ok {
			return steps, nil
		}
		delete(v.pending, work.seq)

		v.now = work.due
		for _, spawned := range work.cont.Run() {
			v.Schedule(spawned)
		}
		steps++
	}
}

// Now returns the current virtual time: the due time of the most recently
// dispatched continuation.
func (v *VirtualTime) Now() float64 {
	return v.now
}

// Len implements Scheduler.
func (v *VirtualTime) Len() int {
	return len(v.pending)
}

// Pending implements Scheduler.
func (v *VirtualTime) Pending() []Continuation {
	seqs := make([]uint64, 0, len(v.pending))
	for seq := range v.pending {
		seqs = append(seqs, seq)
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	pending := make([]Continuation, len(seqs))
	for i, seq := range seqs {
		pending[i] = v.pending[seq]
	}
	return pending
}
