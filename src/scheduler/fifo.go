package scheduler

import "github.com/gammazero/deque"

// FIFO is a Scheduler that dispatches continuations in strict registration
// order. Spawned continuations join the back of the queue, so the work of
// different nodes interleaves round-robin style.
type FIFO struct {
	queue    deque.Deque[Continuation]
	maxSteps int
}

// NewFIFO returns an empty FIFO scheduler. maxSteps bounds the number of
// continuations a single Run may execute; 0 means unbounded.
func NewFIFO(maxSteps int) *FIFO {
	return &FIFO{maxSteps: maxSteps}
}

// Schedule implements Scheduler.
func (f *FIFO) Schedule(c Continuation) {
	f.queue.PushBack(c)
}

// Run implements Scheduler.
func (f *FIFO) Run() (int, error) {
	steps := 0
	for f.queue.Len() > 0 {
		if f.maxSteps > 0 && steps == f.maxSteps {
			return steps, ErrStepLimit
		}

		cont := f.queue.PopFront()
		for _, spawned := range cont.Run() {
			f.queue.PushBack(spawned)
		}
		steps++
	}
	return steps, nil
}

// Len implements Scheduler.
func (f *FIFO) Len() int {
	return f.queue.Len()
}

// Pending implements Scheduler.
func (f *FIFO) Pending() []Continuation {
	pending := make([]Continuation, f.queue.Len())
	for i := range pending {
		pending[i] = f.queue.At(i)
	}
	return pending
}
