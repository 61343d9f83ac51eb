package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFIFOOrder(t *testing.T) {
	chk := require.New(t)

	sched := NewFIFO(0)

	var got []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		sched.Schedule(Continuation{State: name, Run: func() []Continuation {
			got = append(got, name)
			return nil
		}})
	}
	chk.Equal(3, sched.Len())

	steps, err := sched.Run()
	chk.NoError(err)
	chk.Equal(3, steps)
	chk.Equal([]string{"a", "b", "c"}, got)
	chk.Zero(sched.Len())
}

func TestFIFOFanOut(t *testing.T) {
	chk := require.New(t)

	sched := NewFIFO(0)

	var got []string
	visit := func(name string, spawned ...Continuation) Continuation {
		return Continuation{State: name, Run: func() []Continuation {
			got = append(got, name)
			return spawned
		}}
	}

	// parent spawns two children; they join behind work that was already
	// queued when the parent ran.
	sched.Schedule(visit("parent", visit("child1"), visit("child2")))
	sched.Schedule(visit("sibling"))

	steps, err := sched.Run()
	chk.NoError(err)
	chk.Equal(4, steps)
	chk.Equal([]string{"parent", "sibling", "child1", "child2"}, got)
}

func TestFIFOStepLimit(t *testing.T) {
	chk := require.New(t)

	sched := NewFIFO(10)

	runs := 0
	var spin func() []Continuation
	spin = func() []Continuation {
		runs++
		return []Continuation{{NodeID: 7, Moniker: "node7", State: "spin", Run: spin}}
	}
	sched.Schedule(Continuation{NodeID: 7, Moniker: "node7", State: "spin", Run: spin})

	steps, err := sched.Run()
	chk.ErrorIs(err, ErrStepLimit)
	chk.Equal(10, steps)
	chk.Equal(10, runs)

	// the unfinished work remains inspectable
	chk.Equal(1, sched.Len())
	pending := sched.Pending()
	chk.Len(pending, 1)
	chk.Equal(uint32(7), pending[0].NodeID)
	chk.Equal("spin", pending[0].State)
}

func TestFIFOPendingOrder(t *testing.T) {
	chk := require.New(t)

	sched := NewFIFO(0)
	for _, name := range []string{"x", "y", "z"} {
		sched.Schedule(Continuation{State: name, Run: func() []Continuation { return nil }})
	}

	pending := sched.Pending()
	chk.Len(pending, 3)
	chk.Equal("x", pending[0].State)
	chk.Equal("y", pending[1].State)
	chk.Equal("z", pending[2].State)
}

func TestVirtualTimeOrder(t *testing.T) {
	chk := require.New(t)

	sched := NewVirtualTime(0)

	var got []string
	add := func(name string, delay float64) {
		sched.Schedule(Continuation{State: name, Delay: delay, Run: func() []Continuation {
			got = append(got, name)
			return nil
		}})
	}
	add("slow", 5)
	add("fast", 1)
	add("later", 3)

	steps, err := sched.Run()
	chk.NoError(err)
	chk.Equal(3, steps)
	chk.Equal([]string{"fast", "later", "slow"}, got)
	chk.Equal(5.0, sched.Now())
}

func TestVirtualTimeTieBreak(t *testing.T) {
	chk := require.New(t)

	sched := NewVirtualTime(0)

	var got []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		sched.Schedule(Continuation{State: name, Delay: 2, Run: func() []Continuation {
			got = append(got, name)
			return nil
		}})
	}

	// equal due times dispatch in registration order
	_, err := sched.Run()
	chk.NoError(err)
	chk.Equal([]string{"first", "second", "third"}, got)
}

func TestVirtualTimeNegativeDelay(t *testing.T) {
	chk := require.New(t)

	sched := NewVirtualTime(0)

	var childAt float64
	child := Continuation{State: "child", Delay: -3, Run: func() []Continuation {
		childAt = sched.Now()
		return nil
	}}
	sched.Schedule(Continuation{State: "parent", Delay: 2, Run: func() []Continuation {
		return []Continuation{child}
	}})

	steps, err := sched.Run()
	chk.NoError(err)
	chk.Equal(2, steps)
	chk.Equal(2.0, childAt)
	chk.Equal(2.0, sched.Now())
}

func TestVirtualTimeStepLimit(t *testing.T) {
	chk := require.New(t)

	sched := NewVirtualTime(4)

	var spin func() []Continuation
	spin = func() []Continuation {
		return []Continuation{{State: "spin", Delay: 1, Run: spin}}
	}
	sched.Schedule(Continuation{State: "spin", Delay: 1, Run: spin})

	steps, err := sched.Run()
	chk.ErrorIs(err, ErrStepLimit)
	chk.Equal(4, steps)
	chk.Equal(1, sched.Len())
	chk.Equal(4.0, sched.Now())
}

// Whatever the delays, both schedulers execute every scheduled continuation
// exactly once.
func TestSchedulersRunAllWork(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		delays := rapid.SliceOfN(rapid.Float64Range(-2, 10), 1, 30).Draw(t, "delays")
		children := rapid.IntRange(0, 2).Draw(t, "children")

		for _, sched := range []Scheduler{NewFIFO(0), NewVirtualTime(0)} {
			executed := 0
			for _, delay := range delays {
				delay := delay
				sched.Schedule(Continuation{Delay: delay, Run: func() []Continuation {
					executed++
					spawned := make([]Continuation, children)
					for i := range spawned {
						spawned[i] = Continuation{Delay: delay / 2, Run: func() []Continuation {
							executed++
							return nil
						}}
					}
					return spawned
				}})
			}

			steps, err := sched.Run()
			require.NoError(t, err)

			want := len(delays) * (1 + children)
			require.Equal(t, want, steps)
			require.Equal(t, want, executed)
			require.Zero(t, sched.Len())
		}
	})
}
