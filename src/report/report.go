// Package report defines the outcome of simulation runs and the stores that
// keep them.
//
// A Report aggregates one Record per node together with the run metadata
// needed to reproduce it, notably the seed. Reports are kept in a Store: the
// InmemStore holds the run history of the current process, and the
// BadgerStore writes through to disk so histories accumulate across
// processes. Reports serialize to canonical JSON, which is also what the
// HTTP service returns.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mosaicnetworks/beaconsim/src/node/state"
	"github.com/ugorji/go/codec"
)

// A Report is the outcome of one simulation run: the parameters that
// produced it, the scheduler's accounting, and one record per node.
type Report struct {
	Index       int
	Seed        uint64
	Population  int
	MaxCycles   int
	TotalTokens float64
	Steps       int
	StepLimited bool
	Duration    time.Duration
	CreatedAt   time.Time
	Records     []*Record
}

// TotalEntries returns the number of beacon entries generated across all
// nodes.
func (r *Report) TotalEntries() int {
	total := 0
	for _, rec := range r.Records {
		total += rec.EntriesGenerated
	}
	return total
}

// TotalGroupsJoined returns the number of group memberships taken across all
// nodes.
func (r *Report) TotalGroupsJoined() int {
	total := 0
	for _, rec := range r.Records {
		total += rec.GroupsJoined
	}
	return total
}

// DoneCount returns the number of nodes that exhausted their cycle budget.
func (r *Report) DoneCount() int {
	count := 0
	for _, rec := range r.Records {
		if rec.State == state.Done.String() {
			count++
		}
	}
	return count
}

// FailedCount returns the number of nodes caught by a transient failure.
func (r *Report) FailedCount() int {
	count := 0
	for _, rec := range r.Records {
		if rec.State == state.Failed.String() {
			count++
		}
	}
	return count
}

//json encoding of Report
func (r *Report) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

//json decoding of Report
func (r *Report) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	if err := dec.Decode(r); err != nil {
		return err
	}

	return nil
}

// FormatSummary renders the report as the human-readable summary printed at
// the end of a run.
func (r *Report) FormatSummary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %d: %d nodes, max cycles %d, seed %d\n",
		r.Index, r.Population, r.MaxCycles, r.Seed)

	fmt.Fprintf(&b, "steps %d", r.Steps)
	if r.StepLimited {
		b.WriteString(" (step limit reached)")
	}
	fmt.Fprintf(&b, ", duration %s\n", r.Duration)

	fmt.Fprintf(&b, "entries %d, groups joined %d, done %d, failed %d\n",
		r.TotalEntries(), r.TotalGroupsJoined(), r.DoneCount(), r.FailedCount())

	for _, rec := range r.Records {
		fmt.Fprintf(&b, "%s: entries=%d groups=%d cycles=%d relay_request=%.2f relay_entry_watch=%.2f status=%s\n",
			rec.Moniker,
			rec.EntriesGenerated,
			rec.GroupsJoined,
			rec.CycleCount,
			rec.RelayRequestTime,
			rec.RelayEntryWatchTime,
			rec.Status)
	}

	return b.String()
}
