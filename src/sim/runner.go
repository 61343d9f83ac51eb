// Package sim drives whole simulation runs: it builds a population of nodes,
// feeds their work to a scheduler, and assembles the final report.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/mosaicnetworks/beaconsim/src/config"
	"github.com/mosaicnetworks/beaconsim/src/keys"
	"github.com/mosaicnetworks/beaconsim/src/node"
	"github.com/mosaicnetworks/beaconsim/src/report"
	"github.com/mosaicnetworks/beaconsim/src/scheduler"
	"github.com/mosaicnetworks/beaconsim/src/variate"
	"github.com/sirupsen/logrus"
)

//Runner executes one simulation run over a population of nodes.
type Runner struct {
	conf   *config.Config
	source variate.Source
	oracle node.Oracle
	sched  scheduler.Scheduler
	logger *logrus.Entry

	population []*node.Node

	start       time.Time
	steps       int
	stepLimited bool
	lastReport  *report.Report
}

//NewRunner validates the configuration and builds the population. Node
//identities derive from the seed, so two runners built from the same
//configuration carry the same nodes.
func NewRunner(
	conf *config.Config,
	source variate.Source,
	oracle node.Oracle,
	sched scheduler.Scheduler,
	logger *logrus.Entry,
) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	runner := &Runner{
		conf:   conf,
		source: source,
		oracle: oracle,
		sched:  sched,
		logger: logger,
	}

	if err := runner.buildPopulation(); err != nil {
		return nil, err
	}

	return runner, nil
}

// buildPopulation creates the nodes, numbered node0 to nodeN-1. Keys are
// drawn from a seed-derived reader rather than the system entropy source, so
// a given seed always produces the same identities.
func (r *Runner) buildPopulation() error {
	keyReader := rand.New(rand.NewSource(int64(r.conf.Seed)))

	r.population = make([]*node.Node, r.conf.Nodes)
	for i := range r.population {
		key, err := keys.GenerateECDSAKeyFromReader(keyReader)
		if err != nil {
			return err
		}

		moniker := fmt.Sprintf("node%d", i)
		participant := node.NewParticipant(key, moniker)

		r.population[i] = node.NewNode(participant, r.conf.MaxCycles, r.source, r.oracle, r.logger)
	}

	return nil
}

//Run registers every node's initial continuation, in creation order, runs
//the scheduler until no work remains, and returns the assembled report. When
//the scheduler stops at its step limit, Run returns the partial report along
//with scheduler.ErrStepLimit.
func (r *Runner) Run() (*report.Report, error) {
	r.start = time.Now()

	r.logger.WithFields(logrus.Fields{
		"nodes":      r.conf.Nodes,
		"max_cycles": r.conf.MaxCycles,
		"seed":       r.conf.Seed,
		"max_steps":  r.conf.MaxSteps,
	}).Debug("Run")

	for _, n := range r.population {
		r.sched.Schedule(n.Start())
	}

	steps, err := r.sched.Run()

	r.steps = steps
	r.stepLimited = errors.Is(err, scheduler.ErrStepLimit)
	if err != nil && !r.stepLimited {
		return nil, err
	}

	if r.stepLimited {
		r.logger.WithFields(logrus.Fields{
			"steps":   steps,
			"pending": r.sched.Len(),
		}).Warn("Step limit reached")
	}

	r.lastReport = r.buildReport()

	return r.lastReport, err
}

func (r *Runner) buildReport() *report.Report {
	records := make([]*report.Record, len(r.population))
	for i, n := range r.population {
		records[i] = n.Record()
	}

	return &report.Report{
		Seed:        r.conf.Seed,
		Population:  r.conf.Nodes,
		MaxCycles:   r.conf.MaxCycles,
		TotalTokens: r.conf.TotalTokens,
		Steps:       r.steps,
		StepLimited: r.stepLimited,
		Duration:    time.Since(r.start),
		CreatedAt:   r.start,
		Records:     records,
	}
}

//Nodes returns the population, in creation order.
func (r *Runner) Nodes() []*node.Node {
	return r.population
}

//LastReport returns the report of the last completed run, or nil if Run has
//not been called.
func (r *Runner) LastReport() *report.Report {
	return r.lastReport
}

//GetStats returns run statistics.
func (r *Runner) GetStats() map[string]string {
	stats := map[string]string{
		"nodes":      strconv.Itoa(r.conf.Nodes),
		"max_cycles": strconv.Itoa(r.conf.MaxCycles),
		"seed":       strconv.FormatUint(r.conf.Seed, 10),
		"steps":      strconv.Itoa(r.steps),
		"pending":    strconv.Itoa(r.sched.Len()),
	}

	if r.lastReport != nil {
		stats["entries_generated"] = strconv.Itoa(r.lastReport.TotalEntries())
		stats["groups_joined"] = strconv.Itoa(r.lastReport.TotalGroupsJoined())
		stats["done"] = strconv.Itoa(r.lastReport.DoneCount())
		stats["failed"] = strconv.Itoa(r.lastReport.FailedCount())
		stats["duration"] = r.lastReport.Duration.String()
	}

	return stats
}
