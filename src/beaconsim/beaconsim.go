// Package beaconsim wires a complete simulation engine: variate source,
// failure oracle, scheduler, report store, runner, and the optional HTTP
// service.
package beaconsim

import (
	"errors"
	"time"

	"github.com/mosaicnetworks/beaconsim/src/config"
	"github.com/mosaicnetworks/beaconsim/src/node"
	"github.com/mosaicnetworks/beaconsim/src/report"
	"github.com/mosaicnetworks/beaconsim/src/scheduler"
	"github.com/mosaicnetworks/beaconsim/src/service"
	"github.com/mosaicnetworks/beaconsim/src/sim"
	"github.com/mosaicnetworks/beaconsim/src/variate"
	"github.com/sirupsen/logrus"
)

// Beaconsim is the simulation engine.
type Beaconsim struct {
	Config    *config.Config
	Source    variate.Source
	Oracle    node.Oracle
	Scheduler scheduler.Scheduler
	Store     report.Store
	Runner    *sim.Runner
	Service   *service.Service
}

// NewBeaconsim is a factory method for a Beaconsim engine. Call Init before
// Run.
func NewBeaconsim(conf *config.Config) *Beaconsim {
	engine := &Beaconsim{
		Config: conf,
	}

	return engine
}

// initSource resolves the master seed and builds the variate source behind
// every draw of the run. A zero seed is replaced with one derived from the
// wall clock, and logged, so the run can still be reproduced.
func (b *Beaconsim) initSource() error {
	if b.Config.Seed == 0 {
		b.Config.Seed = uint64(time.Now().UnixNano())
		b.Config.Logger().WithField("seed", b.Config.Seed).Info("Derived seed from clock")
	}

	b.Source = variate.NewSource(b.Config.Seed)

	return nil
}

func (b *Beaconsim) initOracle() error {
	b.Oracle = node.NewLogNormalOracle(b.Source, b.Config.FailureMu, b.Config.FailureSigma)
	return nil
}

func (b *Beaconsim) initScheduler() error {
	if b.Config.VirtualTime {
		b.Scheduler = scheduler.NewVirtualTime(b.Config.MaxSteps)
		b.Config.Logger().Debug("created virtual-time scheduler")
	} else {
		b.Scheduler = scheduler.NewFIFO(b.Config.MaxSteps)
	}
	return nil
}

func (b *Beaconsim) initStore() error {
	if !b.Config.Store {
		b.Store = report.NewInmemStore()

		b.Config.Logger().Debug("created new in-mem store")
	} else {
		b.Config.Logger().WithField("path", b.Config.DatabaseDir).Debug("Attempting to load or create database")

		badgerStore, err := report.NewBadgerStore(b.Config.DatabaseDir)

		if err != nil {
			return err
		}

		if badgerStore.NeedBootstrap() {
			b.Config.Logger().Debug("loaded badger store from existing database")
		} else {
			b.Config.Logger().Debug("created new badger store from fresh database")
		}

		b.Store = badgerStore
	}

	return nil
}

func (b *Beaconsim) initRunner() error {
	runner, err := sim.NewRunner(
		b.Config,
		b.Source,
		b.Oracle,
		b.Scheduler,
		b.Config.Logger(),
	)

	if err != nil {
		return err
	}

	b.Runner = runner

	return nil
}

func (b *Beaconsim) initService() error {
	if b.Config.Serve {
		b.Service = service.NewService(b.Config.ServiceAddr, b.Runner, b.Store, b.Config.Logger())
	}
	return nil
}

// Init initialises the engine components in dependency order. It must be
// called before Run.
func (b *Beaconsim) Init() error {
	if err := b.initSource(); err != nil {
		return err
	}

	if err := b.initOracle(); err != nil {
		return err
	}

	if err := b.initScheduler(); err != nil {
		return err
	}

	if err := b.initStore(); err != nil {
		return err
	}

	if err := b.initRunner(); err != nil {
		return err
	}

	if err := b.initService(); err != nil {
		return err
	}

	return nil
}

// Run executes the simulation, saves the report in the store, and logs the
// outcome. A run that stops at the scheduler's step limit is not an error:
// its partial report is saved, flagged StepLimited. Serving the HTTP API,
// when enabled, is left to the caller so it can decide when to block.
func (b *Beaconsim) Run() error {
	rep, err := b.Runner.Run()

	if err != nil && !errors.Is(err, scheduler.ErrStepLimit) {
		return err
	}

	if err := b.Store.SetReport(rep); err != nil {
		return err
	}

	logger := b.Config.Logger()

	for _, rec := range rep.Records {
		logger.WithFields(logrus.Fields{
			"moniker": rec.Moniker,
			"state":   rec.State,
			"status":  rec.Status,
			"entries": rec.EntriesGenerated,
			"groups":  rec.GroupsJoined,
			"cycles":  rec.CycleCount,
		}).Debug("Node record")
	}

	logger.WithFields(logrus.Fields{
		"run_index": rep.Index,
		"steps":     rep.Steps,
		"limited":   rep.StepLimited,
		"entries":   rep.TotalEntries(),
		"groups":    rep.TotalGroupsJoined(),
		"done":      rep.DoneCount(),
		"failed":    rep.FailedCount(),
		"duration":  rep.Duration,
	}).Info("Run complete")

	return nil
}

// Shutdown closes the engine's store.
func (b *Beaconsim) Shutdown() {
	b.Config.Logger().Debug("Shutdown")

	b.Store.Close()
}
