package beaconsim

import (
	"testing"

	"github.com/mosaicnetworks/beaconsim/src/config"
)

func testConfig(t *testing.T, nodes int, seed uint64) *config.Config {
	conf := config.NewTestConfig(t)
	conf.Nodes = nodes
	conf.MaxCycles = 1
	conf.Seed = seed
	return conf
}

func TestInitValidates(t *testing.T) {
	engine := NewBeaconsim(testConfig(t, 0, 1))

	if err := engine.Init(); err == nil {
		t.Fatal("Init should refuse a population of 0 nodes")
	}
}

func TestSeedResolvedFromClock(t *testing.T) {
	engine := NewBeaconsim(testConfig(t, 1, 0))

	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}

	if engine.Config.Seed == 0 {
		t.Fatal("a zero seed should be replaced at Init")
	}
}

func TestDefaultOracleFailsEveryone(t *testing.T) {
	// with the default failure parameters the oracle draw is the constant e,
	// outside the online band: every node fails at its very first check
	engine := NewBeaconsim(testConfig(t, 10, 99))

	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	defer engine.Shutdown()

	if err := engine.Run(); err != nil {
		t.Fatal(err)
	}

	if got := engine.Store.LastRunIndex(); got != 0 {
		t.Fatalf("store should hold run 0, LastRunIndex is %d", got)
	}

	rep, err := engine.Store.GetReport(0)
	if err != nil {
		t.Fatal(err)
	}

	if rep.Steps != 10 {
		t.Fatalf("each node should fail in a single step, got %d steps", rep.Steps)
	}
	if got := rep.FailedCount(); got != 10 {
		t.Fatalf("all 10 nodes should fail, not %d", got)
	}
	if got := rep.TotalEntries(); got != 0 {
		t.Fatalf("failed nodes cannot generate entries, got %d", got)
	}
}

func TestRunReproducibleAcrossEngines(t *testing.T) {
	run := func() map[string]string {
		conf := testConfig(t, 15, 7)
		conf.MaxCycles = 3
		conf.FailureMu = 0
		conf.FailureSigma = 1
		conf.MaxSteps = 100000

		engine := NewBeaconsim(conf)
		if err := engine.Init(); err != nil {
			t.Fatal(err)
		}
		defer engine.Shutdown()

		if err := engine.Run(); err != nil {
			t.Fatal(err)
		}

		return engine.Runner.GetStats()
	}

	first := run()
	second := run()

	for _, key := range []string{"steps", "entries_generated", "groups_joined", "done", "failed"} {
		if first[key] != second[key] {
			t.Fatalf("two engines with the same seed should agree on %s: %s / %s",
				key, first[key], second[key])
		}
	}
}

func TestStorePersistsAcrossEngines(t *testing.T) {
	dbDir := t.TempDir()

	conf := testConfig(t, 5, 11)
	conf.Store = true
	conf.DatabaseDir = dbDir

	engine := NewBeaconsim(conf)
	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	if err := engine.Run(); err != nil {
		t.Fatal(err)
	}
	engine.Shutdown()

	conf = testConfig(t, 5, 12)
	conf.Store = true
	conf.DatabaseDir = dbDir

	reopened := NewBeaconsim(conf)
	if err := reopened.Init(); err != nil {
		t.Fatal(err)
	}
	defer reopened.Shutdown()

	if got := reopened.Store.LastRunIndex(); got != 0 {
		t.Fatalf("previous run should be bootstrapped, LastRunIndex is %d", got)
	}

	if err := reopened.Run(); err != nil {
		t.Fatal(err)
	}

	if got := reopened.Store.LastRunIndex(); got != 1 {
		t.Fatalf("run history should accumulate, LastRunIndex is %d", got)
	}

	first, err := reopened.Store.GetReport(0)
	if err != nil {
		t.Fatal(err)
	}
	if first.Seed != 11 {
		t.Fatalf("report 0 should carry seed 11, not %d", first.Seed)
	}

	second, err := reopened.Store.GetReport(1)
	if err != nil {
		t.Fatal(err)
	}
	if second.Seed != 12 {
		t.Fatalf("report 1 should carry seed 12, not %d", second.Seed)
	}
}
