package node

import (
	"testing"

	"github.com/mosaicnetworks/beaconsim/src/variate"
)

func TestOracleBand(t *testing.T) {
	testCases := []struct {
		draw float64
		want Status
	}{
		{0.49, Failed},
		{0.5, Online},
		{1.0, Online},
		{1.5, Online},
		{1.51, Failed},
		{3.0, Failed},
	}

	for _, tc := range testCases {
		stub := &variate.Stub{
			LogNormalFunc: func(mu, sigma float64) float64 { return tc.draw },
		}
		oracle := NewLogNormalOracle(stub, 1, 0)

		if got := oracle.Check(); got != tc.want {
			t.Fatalf("draw %f should check %v, not %v", tc.draw, tc.want, got)
		}
	}
}

func TestOracleDefaultAlwaysFails(t *testing.T) {
	// with sigma 0 the draw is the constant e^mu = e, which is above the
	// online band, whatever the seed
	for seed := uint64(1); seed <= 3; seed++ {
		oracle := NewLogNormalOracle(variate.NewSource(seed), 1, 0)
		for i := 0; i < 5; i++ {
			if got := oracle.Check(); got != Failed {
				t.Fatalf("default parameters should always fail, got %v", got)
			}
		}
	}
}

func TestOracleDrawsAfresh(t *testing.T) {
	// it carries no memory: answers follow the draws, one draw per check
	draws := []float64{1.0, 9.0, 1.0}
	i := 0
	stub := &variate.Stub{
		LogNormalFunc: func(mu, sigma float64) float64 {
			v := draws[i]
			i++
			return v
		},
	}
	oracle := NewLogNormalOracle(stub, 1, 0)

	want := []Status{Online, Failed, Online}
	for j, w := range want {
		if got := oracle.Check(); got != w {
			t.Fatalf("check %d should be %v, not %v", j, w, got)
		}
	}
	if i != 3 {
		t.Fatalf("oracle should have drawn 3 times, not %d", i)
	}
}

func TestOracleParamsPassedThrough(t *testing.T) {
	var gotMu, gotSigma float64
	stub := &variate.Stub{
		LogNormalFunc: func(mu, sigma float64) float64 {
			gotMu, gotSigma = mu, sigma
			return 1
		},
	}

	NewLogNormalOracle(stub, 0.25, 1.75).Check()

	if gotMu != 0.25 || gotSigma != 1.75 {
		t.Fatalf("oracle should draw with its own parameters, drew with mu=%f sigma=%f", gotMu, gotSigma)
	}
}
