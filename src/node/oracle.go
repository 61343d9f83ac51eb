package node

import (
	"github.com/mosaicnetworks/beaconsim/src/variate"
)

// Band of draws for which a node counts as online. Draws at the boundaries
// are online; everything outside is a transient failure.
const (
	onlineFloor   = 0.5
	onlineCeiling = 1.5
)

// An Oracle decides whether a node is transiently failed at the instant of
// the call. It is consulted every time a node enters a state, and carries no
// memory of prior answers: a node's health can flicker between checks, but
// the lifecycle stops checking the moment it observes Failed.
type Oracle interface {
	Check() Status
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func() Status

// Check implements Oracle.
func (f OracleFunc) Check() Status { return f() }

// LogNormalOracle reports Failed whenever a fresh log-normal draw falls
// outside the online band. With the default parameters, mu 1 and sigma 0,
// the draw is the constant e, which lies above the band, so every check
// fails; simulations that want nodes to make progress must widen the
// parameters.
type LogNormalOracle struct {
	source variate.Source
	mu     float64
	sigma  float64
}

// NewLogNormalOracle is a factory method for a LogNormalOracle.
func NewLogNormalOracle(source variate.Source, mu, sigma float64) *LogNormalOracle {
	return &LogNormalOracle{
		source: source,
		mu:     mu,
		sigma:  sigma,
	}
}

// Check implements Oracle. Every call draws afresh.
func (o *LogNormalOracle) Check() Status {
	draw := o.source.SampleLogNormal(o.mu, o.sigma)
	if draw < onlineFloor || draw > onlineCeiling {
		return Failed
	}
	return Online
}
