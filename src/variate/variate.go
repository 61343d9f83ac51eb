// Package variate supplies the random variates that drive node lifecycles.
//
// Every stochastic decision in a simulation goes through a single Source,
// from connection latencies and watch durations to group selection and
// failure checks, so a run is fully determined by the seed it started with.
package variate

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source draws random variates from the distributions used by simulated
// nodes. Implementations are not safe for concurrent use; the scheduler is
// single-threaded so they don't need to be.
type Source interface {
	// SampleLogNormal returns a draw from a log-normal distribution whose
	// underlying normal has the given mean and standard deviation.
	SampleLogNormal(mu, sigma float64) float64

	// SampleNormal returns a draw from a normal distribution with the given
	// mean and standard deviation.
	SampleNormal(mu, sigma float64) float64

	// SampleUniformInt returns a uniform integer in [0, n). It panics if n is
	// not positive.
	SampleUniformInt(n int) int
}

type source struct {
	rnd *rand.Rand
}

// NewSource returns a Source backed by gonum's distribution implementations,
// seeded with the given value. Two Sources with the same seed produce the
// same sequence of draws.
func NewSource(seed uint64) Source {
	return &source{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// SampleLogNormal implements Source. A negative sigma is a programmer error
// and panics; sigma zero is legal and collapses the distribution to a point.
func (s *source) SampleLogNormal(mu, sigma float64) float64 {
	if sigma < 0 {
		panic(fmt.Sprintf("variate: negative lognormal sigma %f", sigma))
	}

	dist := distuv.LogNormal{
		Mu:    mu,
		Sigma: sigma,
		Src:   s.rnd,
	}

	return dist.Rand()
}

// SampleNormal implements Source. A negative sigma is a programmer error and
// panics.
func (s *source) SampleNormal(mu, sigma float64) float64 {
	if sigma < 0 {
		panic(fmt.Sprintf("variate: negative normal sigma %f", sigma))
	}

	dist := distuv.Normal{
		Mu:    mu,
		Sigma: sigma,
		Src:   s.rnd,
	}

	return dist.Rand()
}

// SampleUniformInt implements Source.
func (s *source) SampleUniformInt(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("variate: non-positive uniform range %d", n))
	}

	return s.rnd.Intn(n)
}
