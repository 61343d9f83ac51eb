package variate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSourceDeterminism(t *testing.T) {
	s1 := NewSource(42)
	s2 := NewSource(42)

	for i := 0; i < 100; i++ {
		require.Equal(t, s1.SampleLogNormal(3, 1), s2.SampleLogNormal(3, 1))
		require.Equal(t, s1.SampleNormal(3, 1), s2.SampleNormal(3, 1))
		require.Equal(t, s1.SampleUniformInt(10), s2.SampleUniformInt(10))
	}
}

func TestSampleLogNormalPoint(t *testing.T) {
	s := NewSource(1)

	// Sigma zero collapses the distribution to exp(mu).
	for i := 0; i < 10; i++ {
		require.Equal(t, math.Exp(1), s.SampleLogNormal(1, 0))
	}
}

func TestSampleLogNormalMedian(t *testing.T) {
	s := NewSource(7)

	// The median of a lognormal is exp(mu), so about half the draws should
	// fall below it.
	below := 0
	for i := 0; i < 10000; i++ {
		v := s.SampleLogNormal(3, 1)
		require.Greater(t, v, 0.0)
		if v < math.Exp(3) {
			below++
		}
	}

	require.Greater(t, below, 4500)
	require.Less(t, below, 5500)
}

func TestSampleNormalMedian(t *testing.T) {
	s := NewSource(7)

	below := 0
	for i := 0; i < 10000; i++ {
		if s.SampleNormal(3, 1) < 3 {
			below++
		}
	}

	require.Greater(t, below, 4500)
	require.Less(t, below, 5500)
}

func TestSampleUniformIntRange(t *testing.T) {
	s := NewSource(99)

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 1000).Draw(t, "n")
		v := s.SampleUniformInt(n)
		if v < 0 || v >= n {
			t.Fatalf("draw %d outside [0, %d)", v, n)
		}
	})
}

func TestInvalidParametersPanic(t *testing.T) {
	s := NewSource(1)

	require.Panics(t, func() { s.SampleLogNormal(1, -1) })
	require.Panics(t, func() { s.SampleNormal(0, -0.5) })
	require.Panics(t, func() { s.SampleUniformInt(0) })
	require.Panics(t, func() { s.SampleUniformInt(-3) })
}

func TestStub(t *testing.T) {
	stub := &Stub{
		LogNormalFunc:  func(mu, sigma float64) float64 { return mu + sigma },
		UniformIntFunc: func(n int) int { return n - 1 },
	}

	require.Equal(t, 4.0, stub.SampleLogNormal(3, 1))
	require.Equal(t, 9, stub.SampleUniformInt(10))

	// Unscripted draws must not pass silently.
	require.Panics(t, func() { stub.SampleNormal(3, 1) })
}
