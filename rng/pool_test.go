package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPoolDeterministic(t *testing.T) {
	require := require.New(t)

	p1, err := NewPool(42, 5, 2)
	require.NoError(err)
	p2, err := NewPool(42, 5, 2)
	require.NoError(err)

	for i := range p1.Transcripts {
		require.Equal(p1.Transcripts[i].Int63(), p2.Transcripts[i].Int63())
	}
	for i := range p1.Tgroups {
		require.Equal(p1.Tgroups[i].Int63(), p2.Tgroups[i].Int63())
	}
	require.Equal(p1.Coordinator.Int63(), p2.Coordinator.Int63())
}

func TestNewPoolRejectsNegativeDims(t *testing.T) {
	require := require.New(t)

	p, err := NewPool(1, -1, 0)
	require.Nil(p)
	require.Error(err)
}

func TestUniform01NeverZero(t *testing.T) {
	require := require.New(t)
	s := NewSource(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform01()
		require.Greater(v, 0.0)
		require.Less(v, 1.0)
	}
}

func TestGammaMeanVariance(t *testing.T) {
	require := require.New(t)
	s := NewSource(7)

	const shape, rate = 3.0, 2.0
	const n = 200000

	var sum, sumSq float64
	for i := 0; i < n; i++ {
		x := s.Gamma(shape, rate)
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	expMean := shape / rate
	expVar := shape / (rate * rate)

	require.True(math.Abs(mean-expMean) < 0.05*expMean, "mean %v vs expected %v", mean, expMean)
	require.True(math.Abs(variance-expVar) < 0.1*expVar, "var %v vs expected %v", variance, expVar)
}
