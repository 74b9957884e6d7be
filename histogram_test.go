package tfrecord

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorRejectsNonIncreasingLimits(t *testing.T) {
	_, err := NewAccumulator([]float64{1, 1})
	require.Error(t, err)
}

func TestAccumulatorConservesCount(t *testing.T) {
	acc, err := NewAccumulator([]float64{-1, 0, 1})
	require.NoError(t, err)

	values := []float64{-5, -0.5, 0, 0.2, 0.9, 10}
	for _, v := range values {
		require.NoError(t, acc.Add(v, 1))
	}

	snap := acc.Snapshot()
	var total float64
	for _, c := range snap.Bucket {
		total += c
	}
	assert.Equal(t, float64(len(values)), total)
	assert.Equal(t, float64(len(values)), snap.Num)
}

func TestAccumulatorTracksMinMaxSum(t *testing.T) {
	acc, err := NewAccumulator([]float64{-10, 0, 10})
	require.NoError(t, err)
	require.NoError(t, acc.Add(-3, 1))
	require.NoError(t, acc.Add(7, 1))

	snap := acc.Snapshot()
	assert.Equal(t, -3.0, snap.Min)
	assert.Equal(t, 7.0, snap.Max)
	assert.Equal(t, 4.0, snap.Sum)
}

func TestAccumulatorEmptySnapshotUsesConventionSentinels(t *testing.T) {
	acc := NewDefaultAccumulator()
	snap := acc.Snapshot()
	assert.Equal(t, math.Inf(1), snap.Min)
	assert.Equal(t, math.Inf(-1), snap.Max)
	assert.Equal(t, 0.0, snap.Sum)
	assert.Equal(t, 0.0, snap.SumSquares)
	assert.Equal(t, 0.0, snap.Num)
}

func TestAccumulatorRejectsNonFiniteValue(t *testing.T) {
	acc := NewDefaultAccumulator()
	err := acc.Add(math.NaN(), 1)
	require.Error(t, err)

	err = acc.Add(math.Inf(1), 1)
	require.Error(t, err)

	snap := acc.Snapshot()
	assert.Equal(t, math.Inf(1), snap.Min)
	assert.Equal(t, math.Inf(-1), snap.Max)
	assert.Equal(t, 0.0, snap.Num)
	assert.Equal(t, 0.0, snap.Sum)
}

func TestAccumulatorRejectsNonFiniteCount(t *testing.T) {
	acc := NewDefaultAccumulator()
	require.Error(t, acc.Add(1, math.NaN()))
	require.Error(t, acc.Add(1, math.Inf(1)))
	assert.Equal(t, 0.0, acc.Snapshot().Num)
}

func TestAccumulatorBucketTieBreak(t *testing.T) {
	// Both an exact match against a limit and a value strictly between two
	// limits resolve to the first bucket whose limit is >= the value.
	limits := []float64{-1, 0, 1, 2}
	assert.Equal(t, 1, bucketIndex(limits, 0))
	assert.Equal(t, 1, bucketIndex(limits, -0.5))
	assert.Equal(t, 2, bucketIndex(limits, 1))
}

func TestDefaultAccumulatorLimitsAreSymmetric(t *testing.T) {
	limits := defaultBucketLimits()
	require.NotEmpty(t, limits)
	mid := len(limits) / 2
	assert.Equal(t, 0.0, limits[mid])
	assert.InDelta(t, -limits[mid+1], limits[mid-1], 1e-9)
}

func TestAccumulatorIterIsLazyAndReflectsSnapshotAtCallTime(t *testing.T) {
	acc, err := NewAccumulator([]float64{0, 1})
	require.NoError(t, err)
	require.NoError(t, acc.Add(-1, 2))

	seq := acc.Iter()
	require.NoError(t, acc.Add(0.5, 1))

	var seen []float64
	for _, count := range seq {
		seen = append(seen, count)
	}
	assert.Equal(t, []float64{2}, seen)
}

func TestAccumulatorAddIsConcurrencySafe(t *testing.T) {
	acc := NewDefaultAccumulator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			_ = acc.Add(v, 1)
		}(float64(i))
	}
	wg.Wait()
	assert.Equal(t, float64(50), acc.Snapshot().Num)
}
