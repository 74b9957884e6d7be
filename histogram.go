package tfrecord

import (
	"iter"
	"math"
	"sort"
	"sync"

	"github.com/mlrecord/tfrecord/tfproto"
)

// Accumulator is an online histogram over fixed bucket boundaries. Samples
// are added one at a time and never removed; Snapshot/Iter read the
// current state without blocking concurrent Add calls against each other
// for longer than one bucket update.
//
// A single sync.RWMutex guards all fields: Add takes the write lock,
// Snapshot and Iter take the read lock. This replaces the double-buffered,
// per-field atomic update scheme of the original implementation, which has
// no clean Go rendering and no readership in this pack.
type Accumulator struct {
	mu sync.RWMutex

	limits  []float64
	buckets []float64

	min, max      float64
	sum, sumSq    float64
	num           float64
}

// NewAccumulator creates an Accumulator with explicit, strictly increasing
// bucket limits.
func NewAccumulator(limits []float64) (*Accumulator, error) {
	if len(limits) == 0 {
		return nil, &ErrInvalidArgument{Description: "bucket limits must not be empty"}
	}
	for i := 1; i < len(limits); i++ {
		if limits[i] <= limits[i-1] {
			return nil, &ErrInvalidArgument{Description: "bucket limits must be strictly increasing"}
		}
	}
	owned := append([]float64(nil), limits...)
	return &Accumulator{
		limits:  owned,
		buckets: make([]float64, len(owned)),
		min:     math.Inf(1),
		max:     math.Inf(-1),
	}, nil
}

// defaultBucketLimits builds TensorBoard's default histogram bucket
// boundaries: a geometric progression of positive limits starting at
// 1e-12 and growing by a factor of 1.1 until it reaches 1e20, mirrored
// around zero with an explicit zero bucket in between, and bounded by
// -math.MaxFloat64 and math.MaxFloat64 at the two ends.
func defaultBucketLimits() []float64 {
	var pos []float64
	v := 1e-12
	for v < 1e20 {
		pos = append(pos, v)
		v *= 1.1
	}
	limits := make([]float64, 0, 2*len(pos)+3)
	limits = append(limits, -math.MaxFloat64)
	for i := len(pos) - 1; i >= 0; i-- {
		limits = append(limits, -pos[i])
	}
	limits = append(limits, 0)
	limits = append(limits, pos...)
	limits = append(limits, math.MaxFloat64)
	return limits
}

// NewDefaultAccumulator creates an Accumulator using TensorBoard's default
// bucket limits.
func NewDefaultAccumulator() *Accumulator {
	acc, err := NewAccumulator(defaultBucketLimits())
	if err != nil {
		// defaultBucketLimits is always non-empty and strictly increasing.
		panic(err)
	}
	return acc
}

// bucketIndex returns the first index whose limit is >= value. Both the
// exact-match and insertion-point arms of the underlying binary search
// resolve to this same index, so there is no separate tie-breaking rule to
// apply.
func bucketIndex(limits []float64, value float64) int {
	return sort.Search(len(limits), func(i int) bool { return limits[i] >= value })
}

// Add records count occurrences of value. value must be finite; count must
// be finite and non-negative.
func (a *Accumulator) Add(value float64, count float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ErrInvalidArgument{Description: "value must be finite"}
	}
	if math.IsNaN(count) || math.IsInf(count, 0) {
		return &ErrInvalidArgument{Description: "count must be finite"}
	}
	if count < 0 {
		return &ErrInvalidArgument{Description: "count must be non-negative"}
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	i := bucketIndex(a.limits, value)
	if i == len(a.limits) {
		i--
	}
	a.buckets[i] += count

	if a.num == 0 {
		a.min, a.max = value, value
	} else {
		if value < a.min {
			a.min = value
		}
		if value > a.max {
			a.max = value
		}
	}
	a.num += count
	a.sum += value * count
	a.sumSq += value * value * count
	return nil
}

// Snapshot returns the current histogram as a tfproto.HistogramProto. The
// returned message owns its own copies of the bucket slices.
func (a *Accumulator) Snapshot() *tfproto.HistogramProto {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return &tfproto.HistogramProto{
		Min:         a.min,
		Max:         a.max,
		Num:         a.num,
		Sum:         a.sum,
		SumSquares:  a.sumSq,
		BucketLimit: append([]float64(nil), a.limits...),
		Bucket:      append([]float64(nil), a.buckets...),
	}
}

// Iter returns a lazy view of (limit, count) pairs for every non-empty
// bucket, in increasing limit order, as of the moment Iter is called.
// Ranging over the returned sequence again replays that same snapshot;
// call Iter again for a fresh view reflecting any Add calls made since.
func (a *Accumulator) Iter() iter.Seq2[float64, float64] {
	snap := a.Snapshot()
	return func(yield func(float64, float64) bool) {
		for i, limit := range snap.BucketLimit {
			count := snap.Bucket[i]
			if count == 0 {
				continue
			}
			if !yield(limit, count) {
				return
			}
		}
	}
}
