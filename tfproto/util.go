package tfproto

import (
	"math"
	"sort"
)

func sortStrings(ss []string) {
	sort.Strings(ss)
}

func float32FromBits(v uint32) float32 {
	return math.Float32frombits(v)
}

func float64FromBits(v uint64) float64 {
	return math.Float64frombits(v)
}
