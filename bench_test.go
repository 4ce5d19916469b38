package trits

import (
	"math/rand"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

const benchTrits = 1 << 20

func benchVector() (*Vector, []uint8) {
	s := randomTrits(benchTrits, 77)
	return buildVector(s), s
}

func BenchmarkRank(b *testing.B) {
	vec, _ := benchVector()
	rs := NewRankSelect(vec, 1)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		rs.Rank(uint64(n) % benchTrits)
	}
}

func BenchmarkRankLean(b *testing.B) {
	vec, _ := benchVector()
	r := NewRank(vec, 1)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		r.Rank(uint64(n) % benchTrits)
	}
}

func BenchmarkSelect(b *testing.B) {
	vec, _ := benchVector()
	rs := NewRankSelect(vec, 1)
	m := rs.NumTargets()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		rs.Select(uint64(n) % m)
	}
}

func BenchmarkNaiveRank(b *testing.B) {
	vec, _ := benchVector()
	positions := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		i := uint64(positions.Int63()) % benchTrits
		var rank uint64
		for j := uint64(0); j < i; j++ {
			if vec.Get(j) == 1 {
				rank++
			}
		}
	}
}

func BenchmarkBuildDirectory(b *testing.B) {
	vec, _ := benchVector()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		NewRankSelect(vec, 1)
	}
}

// membership in the packed vector against a plain bitset marking the
// target's positions; the bitset answers faster but costs a bit per
// trit per target instead of 1.6 bits total
func BenchmarkVectorGet(b *testing.B) {
	vec, _ := benchVector()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		vec.Get(uint64(n) % benchTrits)
	}
}

func BenchmarkBitsetTest(b *testing.B) {
	_, s := benchVector()
	marks := bitset.New(benchTrits)
	for i, tr := range s {
		if tr == 1 {
			marks.Set(uint(i))
		}
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		marks.Test(uint(n) % benchTrits)
	}
}
