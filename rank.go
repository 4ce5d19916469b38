package trits

import "fmt"

// Rank is the lean rank-only directory.  Compared to RankSelect it
// drops the total count, narrows the large block counters to 32 bits,
// and resolves the fractional byte with unrolled comparisons instead of
// partial count lookups.  Use it when select is not needed and the
// per-target count fits in 32 bits.
type Rank struct {
	vec    *Vector
	target uint8
	lbs    []uint32
	sbs    []uint16
}

// NewRank builds a rank-only directory for the given target over vec.
func NewRank(vec *Vector, target uint8) *Rank {
	if target > 2 {
		panic(fmt.Sprintf("target trit out of range: %d", target))
	}
	r := &Rank{target: target}
	r.build(vec)
	return r
}

func (r *Rank) build(vec *Vector) {
	r.vec = vec
	trytes := vec.trytes
	r.lbs = make([]uint32, 0, len(trytes)/trytesPerLB+1)
	r.sbs = make([]uint16, 0, len(trytes)/trytesPerSB+1)

	full := &lut[r.target][TritsPerByte-1]
	var rank uint32
	for i, tryte := range trytes {
		if i%trytesPerLB == 0 {
			r.lbs = append(r.lbs, rank)
		}
		if i%trytesPerSB == 0 {
			r.sbs = append(r.sbs, uint16(rank-r.lbs[len(r.lbs)-1]))
		}
		rank += uint32(full[tryte])
	}
}

// Target returns the trit this directory counts.
func (r *Rank) Target() uint8 {
	return r.target
}

// NumTrits returns the length of the bound vector.
func (r *Rank) NumTrits() uint64 {
	return r.vec.Len()
}

// Get returns the trit at position i of the bound vector.
func (r *Rank) Get(i uint64) uint8 {
	return r.vec.Get(i)
}

// Rank returns the number of occurrences of the target trit in
// positions [0, i).  i must be less than NumTrits.
func (r *Rank) Rank(i uint64) uint64 {
	if i >= r.vec.n {
		panic(fmt.Sprintf("rank position %d out of range, vector holds %d", i, r.vec.n))
	}

	rank := uint64(r.lbs[i/tritsPerLB]) + uint64(r.sbs[i/tritsPerSB])

	full := &lut[r.target][TritsPerByte-1]
	trytePos := i / TritsPerByte
	for j := trytePos / trytesPerSB * trytesPerSB; j < trytePos; j++ {
		rank += uint64(full[r.vec.trytes[j]])
	}

	tryte := r.vec.trytes[trytePos]
	k := i % TritsPerByte
	target := r.target
	if k > 0 && tryte%3 == target {
		rank++
	}
	if k > 1 && tryte/3%3 == target {
		rank++
	}
	if k > 2 && tryte/9%3 == target {
		rank++
	}
	if k > 3 && tryte/27%3 == target {
		rank++
	}
	return rank
}

// SizeInBytes reports the in-memory footprint of the directory,
// excluding the borrowed vector.
func (r *Rank) SizeInBytes() uint64 {
	return uint64(len(r.lbs))*4 + uint64(len(r.sbs))*2
}

// Rebind points the directory at vec, which must hold the same trit
// sequence the directory was built from.  Not safe to call while other
// goroutines query the directory.
func (r *Rank) Rebind(vec *Vector) {
	if vec == nil {
		panic("attempt to rebind directory to a nil vector")
	}
	r.vec = vec
}
