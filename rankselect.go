package trits

import "fmt"

// RankSelect answers rank and select queries for one target trit over
// a finalized vector.  It borrows the vector: the vector must outlive
// every directory built on it.
//
// Rank walks at most nine trytes past the small block boundary.  Select
// binary searches the large blocks, then the small blocks of the
// matching span, then scans at most ten trytes.
type RankSelect struct {
	vec    *Vector
	target uint8
	lbs    []uint64
	sbs    []uint16
	m      uint64
}

// NewRankSelect builds a directory for the given target over vec.
func NewRankSelect(vec *Vector, target uint8) *RankSelect {
	if target > 2 {
		panic(fmt.Sprintf("target trit out of range: %d", target))
	}
	rs := &RankSelect{target: target}
	rs.build(vec)
	return rs
}

func (rs *RankSelect) build(vec *Vector) {
	rs.vec = vec
	trytes := vec.trytes
	rs.lbs = make([]uint64, 0, len(trytes)/trytesPerLB+1)
	rs.sbs = make([]uint16, 0, len(trytes)/trytesPerSB+1)

	full := &lut[rs.target][TritsPerByte-1]
	var rank uint64
	for i, tryte := range trytes {
		if i%trytesPerLB == 0 {
			rs.lbs = append(rs.lbs, rank)
		}
		if i%trytesPerSB == 0 {
			// the delta is at most tritsPerLB, which fits in 16 bits
			rs.sbs = append(rs.sbs, uint16(rank-rs.lbs[len(rs.lbs)-1]))
		}
		rank += uint64(full[tryte])
	}
	rs.m = rank
	// the zero padding slots of a partial final tryte were counted
	// above for target 0 and are not occurrences
	if rs.target == 0 {
		rs.m -= uint64(len(trytes))*TritsPerByte - vec.n
	}
}

// Target returns the trit this directory counts.
func (rs *RankSelect) Target() uint8 {
	return rs.target
}

// NumTrits returns the length of the bound vector.
func (rs *RankSelect) NumTrits() uint64 {
	return rs.vec.Len()
}

// NumTargets returns the total number of occurrences of the target trit.
func (rs *RankSelect) NumTargets() uint64 {
	return rs.m
}

// Get returns the trit at position i of the bound vector.
func (rs *RankSelect) Get(i uint64) uint8 {
	return rs.vec.Get(i)
}

// Rank returns the number of occurrences of the target trit in
// positions [0, i).  i must be less than NumTrits; padding slots past
// the end of the vector are never counted.
func (rs *RankSelect) Rank(i uint64) uint64 {
	if i >= rs.vec.n {
		panic(fmt.Sprintf("rank position %d out of range, vector holds %d", i, rs.vec.n))
	}

	rank := rs.lbs[i/tritsPerLB] + uint64(rs.sbs[i/tritsPerSB])

	tbl := &lut[rs.target]
	trytePos := i / TritsPerByte
	for j := trytePos / trytesPerSB * trytesPerSB; j < trytePos; j++ {
		rank += uint64(tbl[TritsPerByte-1][rs.vec.trytes[j]])
	}
	if k := i % TritsPerByte; k != 0 {
		rank += uint64(tbl[k-1][rs.vec.trytes[trytePos]])
	}
	return rank
}

// Select returns the position of the (n+1)-th occurrence of the target
// trit.  n must be less than NumTargets.
func (rs *RankSelect) Select(n uint64) uint64 {
	if n >= rs.m {
		panic(fmt.Sprintf("select ordinal %d out of range, vector holds %d targets", n, rs.m))
	}

	// lower bound over the large blocks
	left, right := uint64(0), uint64(len(rs.lbs))
	for left+1 < right {
		center := (left + right) / 2
		if n < rs.lbs[center] {
			right = center
		} else {
			left = center
		}
	}
	n -= rs.lbs[left]

	// lower bound over the small blocks of this span
	left = left * sbPerLB
	right = left + sbPerLB
	if max := uint64(len(rs.sbs)); right > max {
		right = max
	}
	for left+1 < right {
		center := (left + right) / 2
		if n < uint64(rs.sbs[center]) {
			right = center
		} else {
			left = center
		}
	}
	n -= uint64(rs.sbs[left])

	// scan the trytes of the small block for the n-th occurrence,
	// counting from one
	n++
	tbl := &lut[rs.target]
	i := left * trytesPerSB
	for {
		cnt := uint64(tbl[TritsPerByte-1][rs.vec.trytes[i]])
		if n <= cnt {
			break
		}
		n -= cnt
		i++
	}

	// resolve the in-tryte offset; the partial counts increase by 0
	// or 1 per slot, so the first k that reaches n is the match
	tryte := rs.vec.trytes[i]
	for k := uint64(0); ; k++ {
		if n == uint64(tbl[k][tryte]) {
			return i*TritsPerByte + k
		}
	}
}

// SizeInBytes reports the in-memory footprint of the directory,
// excluding the borrowed vector.
func (rs *RankSelect) SizeInBytes() uint64 {
	return uint64(len(rs.lbs))*8 + uint64(len(rs.sbs))*2 + 8
}

// Rebind points the directory at vec, which must hold the same trit
// sequence the directory was built from.  Not safe to call while other
// goroutines query the directory.
func (rs *RankSelect) Rebind(vec *Vector) {
	if vec == nil {
		panic("attempt to rebind directory to a nil vector")
	}
	rs.vec = vec
}
