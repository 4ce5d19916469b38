// package trits implements a succinct indexed container for ternary
// strings which supports:
//  1. compact base-3 storage, five trits per byte
//  2. constant time rank via a two level block directory
//  3. logarithmic time select with a tiny constant
//  4. raw binary serialization
package trits

import (
	"fmt"
	"strings"
)

// TritsPerByte is the number of trits packed into one tryte.
const TritsPerByte = 5

// maxTryte is 3^5; any stored byte must be below it
const maxTryte = 243

// pow3[r] = 3^r, the in-byte weight of trit slot r
var pow3 = [TritsPerByte]uint8{1, 3, 9, 27, 81}

// Builder accumulates trits and packs them five per byte.  Finalize
// hands the packed storage to the returned Vector and resets the
// builder to empty, so it can be reused for another vector.
type Builder struct {
	trytes []byte
	cur    uint8
	slot   uint8
	n      uint64
}

// NewBuilder creates an empty builder with space reserved for
// capacityHint trits.
func NewBuilder(capacityHint uint64) *Builder {
	return &Builder{
		trytes: make([]byte, 0, (capacityHint+TritsPerByte-1)/TritsPerByte),
	}
}

// Push appends one trit.  t must be 0, 1 or 2.
func (b *Builder) Push(t uint8) {
	if t > 2 {
		panic(fmt.Sprintf("attempt to push out of range trit: %d", t))
	}
	b.cur += t * pow3[b.slot]
	b.slot++
	if b.slot == TritsPerByte {
		b.trytes = append(b.trytes, b.cur)
		b.cur = 0
		b.slot = 0
	}
	b.n++
}

// Len returns the number of trits pushed so far.
func (b *Builder) Len() uint64 {
	return b.n
}

// Finalize seals the builder and returns the immutable vector.  Unused
// trit slots in the final byte are zero, which the rank directories
// rely on.
func (b *Builder) Finalize() *Vector {
	trytes := b.trytes
	if b.slot > 0 {
		trytes = append(trytes, b.cur)
	}
	v := &Vector{trytes: trytes, n: b.n}
	b.trytes = nil
	b.cur = 0
	b.slot = 0
	b.n = 0
	return v
}

// Vector is an immutable packed sequence of trits.  After construction
// it is safe for unrestricted concurrent reads.
type Vector struct {
	trytes []byte
	n      uint64
}

// Len returns the number of trits stored.
func (v *Vector) Len() uint64 {
	return v.n
}

// Get returns the trit at position i.
func (v *Vector) Get(i uint64) uint8 {
	if i >= v.n {
		panic(fmt.Sprintf("trit index %d out of range, vector holds %d", i, v.n))
	}
	return v.trytes[i/TritsPerByte] / pow3[i%TritsPerByte] % 3
}

// Bytes exposes the packed storage.  The returned slice is shared with
// the vector and must not be modified.
func (v *Vector) Bytes() []byte {
	return v.trytes
}

// SizeInBytes reports the in-memory footprint of the packed storage.
func (v *Vector) SizeInBytes() uint64 {
	return uint64(len(v.trytes)) + 8
}

// Each calls cb for every trit in order.  Iteration stops early when cb
// returns false.
func (v *Vector) Each(cb func(i uint64, t uint8) bool) {
	for q, tryte := range v.trytes {
		base := uint64(q) * TritsPerByte
		for r := uint64(0); r < TritsPerByte && base+r < v.n; r++ {
			if !cb(base+r, tryte/pow3[r]%3) {
				return
			}
		}
	}
}

// DebugDump prints a textual representation of the trit sequence
// to stdout
func (v *Vector) DebugDump() {
	const perLine = 50
	for off := uint64(0); off < v.n; off += perLine {
		end := off + perLine
		if end > v.n {
			end = v.n
		}
		var line strings.Builder
		for i := off; i < end; i++ {
			line.WriteByte('0' + v.Get(i))
		}
		fmt.Printf("%10d  %s\n", off, line.String())
	}
}
