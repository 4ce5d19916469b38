package main

import (
	"bytes"
	"fmt"

	trits "github.com/pombredanne/succinctrits"
)

func main() {
	// pack a short ternary string
	sequence := []uint8{0, 1, 2, 0, 1, 2, 0, 1, 2, 0, 2, 2, 1, 0, 1}
	builder := trits.NewBuilder(uint64(len(sequence)))
	for _, t := range sequence {
		builder.Push(t)
	}
	vec := builder.Finalize()

	// index every occurrence of trit 2
	rs := trits.NewRankSelect(vec, 2)
	fmt.Printf("%d of %d trits are 2\n", rs.NumTargets(), rs.NumTrits())
	for n := uint64(0); n < rs.NumTargets(); n++ {
		pos := rs.Select(n)
		fmt.Printf("occurrence %d is at position %d (rank there is %d)\n",
			n, pos, rs.Rank(pos))
	}

	// dump the whole sequence in textual form
	vec.DebugDump()

	// serialize both parts and report sizes
	var vbuf, dbuf bytes.Buffer
	vec.WriteTo(&vbuf)
	rs.WriteTo(&dbuf)
	fmt.Printf("vector serializes into %d bytes, directory into %d\n",
		vbuf.Len(), dbuf.Len())
}
