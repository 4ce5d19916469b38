package trits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTables(t *testing.T) {
	for v := 0; v < maxTryte; v++ {
		var counts [3]uint8
		x := v
		for k := 0; k < TritsPerByte; k++ {
			counts[x%3]++
			x /= 3
			for target := 0; target < 3; target++ {
				if !assert.Equal(t, counts[target], lut[target][k][v], "target=%d k=%d v=%d", target, k, v) {
					return
				}
			}
		}
		// all five slots accounted for
		assert.Equal(t, uint8(TritsPerByte), counts[0]+counts[1]+counts[2])
	}
}
