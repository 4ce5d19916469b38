package trits

// lut[t][k][v] is the number of occurrences of trit t among the first
// k+1 trit slots of tryte v.  The k=4 plane gives full-byte counts for
// directory construction and block scans; the lower planes resolve the
// fractional byte at the end of a rank or select.
//
// The three tables are computed once at process start.  Directories
// hoist &lut[target] out of the hot path so lookups index a fixed
// [5][243] array, same as having one table per target.
var lut [3][TritsPerByte][maxTryte]uint8

func init() {
	for v := 0; v < maxTryte; v++ {
		x := v
		var counts [3]uint8
		for k := 0; k < TritsPerByte; k++ {
			counts[x%3]++
			x /= 3
			for t := 0; t < 3; t++ {
				lut[t][k][v] = counts[t]
			}
		}
	}
}
