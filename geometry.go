package trits

import "fmt"

// Block geometry of the rank/select directories.
//
// A large block covers 65500 trits rather than the textbook 65536-ish
// span: the count of one target within a large block is what a small
// block entry stores, so the span must stay at or below 65535 for the
// 16 bit entries, and it must divide into whole trytes and whole small
// blocks.  65500 = 13100 trytes = 1310 small blocks satisfies all
// three.
const (
	tritsPerLB = 65500
	tritsPerSB = 50

	trytesPerLB = tritsPerLB / TritsPerByte // 13100
	trytesPerSB = tritsPerSB / TritsPerByte // 10

	sbPerLB = tritsPerLB / tritsPerSB // 1310
)

// DirectoryOverhead reports the approximate auxiliary space in bytes a
// full rank/select directory adds on top of a vector of n trits.
func DirectoryOverhead(n uint64) uint64 {
	lbs := n/tritsPerLB + 1
	sbs := n/tritsPerSB + 1
	return lbs*8 + sbs*2 + 8
}

// ExplainIndent will print an indented summary of the directory
// geometry for a vector of n trits to stdout
func ExplainIndent(n uint64, indent string) {
	fmt.Printf("%s%7d trits per large block (%d trytes, 64 bit counters)\n",
		indent, tritsPerLB, trytesPerLB)
	fmt.Printf("%s%7d trits per small block (%d trytes, 16 bit counters)\n",
		indent, tritsPerSB, trytesPerSB)
	fmt.Printf("%s   %s packed storage for %d trits\n",
		indent, humanBytes((n+TritsPerByte-1)/TritsPerByte), n)
	fmt.Printf("%s   %s directory overhead per target\n",
		indent, humanBytes(DirectoryOverhead(n)))
}

// Explain will print a summary of the directory geometry to stdout
func Explain(n uint64) {
	ExplainIndent(n, "")
}

func humanBytes(bytes uint64) string {
	v := float64(bytes)
	suffix := "bytes"
	if v > 1024 {
		v /= 1024.
		suffix = "KB"
		if v > 1024. {
			suffix = "MB"
			v /= 1024.0
			if v > 1024. {
				suffix = "GB"
				v /= 1024.
			}
		}
	}
	if v < 10 {
		return fmt.Sprintf("%0.2f %s", v, suffix)
	} else if v < 100 {
		return fmt.Sprintf("%0.1f %s", v, suffix)
	} else {
		return fmt.Sprintf("%0.0f %s", v, suffix)
	}
}
