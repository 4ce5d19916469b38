package trits

// Querier is the shared read surface of the rank directories.  It is
// implemented by both RankSelect (full rank+select) and Rank (lean,
// rank only)
type Querier interface {
	Target() uint8
	NumTrits() uint64
	Get(i uint64) uint8
	Rank(i uint64) uint64
	SizeInBytes() uint64
}

var _ Querier = (*RankSelect)(nil)
var _ Querier = (*Rank)(nil)
