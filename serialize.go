package trits

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// Version numbers for the on disk representations.  Any time
// incompatible changes are made, they are bumped.  The three kinds of
// file carry distinct numbers so that loading a file as the wrong kind
// is detected up front.
const (
	vectorVersion     = uint64(0x0101)
	rankSelectVersion = uint64(0x0201)
	rankVersion       = uint64(0x0301)
)

// VectorHeader describes a serialized trit vector.
type VectorHeader struct {
	// a version number which changes as the storage representation
	// changes
	Version uint64
	// the number of trits stored
	NumTrits uint64
	// the number of packed bytes that follow the header
	NumTrytes uint64
}

// DirectoryHeader describes a serialized rank/select directory.
type DirectoryHeader struct {
	Version uint64
	// the target trit the directory counts
	Target uint64
	// the total number of occurrences of the target trit
	NumTargets uint64
}

// rankHeader describes a serialized rank-only directory, which carries
// no total count.
type rankHeader struct {
	Version uint64
	Target  uint64
}

var isLittleEndian bool

func init() {
	buf := []byte{0x1, 0x0}
	val := (*uint16)(unsafe.Pointer(unsafe.SliceData(buf)))
	isLittleEndian = *val == uint16(1)
}

func unsafeUint64SliceToBytes(v []uint64) []byte {
	data := (*byte)(unsafe.Pointer(unsafe.SliceData(v)))
	return unsafe.Slice(data, len(v)*8)
}

func unsafeUint32SliceToBytes(v []uint32) []byte {
	data := (*byte)(unsafe.Pointer(unsafe.SliceData(v)))
	return unsafe.Slice(data, len(v)*4)
}

func unsafeUint16SliceToBytes(v []uint16) []byte {
	data := (*byte)(unsafe.Pointer(unsafe.SliceData(v)))
	return unsafe.Slice(data, len(v)*2)
}

func writeUint64Slice(w io.Writer, v []uint64) (n int64, err error) {
	if err = binary.Write(w, binary.LittleEndian, uint64(len(v))); err != nil {
		return
	}
	n += 8
	if isLittleEndian {
		// ~12x faster
		var np int
		np, err = w.Write(unsafeUint64SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Write(w, binary.LittleEndian, v)
		if err == nil {
			n += int64(len(v)) * 8
		}
	}
	return
}

func readUint64Slice(r io.Reader) (v []uint64, n int64, err error) {
	var length uint64
	if err = binary.Read(r, binary.LittleEndian, &length); err != nil {
		return
	}
	n += 8
	v = make([]uint64, length)
	if isLittleEndian {
		var np int
		np, err = io.ReadFull(r, unsafeUint64SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Read(r, binary.LittleEndian, v)
		if err == nil {
			n += int64(length) * 8
		}
	}
	return
}

func writeUint32Slice(w io.Writer, v []uint32) (n int64, err error) {
	if err = binary.Write(w, binary.LittleEndian, uint64(len(v))); err != nil {
		return
	}
	n += 8
	if isLittleEndian {
		var np int
		np, err = w.Write(unsafeUint32SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Write(w, binary.LittleEndian, v)
		if err == nil {
			n += int64(len(v)) * 4
		}
	}
	return
}

func readUint32Slice(r io.Reader) (v []uint32, n int64, err error) {
	var length uint64
	if err = binary.Read(r, binary.LittleEndian, &length); err != nil {
		return
	}
	n += 8
	v = make([]uint32, length)
	if isLittleEndian {
		var np int
		np, err = io.ReadFull(r, unsafeUint32SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Read(r, binary.LittleEndian, v)
		if err == nil {
			n += int64(length) * 4
		}
	}
	return
}

func writeUint16Slice(w io.Writer, v []uint16) (n int64, err error) {
	if err = binary.Write(w, binary.LittleEndian, uint64(len(v))); err != nil {
		return
	}
	n += 8
	if isLittleEndian {
		var np int
		np, err = w.Write(unsafeUint16SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Write(w, binary.LittleEndian, v)
		if err == nil {
			n += int64(len(v)) * 2
		}
	}
	return
}

func readUint16Slice(r io.Reader) (v []uint16, n int64, err error) {
	var length uint64
	if err = binary.Read(r, binary.LittleEndian, &length); err != nil {
		return
	}
	n += 8
	v = make([]uint16, length)
	if isLittleEndian {
		var np int
		np, err = io.ReadFull(r, unsafeUint16SliceToBytes(v))
		n += int64(np)
	} else {
		err = binary.Read(r, binary.LittleEndian, v)
		if err == nil {
			n += int64(length) * 2
		}
	}
	return
}

// WriteTo serializes the vector to a stream.  The header is written
// little-endian on every host, followed by the raw packed bytes.
func (v *Vector) WriteTo(stream io.Writer) (i int64, err error) {
	h := VectorHeader{
		Version:   vectorVersion,
		NumTrits:  v.n,
		NumTrytes: uint64(len(v.trytes)),
	}
	if err = binary.Write(stream, binary.LittleEndian, h); err != nil {
		return
	}
	i += int64(unsafe.Sizeof(h))
	np, err := stream.Write(v.trytes)
	i += int64(np)
	return
}

// ReadVectorFrom deserializes a vector from a stream, validating the
// structure as it goes: version, length consistency, tryte range, and
// zero padding in the final byte are all checked.
func ReadVectorFrom(stream io.Reader) (*Vector, error) {
	var h VectorHeader
	if err := binary.Read(stream, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Version != vectorVersion {
		return nil, fmt.Errorf("incompatible trit vector file: version is %d, expected %d",
			h.Version, vectorVersion)
	}
	if want := (h.NumTrits + TritsPerByte - 1) / TritsPerByte; h.NumTrytes != want {
		return nil, fmt.Errorf("malformed trit vector file: %d trits require %d trytes, file declares %d",
			h.NumTrits, want, h.NumTrytes)
	}
	trytes := make([]byte, h.NumTrytes)
	if _, err := io.ReadFull(stream, trytes); err != nil {
		return nil, err
	}
	for i, b := range trytes {
		if b >= maxTryte {
			return nil, fmt.Errorf("malformed trit vector file: tryte %d holds invalid value %d", i, b)
		}
	}
	if r := h.NumTrits % TritsPerByte; r != 0 {
		if last := trytes[len(trytes)-1]; last >= pow3[r] {
			return nil, fmt.Errorf("malformed trit vector file: final tryte %d has non-zero padding", last)
		}
	}
	return &Vector{trytes: trytes, n: h.NumTrits}, nil
}

// ReadVectorHeaderFromPath reads just the header of a serialized trit
// vector
func ReadVectorHeaderFromPath(path string) (h VectorHeader, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	err = binary.Read(f, binary.LittleEndian, &h)
	return
}

// WriteTo serializes the directory to a stream.  The bound vector is
// not written; it has its own serialized form.
func (rs *RankSelect) WriteTo(stream io.Writer) (i int64, err error) {
	h := DirectoryHeader{
		Version:    rankSelectVersion,
		Target:     uint64(rs.target),
		NumTargets: rs.m,
	}
	if err = binary.Write(stream, binary.LittleEndian, h); err != nil {
		return
	}
	i += int64(unsafe.Sizeof(h))

	x, err := writeUint64Slice(stream, rs.lbs)
	i += x
	if err != nil {
		return
	}
	x, err = writeUint16Slice(stream, rs.sbs)
	i += x
	return
}

// ReadRankSelectFrom deserializes a directory from a stream and binds
// it to vec, which must hold the trit sequence the directory was built
// from.  Block counts are validated against the vector's geometry.
func ReadRankSelectFrom(stream io.Reader, vec *Vector) (*RankSelect, error) {
	if vec == nil {
		return nil, fmt.Errorf("cannot load a directory without a vector to bind")
	}
	var h DirectoryHeader
	if err := binary.Read(stream, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Version != rankSelectVersion {
		return nil, fmt.Errorf("incompatible directory file: version is %d, expected %d",
			h.Version, rankSelectVersion)
	}
	if h.Target > 2 {
		return nil, fmt.Errorf("malformed directory file: target trit is %d", h.Target)
	}
	lbs, _, err := readUint64Slice(stream)
	if err != nil {
		return nil, err
	}
	sbs, _, err := readUint16Slice(stream)
	if err != nil {
		return nil, err
	}
	if err := checkBlockCounts(len(vec.trytes), len(lbs), len(sbs)); err != nil {
		return nil, err
	}
	return &RankSelect{
		vec:    vec,
		target: uint8(h.Target),
		lbs:    lbs,
		sbs:    sbs,
		m:      h.NumTargets,
	}, nil
}

// WriteTo serializes the rank-only directory to a stream.
func (r *Rank) WriteTo(stream io.Writer) (i int64, err error) {
	h := rankHeader{
		Version: rankVersion,
		Target:  uint64(r.target),
	}
	if err = binary.Write(stream, binary.LittleEndian, h); err != nil {
		return
	}
	i += int64(unsafe.Sizeof(h))

	x, err := writeUint32Slice(stream, r.lbs)
	i += x
	if err != nil {
		return
	}
	x, err = writeUint16Slice(stream, r.sbs)
	i += x
	return
}

// ReadRankFrom deserializes a rank-only directory from a stream and
// binds it to vec.
func ReadRankFrom(stream io.Reader, vec *Vector) (*Rank, error) {
	if vec == nil {
		return nil, fmt.Errorf("cannot load a directory without a vector to bind")
	}
	var h rankHeader
	if err := binary.Read(stream, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Version != rankVersion {
		return nil, fmt.Errorf("incompatible rank directory file: version is %d, expected %d",
			h.Version, rankVersion)
	}
	if h.Target > 2 {
		return nil, fmt.Errorf("malformed rank directory file: target trit is %d", h.Target)
	}
	lbs, _, err := readUint32Slice(stream)
	if err != nil {
		return nil, err
	}
	sbs, _, err := readUint16Slice(stream)
	if err != nil {
		return nil, err
	}
	if err := checkBlockCounts(len(vec.trytes), len(lbs), len(sbs)); err != nil {
		return nil, err
	}
	return &Rank{
		vec:    vec,
		target: uint8(h.Target),
		lbs:    lbs,
		sbs:    sbs,
	}, nil
}

// checkBlockCounts verifies that the directory block counts match the
// geometry of a vector of numTrytes packed bytes.
func checkBlockCounts(numTrytes, numLBs, numSBs int) error {
	wantLBs, wantSBs := 0, 0
	if numTrytes > 0 {
		wantLBs = (numTrytes-1)/trytesPerLB + 1
		wantSBs = (numTrytes-1)/trytesPerSB + 1
	}
	if numLBs != wantLBs || numSBs != wantSBs {
		return fmt.Errorf("directory file does not match vector: %d/%d blocks stored, %d/%d expected",
			numLBs, numSBs, wantLBs, wantSBs)
	}
	return nil
}
