package trits

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomTrits(n int, seed int64) []uint8 {
	r := rand.New(rand.NewSource(seed)) //intentionally fixed seed
	s := make([]uint8, n)
	for i := range s {
		s[i] = uint8(r.Intn(3))
	}
	return s
}

func buildVector(s []uint8) *Vector {
	b := NewBuilder(uint64(len(s)))
	for _, t := range s {
		b.Push(t)
	}
	return b.Finalize()
}

func TestRoundTripGet(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 6, 49, 50, 51, 55, 503} {
		s := randomTrits(n, 77)
		vec := buildVector(s)
		assert.Equal(t, uint64(n), vec.Len())
		for i, want := range s {
			assert.Equal(t, want, vec.Get(uint64(i)), "n=%d i=%d", n, i)
		}
	}
}

func TestBuilderRejectsInvalidTrit(t *testing.T) {
	b := NewBuilder(0)
	assert.Panics(t, func() { b.Push(3) })
}

func TestGetOutOfRange(t *testing.T) {
	vec := buildVector([]uint8{0, 1, 2})
	assert.Panics(t, func() { vec.Get(3) })

	empty := buildVector(nil)
	assert.Panics(t, func() { empty.Get(0) })
}

func TestTryteEncoding(t *testing.T) {
	// 1 + 3*1 = 4, trailing slots zero
	vec := buildVector([]uint8{1, 1, 0, 0, 0})
	assert.Equal(t, []byte{4}, vec.Bytes())

	// a partial final byte pads with zero slots
	vec = buildVector([]uint8{2, 2, 2, 2, 2, 2})
	assert.Equal(t, []byte{242, 2}, vec.Bytes())
	for _, b := range vec.Bytes() {
		assert.Less(t, int(b), maxTryte)
	}
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder(8)
	b.Push(2)
	b.Push(1)
	assert.Equal(t, uint64(2), b.Len())
	vec := b.Finalize()
	assert.Equal(t, uint64(2), vec.Len())
	assert.Equal(t, uint64(0), b.Len())

	// the builder is reusable after Finalize
	b.Push(1)
	again := b.Finalize()
	assert.Equal(t, uint64(1), again.Len())
	assert.Equal(t, uint8(1), again.Get(0))
	assert.Equal(t, uint8(2), vec.Get(0))
}

func TestEach(t *testing.T) {
	s := randomTrits(17, 99)
	vec := buildVector(s)

	var got []uint8
	vec.Each(func(i uint64, tr uint8) bool {
		assert.Equal(t, uint64(len(got)), i)
		got = append(got, tr)
		return true
	})
	assert.Equal(t, s, got)

	// early stop
	seen := 0
	vec.Each(func(i uint64, tr uint8) bool {
		seen++
		return i < 4
	})
	assert.Equal(t, 5, seen)
}

func TestVectorSerialization(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 55, 503} {
		s := randomTrits(n, 13)
		vec := buildVector(s)

		var buf bytes.Buffer
		written, err := vec.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), written)

		loaded, err := ReadVectorFrom(&buf)
		assert.NoError(t, err)
		assert.Equal(t, vec.Len(), loaded.Len())
		for i := uint64(0); i < loaded.Len(); i++ {
			assert.Equal(t, vec.Get(i), loaded.Get(i))
		}
	}
}

func TestVectorHeaderFromPath(t *testing.T) {
	vec := buildVector(randomTrits(55, 13))
	path := filepath.Join(t.TempDir(), "v.trits")
	f, err := os.Create(path)
	assert.NoError(t, err)
	_, err = vec.WriteTo(f)
	assert.NoError(t, err)
	assert.NoError(t, f.Close())

	h, err := ReadVectorHeaderFromPath(path)
	assert.NoError(t, err)
	assert.Equal(t, vectorVersion, h.Version)
	assert.Equal(t, uint64(55), h.NumTrits)
	assert.Equal(t, uint64(11), h.NumTrytes)
}

func TestVectorLoadRejectsMalformed(t *testing.T) {
	vec := buildVector([]uint8{0, 1, 2, 1, 0, 1})
	var buf bytes.Buffer
	_, err := vec.WriteTo(&buf)
	assert.NoError(t, err)
	good := buf.Bytes()

	// header layout: version, trit count, tryte count, then trytes
	corrupt := func(mutate func(b []byte)) error {
		b := append([]byte(nil), good...)
		mutate(b)
		_, err := ReadVectorFrom(bytes.NewReader(b))
		return err
	}

	assert.Error(t, corrupt(func(b []byte) { b[0] = 0xFF }), "bad version")
	assert.Error(t, corrupt(func(b []byte) { b[8] = 200 }), "length mismatch")
	assert.Error(t, corrupt(func(b []byte) { b[24] = 250 }), "tryte out of range")
	assert.Error(t, corrupt(func(b []byte) { b[25] = 9 }), "non-zero padding")

	_, err = ReadVectorFrom(bytes.NewReader(good[:len(good)-1]))
	assert.Error(t, err, "truncated stream")
}
