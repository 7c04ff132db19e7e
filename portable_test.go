// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []uint32
	}{
		{"empty", nil},
		{"array", []uint32{1, 5, 10, 100, 500}},
		{"bitmap", denseValues(0, 5000, 3)},
		{"run", sequentialValues(1000, 2000)},
		{"mixed", genMustValues(genMixed())},
		{"many-containers-no-offsets", []uint32{0, 1 << 16, 2 << 16, 3 << 16}},
		{"many-containers-with-offsets", []uint32{0, 1 << 16, 2 << 16, 3 << 16, 4 << 16, 5 << 16}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rb := New()
			for _, v := range tt.data {
				rb.Set(v)
			}
			rb.Optimize()

			size := rb.PortableSizeInBytes()
			buf := make([]byte, size)
			n := rb.PortableSerialize(buf)
			assert.Equal(t, size, n)

			out := New()
			require.NoError(t, out.PortableDeserialize(buf))
			assert.True(t, rb.Equals(out))

			// Byte-exact: re-serializing the decoded bitmap reproduces buf.
			buf2 := make([]byte, out.PortableSizeInBytes())
			out.PortableSerialize(buf2)
			assert.Equal(t, buf, buf2)
		})
	}
}

func TestPortableRoundTripWithRunContainer(t *testing.T) {
	rb := New()
	for i := uint32(0); i < 500; i++ {
		rb.Set(i)
	}
	rb.Optimize()
	require.Equal(t, typeRun, rb.containers[0].Type)

	buf := make([]byte, rb.PortableSizeInBytes())
	rb.PortableSerialize(buf)

	out := New()
	require.NoError(t, out.PortableDeserialize(buf))
	assert.True(t, rb.Equals(out))
	assert.Equal(t, typeRun, out.containers[0].Type)
}

// TestPortableRoundTripArrayNearBitsetCutoff exercises the 2049-4096
// cardinality range: DEFAULT_MAX_SIZE is 4096, so containers in this range
// must stay Array (both in memory and when re-detected on decode purely
// from the descriptor's cardinality field), not get misread as Bitset.
func TestPortableRoundTripArrayNearBitsetCutoff(t *testing.T) {
	for _, card := range []int{2049, 3000, 4096} {
		t.Run(strconv.Itoa(card), func(t *testing.T) {
			rb := New()
			for _, v := range denseValues(0, card, 14) {
				rb.Set(v)
			}
			rb.Optimize()
			require.Equal(t, typeArray, rb.containers[0].Type)
			require.Equal(t, card, rb.Count())

			buf := make([]byte, rb.PortableSizeInBytes())
			rb.PortableSerialize(buf)

			out := New()
			require.NoError(t, out.PortableDeserialize(buf))
			assert.Equal(t, typeArray, out.containers[0].Type)
			assert.True(t, rb.Equals(out))
		})
	}
}

func TestPortableDeserializeTruncated(t *testing.T) {
	rb := New()
	rb.Set(1)
	rb.Set(2)
	buf := make([]byte, rb.PortableSizeInBytes())
	rb.PortableSerialize(buf)

	out := New()
	err := out.PortableDeserialize(buf[:len(buf)-1])
	assert.Error(t, err)
}

func TestPortableDeserializeBadCookie(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	out := New()
	assert.ErrorIs(t, out.PortableDeserialize(buf), ErrBadCookie)
}

func denseValues(start, count, stride int) []uint32 {
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		out[i] = uint32(start + i*stride)
	}
	return out
}

func sequentialValues(lo, hi uint32) []uint32 {
	out := make([]uint32, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}
