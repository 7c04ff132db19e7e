// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []uint32
	}{
		{"array", []uint32{1, 5, 10, 100, 500}},
		{"bitmap", func() []uint32 {
			var out []uint32
			for i := 0; i < 5000; i++ {
				out = append(out, uint32(i*3))
			}
			return out
		}()},
		{"run", func() []uint32 {
			var out []uint32
			for i := 1000; i <= 2000; i++ {
				out = append(out, uint32(i))
			}
			return out
		}()},
		{"mixed", genMustValues(genMixed())},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rb := New()
			for _, v := range tt.data {
				rb.Set(v)
			}
			rb.Optimize()

			sorted := append([]uint32{}, tt.data...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
			sorted = dedupSorted(sorted)

			for rank, want := range sorted {
				got, ok := rb.Select(uint32(rank))
				assert.True(t, ok)
				assert.Equal(t, want, got)
			}

			_, ok := rb.Select(uint32(len(sorted)))
			assert.False(t, ok)
		})
	}
}

func TestSelectEmpty(t *testing.T) {
	rb := New()
	_, ok := rb.Select(0)
	assert.False(t, ok)
}

func genMustValues(gen dataGen) []uint32 {
	v, _ := gen()
	return v
}

func dedupSorted(in []uint32) []uint32 {
	out := in[:0]
	var last uint32
	for i, v := range in {
		if i == 0 || v != last {
			out = append(out, v)
			last = v
		}
	}
	return out
}
