// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsEmpty(t *testing.T) {
	rb := New()
	s := rb.Statistics()
	assert.Equal(t, 0, s.Containers)
	assert.False(t, s.HasMinMax)
}

func TestStatisticsMixed(t *testing.T) {
	rb := New()

	// Container 0: sparse array values.
	for _, v := range []uint32{1, 5, 10, 100, 500} {
		rb.Set(v)
	}

	// Container 1: dense enough to become a bitmap on Optimize.
	const base1 = uint32(1) << 16
	for i := 0; i < 5000; i++ {
		rb.Set(base1 + uint32(i*3))
	}

	// Container 2: one long consecutive run.
	const base2 = uint32(2) << 16
	for i := uint32(0); i < 1000; i++ {
		rb.Set(base2 + i)
	}
	rb.Optimize()

	s := rb.Statistics()
	assert.Equal(t, 3, s.Containers)
	assert.Equal(t, 1, s.ArrayCount)
	assert.Equal(t, 1, s.BitmapCount)
	assert.Equal(t, 1, s.RunCount)
	assert.Equal(t, rb.Count(), s.Cardinality)
	assert.True(t, s.HasMinMax)
	assert.Equal(t, 8192, s.BitmapBytes)
	assert.Greater(t, s.ArrayBytes, 0)
	assert.Greater(t, s.RunBytes, 0)
}

func TestStatisticsSharedCount(t *testing.T) {
	rb := New()
	rb.Set(1)
	rb.Set(2)

	clone := rb.Clone(nil)
	s := clone.Statistics()
	assert.Equal(t, 1, s.SharedCount)
}
