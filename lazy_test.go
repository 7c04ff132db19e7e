// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildBitmap(values []uint32) *Bitmap {
	rb := New()
	for _, v := range values {
		rb.Set(v)
	}
	rb.Optimize()
	return rb
}

func TestLazyOrMatchesOr(t *testing.T) {
	a := buildBitmap(genMustValues(genMixed()))
	b := buildBitmap(denseValues(0, 2000, 7))

	want := a.Clone(nil)
	want.Or(b)

	got := a.LazyOr(b)
	got.RepairAfterLazy()

	assert.True(t, want.Equals(got))
}

func TestLazyXorMatchesXor(t *testing.T) {
	a := buildBitmap(genMustValues(genMixed()))
	b := buildBitmap(sequentialValues(131072, 131172))

	want := a.Clone(nil)
	want.Xor(b)

	got := a.LazyXor(b)
	got.RepairAfterLazy()

	assert.True(t, want.Equals(got))
}

func TestLazyIOrMatchesOr(t *testing.T) {
	a := buildBitmap(denseValues(0, 3000, 3))
	b := buildBitmap(denseValues(1, 3000, 5))

	want := a.Clone(nil)
	want.Or(b)

	got := a.Clone(nil)
	got.LazyIOr(b)
	got.RepairAfterLazy()

	assert.True(t, want.Equals(got))
}

func TestRepairAfterLazyRestoresRepresentation(t *testing.T) {
	a := buildBitmap(sequentialValues(1000, 1100))
	b := buildBitmap(sequentialValues(1050, 1150))
	merged := a.LazyOr(b)
	merged.RepairAfterLazy()

	for i := range merged.containers {
		assert.NotEqual(t, sizeUnknown, merged.containers[i].Size)
		assert.Equal(t, typeRun, merged.containers[i].Type)
	}
}
