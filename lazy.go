// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "github.com/kelindar/bitmap"

// sizeUnknown marks a container whose Size has not been recomputed after a
// lazy operation. RepairAfterLazy clears every occurrence before the bitmap
// is used again.
const sizeUnknown = ^uint32(0)

// LazyOr returns a new bitmap holding the union of rb and other without
// maintaining Bitset cardinality or normalizing Run containers in the
// result. Call RepairAfterLazy on the result before relying on Count,
// Select, or any other size-dependent operation.
func (rb *Bitmap) LazyOr(other *Bitmap) *Bitmap {
	out := rb.Clone(nil)
	out.LazyIOr(other)
	return out
}

// LazyIOr merges other into rb in place, lazily: every container touched
// by the merge is left as a Bitset with an unknown cardinality rather than
// being measured and possibly demoted back to Array or Run. RepairAfterLazy
// must be called before the bitmap is queried again.
func (rb *Bitmap) LazyIOr(other *Bitmap) {
	if other == nil || len(other.containers) == 0 {
		return
	}
	if len(rb.containers) == 0 {
		rb.or(other)
		return
	}

	i, j := 0, 0
	var merged []container
	var index []uint16

	for i < len(rb.containers) && j < len(other.containers) {
		hi1, hi2 := rb.index[i], other.index[j]
		switch {
		case hi1 < hi2:
			merged = append(merged, rb.containers[i])
			index = append(index, hi1)
			i++
		case hi1 > hi2:
			other.containers[j].share()
			merged = append(merged, other.containers[j])
			index = append(index, hi2)
			j++
		default:
			c1, c2 := &rb.containers[i], &other.containers[j]
			c1.fork()
			lazyOrInto(c1, c2)
			merged = append(merged, *c1)
			index = append(index, hi1)
			i++
			j++
		}
	}
	for ; i < len(rb.containers); i++ {
		merged = append(merged, rb.containers[i])
		index = append(index, rb.index[i])
	}
	for ; j < len(other.containers); j++ {
		other.containers[j].share()
		merged = append(merged, other.containers[j])
		index = append(index, other.index[j])
	}

	rb.containers = merged
	rb.index = index
}

// LazyXor returns a new bitmap holding the symmetric difference of rb and
// other, with the same lazy cardinality/normalization contract as LazyOr.
func (rb *Bitmap) LazyXor(other *Bitmap) *Bitmap {
	out := rb.Clone(nil)
	if other == nil || len(other.containers) == 0 {
		return out
	}

	i, j := 0, 0
	var merged []container
	var index []uint16

	for i < len(out.containers) && j < len(other.containers) {
		hi1, hi2 := out.index[i], other.index[j]
		switch {
		case hi1 < hi2:
			merged = append(merged, out.containers[i])
			index = append(index, hi1)
			i++
		case hi1 > hi2:
			other.containers[j].share()
			merged = append(merged, other.containers[j])
			index = append(index, hi2)
			j++
		default:
			c1, c2 := &out.containers[i], &other.containers[j]
			c1.fork()
			lazyXorInto(c1, c2)
			if !c1.isEmpty() || c1.Size == sizeUnknown {
				merged = append(merged, *c1)
				index = append(index, hi1)
			}
			i++
			j++
		}
	}
	for ; i < len(out.containers); i++ {
		merged = append(merged, out.containers[i])
		index = append(index, out.index[i])
	}
	for ; j < len(other.containers); j++ {
		other.containers[j].share()
		merged = append(merged, other.containers[j])
		index = append(index, other.index[j])
	}

	out.containers = merged
	out.index = index
	return out
}

// lazyOrInto merges c2 into c1, always materializing the result as a
// Bitset and leaving Size as sizeUnknown, deferring the popcount and any
// possible demotion to RepairAfterLazy. c2 is read-only throughout.
func lazyOrInto(c1, c2 *container) {
	if c1.Type != typeBitmap {
		c1.toBitmap()
	}
	bm := c1.bmp()
	bm.Or(snapshotBmp(c2))
	c1.Size = sizeUnknown
}

// lazyXorInto mirrors lazyOrInto for symmetric difference.
func lazyXorInto(c1, c2 *container) {
	if c1.Type != typeBitmap {
		c1.toBitmap()
	}
	bm := c1.bmp()
	bm.Xor(snapshotBmp(c2))
	c1.Size = sizeUnknown
}

// snapshotBmp returns a Bitset view of c's values without mutating c. For
// a container that is already a Bitset this is its live backing array; for
// Array and Run containers it is a freshly allocated copy, since lazy
// merges must never release or alias another container's Data.
func snapshotBmp(c *container) bitmap.Bitmap {
	if c.Type == typeBitmap {
		return c.bmp()
	}

	bm := make(bitmap.Bitmap, 1024)
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			bm.Set(uint32(v))
		}
	case typeRun:
		n := len(c.Data) / 2
		for i := 0; i < n; i++ {
			start, end := uint32(c.Data[i*2]), uint32(c.Data[i*2+1])
			for v := start; v <= end; v++ {
				bm.Set(v)
				if v == end {
					break
				}
			}
		}
	}
	return bm
}

// toBitmap converts a container of any type to Bitset representation.
// Size is left as it was for Array input and recomputed by runToBmp for
// Run input.
func (c *container) toBitmap() {
	switch c.Type {
	case typeArray:
		c.arrToBmp()
	case typeRun:
		c.runToBmp()
	}
}

// RepairAfterLazy restores the cardinality and representation invariants
// that LazyIOr/LazyOr/LazyXor are allowed to skip. It must be called before
// Count, Select, Range, serialization, or any further set-algebra operation
// relies on accurate container sizes.
func (rb *Bitmap) RepairAfterLazy() {
	var empty []int
	for i := range rb.containers {
		c := &rb.containers[i]
		if c.Size == sizeUnknown {
			c.Size = uint32(c.bmp().Count())
		}
		c.optimize()
		if c.isEmpty() {
			empty = append(empty, i)
		}
	}
	for i := len(empty) - 1; i >= 0; i-- {
		rb.ctrDel(empty[i])
	}
}
