// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "container/heap"

// Intersection returns a new bitmap holding the bitwise AND of a and any
// number of additional bitmaps, leaving all inputs unmodified.
func Intersection(a *Bitmap, rest ...*Bitmap) *Bitmap {
	out := a.Clone(nil)
	for _, bm := range rest {
		if bm != nil {
			out.and(bm)
		}
	}
	return out
}

// Union returns a new bitmap holding the bitwise OR of a and any number of
// additional bitmaps, leaving all inputs unmodified.
func Union(a *Bitmap, rest ...*Bitmap) *Bitmap {
	out := a.Clone(nil)
	for _, bm := range rest {
		if bm != nil {
			out.or(bm)
		}
	}
	return out
}

// Difference returns a new bitmap holding a ANDNOT the remaining bitmaps,
// leaving all inputs unmodified.
func Difference(a *Bitmap, rest ...*Bitmap) *Bitmap {
	out := a.Clone(nil)
	for _, bm := range rest {
		if bm != nil {
			out.andNot(bm)
		}
	}
	return out
}

// SymmetricDifference returns a new bitmap holding the bitwise XOR of a and
// any number of additional bitmaps, leaving all inputs unmodified.
func SymmetricDifference(a *Bitmap, rest ...*Bitmap) *Bitmap {
	out := a.Clone(nil)
	for _, bm := range rest {
		if bm != nil {
			out.xor(bm)
		}
	}
	return out
}

// OrMany unions every bitmap in bitmaps into a single new result, folding
// them together left to right. Nil or empty bitmaps are skipped.
func OrMany(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, bm := range bitmaps {
		if bm != nil {
			out.or(bm)
		}
	}
	return out
}

// XorMany folds every bitmap in bitmaps together with XOR, left to right.
// Nil or empty bitmaps are skipped.
func XorMany(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, bm := range bitmaps {
		if bm != nil {
			out.xor(bm)
		}
	}
	return out
}

// heapItem pairs a bitmap with its current container count, which is a
// cheap proxy for the work required to merge it.
type heapItem struct {
	bm   *Bitmap
	size int
}

type bitmapHeap []heapItem

func (h bitmapHeap) Len() int            { return len(h) }
func (h bitmapHeap) Less(i, j int) bool  { return h[i].size < h[j].size }
func (h bitmapHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bitmapHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *bitmapHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// OrManyHeap unions every bitmap in bitmaps like OrMany, but repeatedly
// merges the two smallest operands first using a min-heap ordered by
// container count. This keeps each merge cheap for workloads with a
// skewed size distribution, where folding the largest bitmap in early
// would otherwise dominate every subsequent step.
func OrManyHeap(bitmaps ...*Bitmap) *Bitmap {
	h := make(bitmapHeap, 0, len(bitmaps))
	for _, bm := range bitmaps {
		if bm != nil && len(bm.containers) > 0 {
			h = append(h, heapItem{bm: bm, size: len(bm.containers)})
		}
	}
	if len(h) == 0 {
		return New()
	}

	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		merged := a.bm.Clone(nil)
		merged.or(b.bm)
		heap.Push(&h, heapItem{bm: merged, size: len(merged.containers)})
	}
	return heap.Pop(&h).(heapItem).bm
}
