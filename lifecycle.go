// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// NewWithCapacity creates an empty bitmap with its container index
// pre-sized for roughly n distinct values, avoiding repeated growth of the
// index/containers slices while filling a bitmap of known approximate size.
func NewWithCapacity(n int) *Bitmap {
	hint := n/(1<<16) + 1
	return &Bitmap{
		containers: make([]container, 0, hint),
		index:      make([]uint16, 0, hint),
	}
}

// FromRange creates a bitmap containing every value in the half-open range
// [lo, hi).
func FromRange(lo, hi uint32) *Bitmap {
	rb := New()
	rb.Flip(lo, hi)
	return rb
}

// FromValues creates a bitmap containing exactly the given values.
func FromValues(values ...uint32) *Bitmap {
	rb := NewWithCapacity(len(values))
	for _, v := range values {
		rb.Set(v)
	}
	return rb
}

// Cardinality is an alias of Count, matching the name spec.md uses for the
// number of set bits.
func (rb *Bitmap) Cardinality() int {
	return rb.Count()
}

// RunOptimize scans every container and converts it to whichever of
// Array/Bitset/Run serializes smallest. It is the same operation as
// Optimize; the name mirrors the C original's run_optimize entry point.
func (rb *Bitmap) RunOptimize() {
	rb.Optimize()
}

// RemoveRunCompression converts every Run container back to Array or
// Bitset, undoing RunOptimize. Useful before a workload that mutates the
// bitmap heavily, since Run containers are the most expensive to mutate
// bit-by-bit.
func (rb *Bitmap) RemoveRunCompression() {
	for i := range rb.containers {
		c := &rb.containers[i]
		if c.Type != typeRun {
			continue
		}

		c.fork()
		if int(c.Size) <= arrMaxSize {
			c.runToArray()
		} else {
			c.runToBmp()
		}
	}
}

// SetRange sets every bit in the half-open range [lo, hi), creating
// containers as needed.
func (rb *Bitmap) SetRange(lo, hi uint32) {
	if lo >= hi {
		return
	}

	for lo < hi {
		hiKey := uint16(lo >> 16)
		spanEnd := uint32(hiKey)<<16 | 0xFFFF
		end := hi - 1
		if end > spanEnd {
			end = spanEnd
		}

		loBits, hiBits := lo&0xFFFF, (end&0xFFFF)+1

		idx, exists := find16(rb.index, hiKey)
		if !exists {
			rb.ctrAdd(hiKey, idx, &container{
				Type: typeArray,
				Size: 0,
				Data: make([]uint16, 0, 64),
			})
		}

		c := &rb.containers[idx]
		c.fork()
		c.setRange(loBits, hiBits)
		c.optimize()

		lo = end + 1
		if end == 0xFFFFFFFF {
			break
		}
	}
}

// setRange sets every bit in [lo, hi) within a single container's 16-bit
// space.
func (c *container) setRange(lo, hi uint32) {
	switch c.Type {
	case typeBitmap:
		c.bmpSetRange(lo, hi)
	default:
		for v := lo; v < hi; v++ {
			c.set(uint16(v))
		}
	}
}
