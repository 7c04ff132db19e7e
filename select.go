// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Select returns the value with the given zero-based rank among the values
// stored in the bitmap, walking containers in key order and skipping over
// whole containers whose cardinality is smaller than the remaining rank.
func (rb *Bitmap) Select(rank uint32) (uint32, bool) {
	remaining := rank
	for i := range rb.containers {
		size := rb.containers[i].Size
		if remaining >= size {
			remaining -= size
			continue
		}

		lo, ok := rb.containers[i].selectAt(remaining)
		if !ok {
			return 0, false
		}
		return uint32(rb.index[i])<<16 | uint32(lo), true
	}
	return 0, false
}

// selectAt returns the value at the given zero-based rank within a single container.
func (c *container) selectAt(rank uint32) (uint16, bool) {
	switch c.Type {
	case typeArray:
		if rank >= uint32(len(c.Data)) {
			return 0, false
		}
		return c.Data[rank], true
	case typeRun:
		remaining := rank
		for i := 0; i+1 < len(c.Data); i += 2 {
			start, end := uint32(c.Data[i]), uint32(c.Data[i+1])
			length := end - start + 1
			if remaining < length {
				return uint16(start + remaining), true
			}
			remaining -= length
		}
		return 0, false
	case typeBitmap:
		var found uint16
		var ok bool
		remaining := rank
		c.rangeValues(func(v uint16) bool {
			if remaining == 0 {
				found, ok = v, true
				return false
			}
			remaining--
			return true
		})
		return found, ok
	}
	return 0, false
}
