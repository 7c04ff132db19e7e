// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"math/bits"
	"sync/atomic"
)

const (
	arrMaxSize    = 4096 // DEFAULT_MAX_SIZE: Array/Bitset promotion-demotion cutoff
	runMinSize    = 128
	runMaxSize    = 2048
	optimizeEvery = 2048
)

type ctype byte

const (
	typeArray ctype = iota
	typeBitmap
	typeRun
)

// shared is the copy-on-write header installed on a container's backing
// slice once the slice is aliased by more than one container, for example
// after Clone or after a merge operation copies a container from one
// bitmap into another without duplicating its Data. refs counts how many
// containers currently treat Data as borrowed. It is maintained with
// sync/atomic because two bitmaps that alias the same container can each
// be owned by a different goroutine and fork independently; the count must
// stay correct without the two forks coordinating with each other.
type shared struct {
	refs int32
}

type container struct {
	Type  ctype   // Type of the container
	Owner *shared // non-nil while Data may be aliased by another container
	Call  uint16  // Call count, used to pace periodic re-optimization
	Size  uint32  // Cardinality
	Data  []uint16
}

// fork ensures the container owns its data before modification, cloning it
// away from the shared copy if the container is currently marked borrowed.
func (c *container) fork() {
	if c.Owner == nil {
		return
	}

	clone := make([]uint16, len(c.Data), cap(c.Data))
	copy(clone, c.Data)
	c.Data = clone
	atomic.AddInt32(&c.Owner.refs, -1)
	c.Owner = nil
}

// share marks the container as copy-on-write ahead of a value-copy that is
// about to alias its Data, installing a fresh reference count the first
// time the container is shared and bumping it on every subsequent alias.
func (c *container) share() {
	if c.Owner == nil {
		c.Owner = &shared{refs: 2} // this holder plus the copy about to be made
		return
	}
	atomic.AddInt32(&c.Owner.refs, 1)
}

// refCount reports how many containers currently alias this Data, or 0 if
// the container is uniquely owned. Exposed for tests and Statistics.
func (c *container) refCount() int32 {
	if c.Owner == nil {
		return 0
	}

	refs := atomic.LoadInt32(&c.Owner.refs)
	debugAssert(refs > 0, "refCount: shared owner with non-positive refcount")
	return refs
}

// set sets a value in the container and returns true if the value was added (didn't exist before)
func (c *container) set(value uint16) (ok bool) {
	c.fork()
	switch c.Type {
	case typeArray:
		if ok = c.arrSet(value); ok {
			c.tryOptimize()
		}
	case typeBitmap:
		if ok = c.bmpSet(value); ok {
			c.tryOptimize()
		}
	case typeRun:
		if ok = c.runSet(value); ok {
			c.tryOptimize()
		}
	}
	return
}

// remove removes a value from the container and returns true if the value was removed (existed before)
func (c *container) remove(value uint16) (ok bool) {
	c.fork()
	switch c.Type {
	case typeArray:
		if ok = c.arrDel(value); ok {
			c.tryOptimize()
		}
	case typeBitmap:
		if ok = c.bmpDel(value); ok {
			c.tryOptimize()
		}
	case typeRun:
		if ok = c.runDel(value); ok {
			c.tryOptimize()
		}
	}
	return
}

// contains checks if a value exists in the container
func (c *container) contains(value uint16) bool {
	switch c.Type {
	case typeArray:
		return c.arrHas(value)
	case typeBitmap:
		return c.bmpHas(value)
	case typeRun:
		return c.runHas(value)
	}
	return false
}

// isEmpty returns true if the container has no elements
func (c *container) isEmpty() bool {
	return c.Size == 0
}

// cardinality returns the number of elements in the container
func (c *container) cardinality() int {
	return int(c.Size)
}

// sizeInBytes returns the number of bytes this container would occupy in
// its current representation, per the exact formulas used for promotion
// and demotion decisions.
func (c *container) sizeInBytes() int {
	switch c.Type {
	case typeArray:
		return 2 * int(c.Size)
	case typeBitmap:
		return 8192
	case typeRun:
		return 2 + 4*(len(c.Data)/2)
	}
	return 0
}

// optimize converts the container to the most efficient representation
func (c *container) optimize() {
	c.fork()
	switch c.Type {
	case typeArray:
		c.arrOptimize()
	case typeBitmap:
		c.bmpOptimize()
	case typeRun:
		c.runOptimize()
	}
}

// tryOptimize optimizes the container periodically
func (c *container) tryOptimize() {
	if c.Call++; c.Call%optimizeEvery == 0 {
		c.optimize()
	}
}

// min returns the smallest value in the container
func (c *container) min() (uint16, bool) {
	if c.Size == 0 {
		return 0, false
	}

	switch c.Type {
	case typeArray:
		return c.arrMin()
	case typeBitmap:
		return c.bmpMin()
	case typeRun:
		return c.runMin()
	}
	return 0, false
}

// max returns the largest value in the container
func (c *container) max() (uint16, bool) {
	if c.Size == 0 {
		return 0, false
	}

	switch c.Type {
	case typeArray:
		return c.arrMax()
	case typeBitmap:
		return c.bmpMax()
	case typeRun:
		return c.runMax()
	}
	return 0, false
}

// minZero returns the smallest unset value in the container (0-65535 range)
func (c *container) minZero() (uint16, bool) {
	if c.Size == 65536 {
		return 0, false // Container is full, no zero bits
	}

	switch c.Type {
	case typeArray:
		return c.arrMinZero()
	case typeBitmap:
		return c.bmpMinZero()
	case typeRun:
		return c.runMinZero()
	}
	return 0, false
}

// maxZero returns the largest unset value in the container (0-65535 range)
func (c *container) maxZero() (uint16, bool) {
	if c.Size == 65536 {
		return 0, false // Container is full, no zero bits
	}

	switch c.Type {
	case typeArray:
		return c.arrMaxZero()
	case typeBitmap:
		return c.bmpMaxZero()
	case typeRun:
		return c.runMaxZero()
	}
	return 0, false
}

// rangeValues calls fn for every value stored in the container, in sorted
// order, stopping early if fn returns false.
func (c *container) rangeValues(fn func(uint16) bool) bool {
	switch c.Type {
	case typeArray:
		for _, v := range c.Data {
			if !fn(v) {
				return false
			}
		}
	case typeBitmap:
		bmp := c.bmp()
		for word := range bmp {
			blk := bmp[word]
			for blk != 0 {
				bit := bits.TrailingZeros64(blk)
				if !fn(uint16(word*64 + bit)) {
					return false
				}
				blk &= blk - 1
			}
		}
	case typeRun:
		for i := 0; i+1 < len(c.Data); i += 2 {
			start, end := c.Data[i], c.Data[i+1]
			for v := uint32(start); v <= uint32(end); v++ {
				if !fn(uint16(v)) {
					return false
				}
				if v == uint32(end) {
					break // avoid overflow when end == 0xFFFF
				}
			}
		}
	}
	return true
}
