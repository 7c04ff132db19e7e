// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Statistics summarizes the internal representation of a bitmap, useful
// for diagnosing which container types a workload is producing and how
// much memory they occupy.
type Statistics struct {
	Containers     int // total number of containers
	ArrayCount     int
	BitmapCount    int
	RunCount       int
	Cardinality    int // total number of set bits
	ArrayBytes     int
	BitmapBytes    int
	RunBytes       int
	SharedCount    int // containers currently marked copy-on-write
	MinValue       uint32
	MaxValue       uint32
	HasMinMax      bool
}

// Statistics computes a snapshot of the bitmap's internal representation.
func (rb *Bitmap) Statistics() Statistics {
	var s Statistics
	s.Containers = len(rb.containers)

	for i := range rb.containers {
		c := &rb.containers[i]
		s.Cardinality += c.cardinality()
		if c.Owner != nil {
			s.SharedCount++
		}

		switch c.Type {
		case typeArray:
			s.ArrayCount++
			s.ArrayBytes += c.sizeInBytes()
		case typeBitmap:
			s.BitmapCount++
			s.BitmapBytes += c.sizeInBytes()
		case typeRun:
			s.RunCount++
			s.RunBytes += c.sizeInBytes()
		}
	}

	if min, ok := rb.Min(); ok {
		s.MinValue = min
		s.HasMinMax = true
	}
	if max, ok := rb.Max(); ok {
		s.MaxValue = max
	}
	return s
}
