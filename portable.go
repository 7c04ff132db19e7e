// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"encoding/binary"
	"fmt"
)

const (
	serialCookieNoRun = uint32(12346)
	serialCookie      = uint32(12347)
	noOffsetThreshold = 4
)

// hasRunContainer reports whether any container currently uses run
// representation, which decides which of the two cookie variants applies.
func (rb *Bitmap) hasRunContainer() bool {
	for i := range rb.containers {
		if rb.containers[i].Type == typeRun {
			return true
		}
	}
	return false
}

// PortableSizeInBytes returns the exact number of bytes PortableSerialize
// will produce for the bitmap's current contents.
func (rb *Bitmap) PortableSizeInBytes() int {
	n := len(rb.containers)
	size := 4 // cookie (+ packed count, or followed separately)
	if rb.hasRunContainer() {
		size += (n + 7) / 8 // run-membership bitmap
	} else {
		size += 4 // explicit uint32 container count
	}

	size += n * 4 // per-container (key, cardinality-1) descriptor
	if n > noOffsetThreshold {
		size += n * 4 // per-container payload offsets
	}

	for i := range rb.containers {
		c := &rb.containers[i]
		switch c.Type {
		case typeBitmap:
			size += 8192
		case typeArray:
			size += 2 * int(c.Size)
		case typeRun:
			size += 2 + 4*(len(c.Data)/2)
		}
	}
	return size
}

// PortableSerialize writes the bitmap to buf in the portable, cross-
// implementation wire format, using the two-cookie header and run-bitset
// layout described for this package's serialization design. buf must be at
// least PortableSizeInBytes() long; the number of bytes written is returned.
func (rb *Bitmap) PortableSerialize(buf []byte) int {
	n := len(rb.containers)
	hasRun := rb.hasRunContainer()
	off := 0

	if hasRun {
		cookie := serialCookie | uint32(n-1)<<16
		binary.LittleEndian.PutUint32(buf[off:], cookie)
		off += 4

		runBytes := (n + 7) / 8
		for i := off; i < off+runBytes; i++ {
			buf[i] = 0
		}
		for i := range rb.containers {
			if rb.containers[i].Type == typeRun {
				buf[off+i/8] |= 1 << uint(i%8)
			}
		}
		off += runBytes
	} else {
		binary.LittleEndian.PutUint32(buf[off:], serialCookieNoRun)
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], uint32(n))
		off += 4
	}

	for i := range rb.containers {
		binary.LittleEndian.PutUint16(buf[off:], rb.index[i])
		off += 2
		binary.LittleEndian.PutUint16(buf[off:], uint16(rb.containers[i].Size-1))
		off += 2
	}

	if n > noOffsetThreshold {
		payloadStart := off + n*4
		cursor := uint32(payloadStart)
		for i := range rb.containers {
			binary.LittleEndian.PutUint32(buf[off:], cursor)
			off += 4
			cursor += uint32(rb.containers[i].portableSize())
		}
	}

	for i := range rb.containers {
		off += rb.containers[i].portableWrite(buf[off:])
	}
	return off
}

// portableSize is the payload length (excluding header/descriptor bytes) of
// a single container's portable representation.
func (c *container) portableSize() int {
	switch c.Type {
	case typeBitmap:
		return 8192
	case typeArray:
		return 2 * int(c.Size)
	case typeRun:
		return 2 + 4*(len(c.Data)/2)
	}
	return 0
}

// portableWrite writes a single container's payload and returns the number
// of bytes written.
func (c *container) portableWrite(buf []byte) int {
	switch c.Type {
	case typeBitmap:
		for i, v := range c.Data[:4096] {
			binary.LittleEndian.PutUint16(buf[i*2:], v)
		}
		return 8192
	case typeArray:
		for i, v := range c.Data {
			binary.LittleEndian.PutUint16(buf[i*2:], v)
		}
		return 2 * len(c.Data)
	case typeRun:
		n := len(c.Data) / 2
		binary.LittleEndian.PutUint16(buf, uint16(n))
		off := 2
		for i := 0; i < n; i++ {
			start, end := c.Data[i*2], c.Data[i*2+1]
			binary.LittleEndian.PutUint16(buf[off:], start)
			binary.LittleEndian.PutUint16(buf[off+2:], end-start)
			off += 4
		}
		return off
	}
	return 0
}

// PortableDeserialize replaces the bitmap's contents by decoding buf, which
// must have been produced by PortableSerialize (by this package or another
// implementation of the same wire format). Malformed input never panics;
// it returns a wrapped sentinel error instead.
func (rb *Bitmap) PortableDeserialize(buf []byte) error {
	rb.Clear()
	if len(buf) < 4 {
		return fmt.Errorf("roaring: decoding header: %w", ErrTruncated)
	}

	cookie := binary.LittleEndian.Uint32(buf)
	off := 4

	var n int
	var runBits []byte
	switch {
	case cookie == serialCookieNoRun:
		if len(buf) < off+4 {
			return fmt.Errorf("roaring: decoding count: %w", ErrTruncated)
		}
		n = int(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
	case cookie&0xFFFF == serialCookie:
		n = int(cookie>>16) + 1
		runBytes := (n + 7) / 8
		if len(buf) < off+runBytes {
			return fmt.Errorf("roaring: decoding run bitmap: %w", ErrTruncated)
		}
		runBits = buf[off : off+runBytes]
		off += runBytes
	default:
		return fmt.Errorf("roaring: decoding header: %w", ErrBadCookie)
	}

	if n < 0 || len(buf) < off+n*4 {
		return fmt.Errorf("roaring: decoding descriptors: %w", ErrTruncated)
	}

	type descriptor struct {
		key  uint16
		card uint32
	}
	descs := make([]descriptor, n)
	for i := 0; i < n; i++ {
		key := binary.LittleEndian.Uint16(buf[off:])
		card := uint32(binary.LittleEndian.Uint16(buf[off+2:])) + 1
		descs[i] = descriptor{key, card}
		off += 4

		if i > 0 && descs[i].key <= descs[i-1].key {
			return fmt.Errorf("roaring: decoding descriptors: %w", ErrBadKeys)
		}
	}

	if n > noOffsetThreshold {
		if len(buf) < off+n*4 {
			return fmt.Errorf("roaring: decoding offsets: %w", ErrTruncated)
		}
		off += n * 4 // offsets are redundant with the sequential payload layout
	}

	for i := 0; i < n; i++ {
		isRun := runBits != nil && runBits[i/8]&(1<<uint(i%8)) != 0
		c := container{Size: descs[i].card}

		switch {
		case isRun:
			if len(buf) < off+2 {
				return fmt.Errorf("roaring: decoding run count: %w", ErrTruncated)
			}
			numRuns := int(binary.LittleEndian.Uint16(buf[off:]))
			off += 2
			if numRuns < 0 || len(buf) < off+numRuns*4 {
				return fmt.Errorf("roaring: decoding run count: %w", ErrBadRunCount)
			}

			c.Type = typeRun
			c.Data = make([]uint16, numRuns*2)
			for r := 0; r < numRuns; r++ {
				value := binary.LittleEndian.Uint16(buf[off:])
				length := binary.LittleEndian.Uint16(buf[off+2:])
				c.Data[r*2] = value
				c.Data[r*2+1] = value + length
				off += 4
			}
		case descs[i].card <= arrMaxSize:
			c.Type = typeArray
			need := int(descs[i].card) * 2
			if len(buf) < off+need {
				return fmt.Errorf("roaring: decoding array payload: %w", ErrTruncated)
			}
			c.Data = make([]uint16, descs[i].card)
			for v := range c.Data {
				c.Data[v] = binary.LittleEndian.Uint16(buf[off+v*2:])
			}
			off += need
		default:
			c.Type = typeBitmap
			if len(buf) < off+8192 {
				return fmt.Errorf("roaring: decoding bitmap payload: %w", ErrTruncated)
			}
			c.Data = make([]uint16, 4096)
			for v := range c.Data {
				c.Data[v] = binary.LittleEndian.Uint16(buf[off+v*2:])
			}
			off += 8192
		}

		rb.ctrAdd(descs[i].key, len(rb.containers), &c)
	}
	return nil
}
