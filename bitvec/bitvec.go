// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bitvec implements a byte backed bit vector with support for copying
// bit ranges between vectors at arbitrary, non byte aligned, offsets.
//
// The length of a Vector is always a multiple of 8 bits. Out of range reads
// return false and out of range writes are ignored.
//
package bitvec

import (
	"bytes"
	"strings"
)

// Vector is a packed bit vector. Bit 0 is the least significant bit of the
// first byte.
//
// The zero value is an empty vector ready to use.
//
type Vector struct {
	data []byte
}

func byteCount(bits int) int {
	if bits <= 0 {
		return 0
	}
	return (bits + 7) >> 3
}

// New returns a zeroed vector able to hold at least bits bits.
//
func New(bits int) *Vector {
	return &Vector{data: make([]byte, byteCount(bits))}
}

// FromBytes returns a vector initialized with a copy of the given bytes.
//
func FromBytes(b ...byte) *Vector {
	return &Vector{data: append([]byte(nil), b...)}
}

// Len returns the size of v in bits.
//
func (v *Vector) Len() int { return len(v.data) << 3 }

// Bytes returns a copy of the underlying bytes.
//
func (v *Vector) Bytes() []byte { return append([]byte(nil), v.data...) }

// Get returns the value of the given bit.
//
func (v *Vector) Get(bit int) bool {
	i := bit >> 3
	if bit < 0 || i >= len(v.data) {
		return false
	}
	return v.data[i]>>uint(bit&7)&1 != 0
}

// Set sets the value of the given bit.
//
func (v *Vector) Set(bit int, value bool) {
	i := bit >> 3
	if bit < 0 || i >= len(v.data) {
		return
	}
	m := byte(1) << uint(bit&7)
	if value {
		v.data[i] |= m
	} else {
		v.data[i] &^= m
	}
}

// Clear sets all bits to false.
//
func (v *Vector) Clear() {
	clear(v.data)
}

// Resize resizes v to hold at least bits bits. Existing bits are preserved up
// to the smallest of the old and new size, new bits are zero.
//
func (v *Vector) Resize(bits int) {
	n := byteCount(bits)
	if n == len(v.data) {
		return
	}
	data := make([]byte, n)
	copy(data, v.data)
	v.data = data
}

// Assign makes v a copy of src. The underlying storage of v is reused unless it
// is too small or more than twice the size of src.
//
func (v *Vector) Assign(src *Vector) {
	n := len(src.data)
	if c := cap(v.data); c < n || c > n<<1 {
		v.data = make([]byte, n)
	} else {
		v.data = v.data[:n]
	}
	copy(v.data, src.data)
}

// Clone returns a copy of v.
//
func (v *Vector) Clone() *Vector {
	return FromBytes(v.data...)
}

// Equal returns true if v and o have the same length and contents.
//
func (v *Vector) Equal(o *Vector) bool {
	return bytes.Equal(v.data, o.data)
}

// GetBits copies count bits of v, starting at bit start, into dst starting at
// bit offset.
//
// Nothing happens if the source range is out of bounds. If dst is too small to
// hold offset+count bits, the bits of dst from offset onwards are cleared
// instead and no copy takes place.
//
func (v *Vector) GetBits(dst *Vector, offset, start, count int) {
	if count < 0 || start < 0 || offset < 0 || start+count > v.Len() {
		return
	}
	if offset+count > dst.Len() {
		dst.clearFrom(offset)
		return
	}
	// Source bytes are consumed one at a time: a partial first byte, whole
	// bytes, then a partial last one. Each chunk lands on at most two
	// destination bytes.
	for count > 0 {
		sb := start & 7
		n := 8 - sb
		if n > count {
			n = count
		}
		b := v.data[start>>3] >> uint(sb) & byte(1<<uint(n)-1)
		dst.writeBits(offset, b, n)
		start += n
		offset += n
		count -= n
	}
}

// SetBits copies count bits of src, starting at bit srcStart, into v starting
// at bit dstOffset. It is the mirror of GetBits:
//
//	v.SetBits(src, srcStart, dstOffset, count)
//
// is
//
//	src.GetBits(v, dstOffset, srcStart, count)
//
// and follows the same out of range rules.
//
func (v *Vector) SetBits(src *Vector, srcStart, dstOffset, count int) {
	src.GetBits(v, dstOffset, srcStart, count)
}

// writeBits writes the n low bits of b at bit offset.
//
func (v *Vector) writeBits(offset int, b byte, n int) {
	i, sh := offset>>3, uint(offset&7)
	w := uint16(b) << sh
	m := uint16(1<<uint(n)-1) << sh
	v.data[i] = v.data[i]&^byte(m) | byte(w)
	if m>>8 != 0 {
		v.data[i+1] = v.data[i+1]&^byte(m>>8) | byte(w>>8)
	}
}

func (v *Vector) clearFrom(offset int) {
	if offset >= v.Len() {
		return
	}
	i := offset >> 3
	v.data[i] &= byte(1)<<uint(offset&7) - 1
	clear(v.data[i+1:])
}

// Uint64 returns count bits (at most 64) starting at start as an integer. Bit
// start is the least significant bit of the result.
//
func (v *Vector) Uint64(start, count int) uint64 {
	var r uint64
	if count > 64 {
		count = 64
	}
	for i := 0; i < count; i++ {
		if v.Get(start + i) {
			r |= 1 << uint(i)
		}
	}
	return r
}

// SetUint64 stores the count low bits of x (at most 64) starting at bit start.
//
func (v *Vector) SetUint64(start, count int, x uint64) {
	if count > 64 {
		count = 64
	}
	for i := 0; i < count; i++ {
		v.Set(start+i, x>>uint(i)&1 != 0)
	}
}

// String returns the bits of v as a string of 0s and 1s, bit 0 first.
//
func (v *Vector) String() string {
	var b strings.Builder
	b.Grow(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.Get(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
