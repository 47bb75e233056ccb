// This file is part of GopherDS.
//
// GopherDS is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDS is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDS.  If not, see <https://www.gnu.org/licenses/>.

// Package bitfield contains the bit manipulation functions used throughout the
// emulated hardware. Each function is implemented once for every concrete
// width it is needed for, rather than generically, so that shift amounts and
// masks are always exact for the width being worked with.
//
// Bit positions and field offsets outside the width of the value cause a
// panic. Those are programming errors and not conditions that can arise from
// the emulated program.
package bitfield

import "fmt"

// Bit32 returns true if bit i of v is set.
func Bit32(v uint32, i int) bool {
	check(i, 1, 32)
	return v&(1<<i) != 0
}

// SetBit32 returns v with bit i set to b. All other bits are unchanged.
func SetBit32(v uint32, i int, b bool) uint32 {
	check(i, 1, 32)
	if b {
		return v | (1 << i)
	}
	return v &^ (1 << i)
}

// Field32 returns the length bits of v starting at offset.
func Field32(v uint32, offset int, length int) uint32 {
	check(offset, length, 32)
	return (v >> offset) & mask32(length)
}

// SetField32 returns v with the length bits starting at offset replaced by
// field. The field value is masked to length bits.
func SetField32(v uint32, offset int, length int, field uint32) uint32 {
	check(offset, length, 32)
	m := mask32(length) << offset
	return (v &^ m) | ((field << offset) & m)
}

// SignExtend32 treats the lower n bits of v as a two's complement number and
// extends it to 32 bits.
func SignExtend32(v uint32, n int) uint32 {
	check(0, n, 32)
	if n == 32 {
		return v
	}
	shift := 32 - n
	return uint32(int32(v<<shift) >> shift)
}

func mask32(length int) uint32 {
	if length >= 32 {
		return 0xffffffff
	}
	return (1 << length) - 1
}

// Bit16 returns true if bit i of v is set.
func Bit16(v uint16, i int) bool {
	check(i, 1, 16)
	return v&(1<<i) != 0
}

// SetBit16 returns v with bit i set to b. All other bits are unchanged.
func SetBit16(v uint16, i int, b bool) uint16 {
	check(i, 1, 16)
	if b {
		return v | (1 << i)
	}
	return v &^ (1 << i)
}

// Field16 returns the length bits of v starting at offset.
func Field16(v uint16, offset int, length int) uint16 {
	check(offset, length, 16)
	return (v >> offset) & mask16(length)
}

// SetField16 returns v with the length bits starting at offset replaced by
// field. The field value is masked to length bits.
func SetField16(v uint16, offset int, length int, field uint16) uint16 {
	check(offset, length, 16)
	m := mask16(length) << offset
	return (v &^ m) | ((field << offset) & m)
}

// SignExtend16 treats the lower n bits of v as a two's complement number and
// extends it to 32 bits.
func SignExtend16(v uint16, n int) uint32 {
	check(0, n, 16)
	return SignExtend32(uint32(v), n)
}

func mask16(length int) uint16 {
	if length >= 16 {
		return 0xffff
	}
	return (1 << length) - 1
}

// Bit8 returns true if bit i of v is set.
func Bit8(v uint8, i int) bool {
	check(i, 1, 8)
	return v&(1<<i) != 0
}

// SetBit8 returns v with bit i set to b. All other bits are unchanged.
func SetBit8(v uint8, i int, b bool) uint8 {
	check(i, 1, 8)
	if b {
		return v | (1 << i)
	}
	return v &^ (1 << i)
}

// Field8 returns the length bits of v starting at offset.
func Field8(v uint8, offset int, length int) uint8 {
	check(offset, length, 8)
	return (v >> offset) & mask8(length)
}

// SetField8 returns v with the length bits starting at offset replaced by
// field. The field value is masked to length bits.
func SetField8(v uint8, offset int, length int, field uint8) uint8 {
	check(offset, length, 8)
	m := mask8(length) << offset
	return (v &^ m) | ((field << offset) & m)
}

// SignExtend8 treats the lower n bits of v as a two's complement number and
// extends it to 32 bits.
func SignExtend8(v uint8, n int) uint32 {
	check(0, n, 8)
	return SignExtend32(uint32(v), n)
}

func mask8(length int) uint8 {
	if length >= 8 {
		return 0xff
	}
	return (1 << length) - 1
}

// Truncate returns the lower width bytes of v. Width must be 1, 2 or 4.
func Truncate(v uint32, width int) uint32 {
	switch width {
	case 1:
		return v & 0xff
	case 2:
		return v & 0xffff
	case 4:
		return v
	}
	panic(fmt.Sprintf("bitfield: illegal width (%d)", width))
}

// Merge returns old with the lower width bytes of v written into it at the
// byte offset. This is how sub-word writes are applied to word sized
// registers. The offset plus width must not exceed four bytes.
func Merge(old uint32, v uint32, offset int, width int) uint32 {
	if offset < 0 || offset+width > 4 {
		panic(fmt.Sprintf("bitfield: illegal merge (offset %d, width %d)", offset, width))
	}
	return SetField32(old, offset*8, width*8, Truncate(v, width))
}

// check that a range of bits fits inside a value of the given width.
func check(offset int, length int, width int) {
	if offset < 0 || length < 1 || offset+length > width {
		panic(fmt.Sprintf("bitfield: illegal range (offset %d, length %d) for %d bit value", offset, length, width))
	}
}
