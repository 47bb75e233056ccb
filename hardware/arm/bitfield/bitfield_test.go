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

package bitfield_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware/arm/bitfield"
	"github.com/jetsetilly/gopherds/test"
)

// a small selection of values with different bit patterns
var values32 = []uint32{0x00000000, 0xffffffff, 0x12345678, 0x80000001, 0xdeadbeef, 0x55555555}

func TestBitRoundTrip(t *testing.T) {
	for _, v := range values32 {
		for i := 0; i < 32; i++ {
			for _, b := range []bool{false, true} {
				w := bitfield.SetBit32(v, i, b)
				test.ExpectEquality(t, bitfield.Bit32(w, i), b)

				// all other bits unchanged
				test.ExpectEquality(t, w&^(1<<i), v&^(1<<i))
			}
		}
	}

	for _, v := range values32 {
		v16 := uint16(v)
		v8 := uint8(v)
		for i := 0; i < 16; i++ {
			w := bitfield.SetBit16(v16, i, true)
			test.ExpectSuccess(t, bitfield.Bit16(w, i))
			test.ExpectEquality(t, w&^(1<<i), v16&^(1<<i))
		}
		for i := 0; i < 8; i++ {
			w := bitfield.SetBit8(v8, i, false)
			test.ExpectFailure(t, bitfield.Bit8(w, i))
			test.ExpectEquality(t, w&^(1<<i), v8&^(1<<i))
		}
	}
}

func TestFieldRoundTrip(t *testing.T) {
	const field = 0xa5a5a5a5
	for _, v := range values32 {
		for offset := 0; offset < 32; offset++ {
			for length := 1; offset+length <= 32; length++ {
				w := bitfield.SetField32(v, offset, length, field)

				var mask uint32 = 0xffffffff
				if length < 32 {
					mask = (1 << length) - 1
				}
				test.ExpectEquality(t, bitfield.Field32(w, offset, length), field&mask)

				// bits outside the field are unchanged
				test.ExpectEquality(t, w&^(mask<<offset), v&^(mask<<offset))
			}
		}
	}

	for offset := 0; offset < 16; offset++ {
		for length := 1; offset+length <= 16; length++ {
			w := bitfield.SetField16(0x1234, offset, length, 0xffff)
			test.ExpectEquality(t, bitfield.Field16(w, offset, length), uint16((1<<length)-1))
		}
	}

	for offset := 0; offset < 8; offset++ {
		for length := 1; offset+length <= 8; length++ {
			w := bitfield.SetField8(0x00, offset, length, 0xff)
			test.ExpectEquality(t, bitfield.Field8(w, offset, length), uint8((1<<length)-1))
		}
	}
}

func TestSignExtend(t *testing.T) {
	test.ExpectEquality(t, int32(bitfield.SignExtend32(0x80, 8)), -128)
	test.ExpectEquality(t, int32(bitfield.SignExtend8(0x80, 8)), -128)
	test.ExpectEquality(t, int32(bitfield.SignExtend16(0x8000, 16)), -32768)
	test.ExpectEquality(t, int32(bitfield.SignExtend32(0x7f, 8)), 127)
	test.ExpectEquality(t, int32(bitfield.SignExtend32(0x7ff, 11)), -1)
	test.ExpectEquality(t, bitfield.SignExtend32(0x00ffffff, 24), 0xffffffff)

	// upper bits beyond n are ignored
	test.ExpectEquality(t, int32(bitfield.SignExtend32(0xffffff01, 8)), 1)

	// for every n < 32 a value with bit n-1 set is negative
	for n := 1; n < 32; n++ {
		v := uint32(1) << (n - 1)
		test.ExpectEquality(t, int64(int32(bitfield.SignExtend32(v, n))), -(int64(1) << (n - 1)))
	}
}

func TestTruncateMerge(t *testing.T) {
	test.ExpectEquality(t, bitfield.Truncate(0x12345678, 1), 0x78)
	test.ExpectEquality(t, bitfield.Truncate(0x12345678, 2), 0x5678)
	test.ExpectEquality(t, bitfield.Truncate(0x12345678, 4), 0x12345678)

	test.ExpectEquality(t, bitfield.Merge(0x12345678, 0xab, 0, 1), 0x123456ab)
	test.ExpectEquality(t, bitfield.Merge(0x12345678, 0xab, 3, 1), 0xab345678)
	test.ExpectEquality(t, bitfield.Merge(0x12345678, 0xabcd, 2, 2), 0xabcd5678)
	test.ExpectEquality(t, bitfield.Merge(0x12345678, 0xcafef00d, 0, 4), 0xcafef00d)
}

func TestIllegalRange(t *testing.T) {
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	bitfield.Field32(0, 30, 4)
}
