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

package cartridge_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
	"github.com/jetsetilly/gopherds/test"
)

func rom(size int) []uint8 {
	d := make([]uint8, size)
	for i := range d {
		d[i] = uint8(i)
	}
	return d
}

var (
	arm9 = cartridge.Binary{ROMOffset: 0x200, Entry: 0x02000000, Load: 0x02000000, Size: 0x100}
	arm7 = cartridge.Binary{ROMOffset: 0x300, Entry: 0x02380010, Load: 0x02380000, Size: 0x100}
)

func TestNewCartridge(t *testing.T) {
	cart, err := cartridge.NewCartridge(rom(0x400), arm9, arm7)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cart.Size(), 0x400)
	test.ExpectEquality(t, cart.ARM7.Entry, uint32(0x02380010))

	b := cart.Binary(cart.ARM9)
	test.ExpectEquality(t, len(b), 0x100)
	test.ExpectEquality(t, b[0], uint8(0x00))
	test.ExpectEquality(t, b[1], uint8(0x01))
}

func TestInvalidCartridge(t *testing.T) {
	_, err := cartridge.NewCartridge(nil, arm9, arm7)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, cartridge.EmptyROM))

	var tests = []cartridge.Binary{
		// beyond the end of the ROM
		{ROMOffset: 0x380, Entry: 0x02000000, Load: 0x02000000, Size: 0x100},

		// misaligned entry
		{ROMOffset: 0x200, Entry: 0x02000002, Load: 0x02000000, Size: 0x100},

		// entry outside of binary
		{ROMOffset: 0x200, Entry: 0x02000100, Load: 0x02000000, Size: 0x100},

		// too large
		{ROMOffset: 0x000, Entry: 0x02000000, Load: 0x02000000, Size: 0x400000},
	}

	for _, b := range tests {
		_, err := cartridge.NewCartridge(rom(0x400), b, arm7)
		test.ExpectSuccess(t, curated.Is(err, cartridge.InvalidBinary))

		_, err = cartridge.NewCartridge(rom(0x400), arm9, b)
		test.ExpectSuccess(t, curated.Is(err, cartridge.InvalidBinary))
	}
}

func TestReadROM(t *testing.T) {
	cart, err := cartridge.NewCartridge(rom(0x400), arm9, arm7)
	test.ExpectSuccess(t, err)

	b := cart.ReadROM(0x3fe, 4)
	test.ExpectEquality(t, b[0], uint8(0xfe))
	test.ExpectEquality(t, b[1], uint8(0xff))
	test.ExpectEquality(t, b[2], uint8(0xff))
	test.ExpectEquality(t, b[3], uint8(0xff))

	b = cart.ReadROM(0xffffffff, 2)
	test.ExpectEquality(t, b[0], uint8(0xff))
	test.ExpectEquality(t, b[1], uint8(0xff))

	// the data is copied on creation
	d := rom(0x400)
	cart, err = cartridge.NewCartridge(d, arm9, arm7)
	test.ExpectSuccess(t, err)
	d[0] = 0x55
	test.ExpectEquality(t, cart.ReadROM(0, 1)[0], uint8(0))
}
