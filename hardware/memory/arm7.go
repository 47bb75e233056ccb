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

package memory

import (
	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
)

// regions of the ARM7 address space
const (
	region7BIOS    = 0x00
	region7MainRAM = 0x02
	region7WRAM    = 0x03
	region7IO      = 0x04
	region7VRAM    = 0x06

	// the ARM7 WRAM occupies the upper half of the WRAM region
	originARM7WRAM = 0x03800000

	// the size of the ARM7 VRAM window. banks C and D at offsets zero and one
	arm7VRAMWindow = 0x3ffff
)

// ARM7Bus is the view of memory seen by the ARM7. It implements the
// bus.CPUBus and bus.DebugBus interfaces.
type ARM7Bus struct {
	mem *Memory
}

// Label returns the name of the bus.
func (b *ARM7Bus) Label() string {
	return "ARM7"
}

func (b *ARM7Bus) area(address uint32) (*RAM, uint32, bool) {
	mem := b.mem
	switch address >> 24 {
	case region7BIOS:
		if address < sizeARM7BIOS {
			return mem.ARM7BIOS, address, true
		}
	case region7MainRAM:
		return mem.MainRAM, address, true
	case region7WRAM:
		if address >= originARM7WRAM {
			return mem.ARM7WRAM, address, true
		}
		if offset, mask, ok := mem.sharedWRAM(false); ok {
			return mem.SharedWRAM, offset + address&mask, true
		}

		// the ARM7 WRAM is mirrored in the shared WRAM region when the ARM9
		// has all of the shared WRAM
		return mem.ARM7WRAM, address, true
	}
	return nil, 0, false
}

// Read implements the bus.CPUBus interface.
func (b *ARM7Bus) Read(address uint32, width bus.Width) uint32 {
	address = width.Align(address)

	if a, offset, ok := b.area(address); ok {
		return a.read(offset, width)
	}

	mem := b.mem
	switch address >> 24 {
	case region7IO:
		if v, ok := mem.ARM7IO.Read(address, width); ok {
			return v
		}
	case region7VRAM:
		if v, ok := mem.VRAM.Read(vram.TargetARM7, address&arm7VRAMWindow, width); ok {
			return v
		}
	}

	mem.logIllegal(b.Label(), false, address)
	return mem.openBus(width)
}

// Write implements the bus.CPUBus interface. VRAM mapped to the ARM7 accepts
// byte writes.
func (b *ARM7Bus) Write(address uint32, width bus.Width, value uint32) {
	address = width.Align(address)
	value = width.Mask(value)

	mem := b.mem

	if a, offset, ok := b.area(address); ok {
		if a == mem.ARM7BIOS {
			mem.logIllegal(b.Label(), true, address)
			return
		}
		a.write(offset, width, value)
		return
	}

	switch address >> 24 {
	case region7IO:
		if mem.ARM7IO.Write(address, width, value) {
			return
		}
	case region7VRAM:
		if mem.VRAM.Write(vram.TargetARM7, address&arm7VRAMWindow, width, value) {
			return
		}
	}

	mem.logIllegal(b.Label(), true, address)
}

// Peek implements the bus.DebugBus interface.
func (b *ARM7Bus) Peek(address uint32) (uint8, error) {
	if a, offset, ok := b.area(address); ok {
		return a.Peek(offset)
	}

	switch address >> 24 {
	case region7IO:
		return peekIO(b.mem.ARM7IO, address)
	case region7VRAM:
		if v, ok := b.mem.VRAM.Read(vram.TargetARM7, address&arm7VRAMWindow, bus.Byte); ok {
			return uint8(v), nil
		}
	}

	return 0, curated.Errorf(bus.AddressError, address)
}

// Poke implements the bus.DebugBus interface. The BIOS can be poked.
func (b *ARM7Bus) Poke(address uint32, value uint8) error {
	if a, offset, ok := b.area(address); ok {
		return a.Poke(offset, value)
	}

	if address>>24 == region7VRAM {
		if b.mem.VRAM.Write(vram.TargetARM7, address&arm7VRAMWindow, bus.Byte, uint32(value)) {
			return nil
		}
	}

	return curated.Errorf(bus.AddressError, address)
}
