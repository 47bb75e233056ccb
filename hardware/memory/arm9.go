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

// regions of the ARM9 address space. the region is the top eight bits of the
// address
const (
	region9MainRAM = 0x02
	region9WRAM    = 0x03
	region9IO      = 0x04
	region9Palette = 0x05
	region9VRAM    = 0x06
	region9OAM     = 0x07
	region9BIOS    = 0xff

	originARM9BIOS = 0xffff0000
)

// the LCDC window is smaller than the region it occupies
const lcdcWindow = 0xa4000

// ARM9Bus is the view of memory seen by the ARM9. It implements the
// bus.CPUBus and bus.DebugBus interfaces.
type ARM9Bus struct {
	mem *Memory
}

// Label returns the name of the bus.
func (b *ARM9Bus) Label() string {
	return "ARM9"
}

// the TCM covering the address, if any
func (b *ARM9Bus) tcm(address uint32) (*RAM, bool) {
	cfg := b.mem.tcm
	if cfg.ITCMEnabled && address < cfg.ITCMSize {
		return b.mem.ITCM, true
	}
	if cfg.DTCMEnabled && address >= cfg.DTCMBase && uint64(address) < uint64(cfg.DTCMBase)+uint64(cfg.DTCMSize) {
		return b.mem.DTCM, true
	}
	return nil, false
}

// the load mode of the TCM. in load mode a read of the TCM goes to the
// underlying memory but a write goes to the TCM
func (b *ARM9Bus) tcmLoadMode(tcm *RAM) bool {
	if tcm == b.mem.ITCM {
		return b.mem.tcm.ITCMLoadMode
	}
	return b.mem.tcm.DTCMLoadMode
}

// the VRAM target and offset for an address in the VRAM region
func vram9(address uint32) (vram.Target, uint32, bool) {
	switch (address >> 21) & 0x07 {
	case 0:
		return vram.TargetEngineABG, address & 0x7ffff, true
	case 1:
		return vram.TargetEngineBBG, address & 0x1ffff, true
	case 2:
		return vram.TargetEngineAOBJ, address & 0x3ffff, true
	case 3:
		return vram.TargetEngineBOBJ, address & 0x1ffff, true
	}
	offset := address & 0xfffff
	if offset >= lcdcWindow {
		return vram.TargetNone, 0, false
	}
	return vram.TargetLCDC, offset, true
}

// Read implements the bus.CPUBus interface.
func (b *ARM9Bus) Read(address uint32, width bus.Width) uint32 {
	address = width.Align(address)

	if tcm, ok := b.tcm(address); ok && !b.tcmLoadMode(tcm) {
		return tcm.read(address, width)
	}

	mem := b.mem
	switch address >> 24 {
	case region9MainRAM:
		return mem.MainRAM.read(address, width)
	case region9WRAM:
		if offset, mask, ok := mem.sharedWRAM(true); ok {
			return mem.SharedWRAM.read(offset+address&mask, width)
		}
	case region9IO:
		if v, ok := mem.ARM9IO.Read(address, width); ok {
			return v
		}
	case region9Palette:
		return mem.Palette.read(address, width)
	case region9VRAM:
		if target, offset, ok := vram9(address); ok {
			if v, ok := mem.VRAM.Read(target, offset, width); ok {
				return v
			}
		}
	case region9OAM:
		return mem.OAM.read(address, width)
	case region9BIOS:
		if address >= originARM9BIOS {
			return mem.ARM9BIOS.read(address, width)
		}
	}

	mem.logIllegal(b.Label(), false, address)
	return mem.openBus(width)
}

// Write implements the bus.CPUBus interface.
func (b *ARM9Bus) Write(address uint32, width bus.Width, value uint32) {
	address = width.Align(address)
	value = width.Mask(value)

	if tcm, ok := b.tcm(address); ok {
		tcm.write(address, width, value)
		return
	}

	mem := b.mem
	switch address >> 24 {
	case region9MainRAM:
		mem.MainRAM.write(address, width, value)
		return
	case region9WRAM:
		if offset, mask, ok := mem.sharedWRAM(true); ok {
			mem.SharedWRAM.write(offset+address&mask, width, value)
			return
		}
	case region9IO:
		if mem.ARM9IO.Write(address, width, value) {
			return
		}
	case region9Palette:
		// byte writes to video memory are ignored
		if width != bus.Byte {
			mem.Palette.write(address, width, value)
		}
		return
	case region9VRAM:
		if width == bus.Byte {
			return
		}
		if target, offset, ok := vram9(address); ok {
			if mem.VRAM.Write(target, offset, width, value) {
				return
			}
		}
	case region9OAM:
		if width != bus.Byte {
			mem.OAM.write(address, width, value)
		}
		return
	case region9BIOS:
		// the BIOS is read only
	}

	mem.logIllegal(b.Label(), true, address)
}

// the memory area and offset of an address for the purposes of the debug
// bus. the VRAM is handled separately
func (b *ARM9Bus) area(address uint32) (*RAM, uint32, bool) {
	if tcm, ok := b.tcm(address); ok {
		return tcm, address, true
	}

	mem := b.mem
	switch address >> 24 {
	case region9MainRAM:
		return mem.MainRAM, address, true
	case region9WRAM:
		if offset, mask, ok := mem.sharedWRAM(true); ok {
			return mem.SharedWRAM, offset + address&mask, true
		}
	case region9Palette:
		return mem.Palette, address, true
	case region9OAM:
		return mem.OAM, address, true
	case region9BIOS:
		if address >= originARM9BIOS {
			return mem.ARM9BIOS, address, true
		}
	}
	return nil, 0, false
}

// Peek implements the bus.DebugBus interface.
func (b *ARM9Bus) Peek(address uint32) (uint8, error) {
	if a, offset, ok := b.area(address); ok {
		return a.Peek(offset)
	}

	switch address >> 24 {
	case region9IO:
		return peekIO(b.mem.ARM9IO, address)
	case region9VRAM:
		if target, offset, ok := vram9(address); ok {
			if v, ok := b.mem.VRAM.Read(target, offset, bus.Byte); ok {
				return uint8(v), nil
			}
		}
	}

	return 0, curated.Errorf(bus.AddressError, address)
}

// Poke implements the bus.DebugBus interface. Unlike a CPU write, a poke of
// video memory changes a single byte.
func (b *ARM9Bus) Poke(address uint32, value uint8) error {
	if a, offset, ok := b.area(address); ok {
		return a.Poke(offset, value)
	}

	if address>>24 == region9VRAM {
		if target, offset, ok := vram9(address); ok {
			if b.mem.VRAM.Write(target, offset, bus.Byte, uint32(value)) {
				return nil
			}
		}
	}

	return curated.Errorf(bus.AddressError, address)
}
