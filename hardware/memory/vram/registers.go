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

package vram

import "fmt"

// Target is a logical window that a bank can be mapped into.
type Target int

// List of valid Target values. The CPU can access the first six targets. The
// remaining targets are only visible to the rasteriser.
const (
	TargetNone Target = iota
	TargetLCDC
	TargetEngineABG
	TargetEngineAOBJ
	TargetEngineBBG
	TargetEngineBOBJ
	TargetARM7
	TargetTexture
	TargetTexturePalette
	TargetEngineABGExtPalette
	TargetEngineAOBJExtPalette
	TargetEngineBBGExtPalette
	TargetEngineBOBJExtPalette
)

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetLCDC:
		return "LCDC"
	case TargetEngineABG:
		return "engine A BG"
	case TargetEngineAOBJ:
		return "engine A OBJ"
	case TargetEngineBBG:
		return "engine B BG"
	case TargetEngineBOBJ:
		return "engine B OBJ"
	case TargetARM7:
		return "ARM7"
	case TargetTexture:
		return "texture"
	case TargetTexturePalette:
		return "texture palette"
	case TargetEngineABGExtPalette:
		return "engine A BG ext palette"
	case TargetEngineAOBJExtPalette:
		return "engine A OBJ ext palette"
	case TargetEngineBBGExtPalette:
		return "engine B BG ext palette"
	case TargetEngineBOBJExtPalette:
		return "engine B OBJ ext palette"
	}
	return fmt.Sprintf("unknown target (%d)", int(t))
}

// CPUVisible returns true if the target can be accessed by a CPU.
func (t Target) CPUVisible() bool {
	return t >= TargetLCDC && t <= TargetARM7
}

// the VRAMCNT register bits
const (
	controlEnable    = 0x80
	controlOffset    = 0x18
	controlOffsetPos = 3
)

// the number of bits in the MST field of each bank
var mstMask = [NumBanks]uint8{0x03, 0x03, 0x07, 0x07, 0x07, 0x07, 0x07, 0x03, 0x03}

// mapping returns the target and start offset selected by the MST and OFS
// fields of a VRAMCNT register. MST values that have no meaning for the bank
// map the bank nowhere.
func mapping(id BankID, mst uint8, ofs uint32) (Target, uint32) {
	if mst == 0 {
		return TargetLCDC, lcdcOffset[id]
	}

	switch id {
	case BankA, BankB:
		switch mst {
		case 1:
			return TargetEngineABG, 0x20000 * ofs
		case 2:
			return TargetEngineAOBJ, 0x20000 * (ofs & 0x01)
		case 3:
			return TargetTexture, 0x20000 * ofs
		}

	case BankC, BankD:
		switch mst {
		case 1:
			return TargetEngineABG, 0x20000 * ofs
		case 2:
			return TargetARM7, 0x20000 * (ofs & 0x01)
		case 3:
			return TargetTexture, 0x20000 * ofs
		case 4:
			if id == BankC {
				return TargetEngineBBG, 0
			}
			return TargetEngineBOBJ, 0
		}

	case BankE:
		switch mst {
		case 1:
			return TargetEngineABG, 0
		case 2:
			return TargetEngineAOBJ, 0
		case 3:
			return TargetTexturePalette, 0
		case 4:
			return TargetEngineABGExtPalette, 0
		}

	case BankF, BankG:
		slot := 0x4000*(ofs&0x01) + 0x10000*(ofs>>1)
		switch mst {
		case 1:
			return TargetEngineABG, slot
		case 2:
			return TargetEngineAOBJ, slot
		case 3:
			return TargetTexturePalette, slot
		case 4:
			return TargetEngineABGExtPalette, 0x4000 * (ofs & 0x01)
		case 5:
			return TargetEngineAOBJExtPalette, 0
		}

	case BankH:
		switch mst {
		case 1:
			return TargetEngineBBG, 0
		case 2:
			return TargetEngineBBGExtPalette, 0
		}

	case BankI:
		switch mst {
		case 1:
			return TargetEngineBBG, 0x8000
		case 2:
			return TargetEngineBOBJ, 0
		case 3:
			return TargetEngineBOBJExtPalette, 0
		}
	}

	return TargetNone, 0
}

// SetControl writes the VRAMCNT register of a bank.
func (v *VRAM) SetControl(id BankID, value uint8) {
	b := &v.Banks[id]
	b.Control = value
	b.Enabled = value&controlEnable != 0

	mst := value & mstMask[id]
	ofs := uint32(value&controlOffset) >> controlOffsetPos
	b.Target, b.Start = mapping(id, mst, ofs)

	if b.Enabled && b.Target == TargetNone {
		v.env.Log.Logf(v.env, "vram", "bank %s: MST value %d is not valid", id, mst)
	}
}

// Control returns the value of the VRAMCNT register of a bank.
func (v *VRAM) Control(id BankID) uint8 {
	return v.Banks[id].Control
}

// register addresses
const (
	addrVRAMCNT  = 0x04000240
	addrVRAMSTAT = 0x04000240
)

// bankRegister returns the bank whose VRAMCNT register is at the address.
// address 0x04000247 is WRAMCNT and is not a bank register.
func bankRegister(address uint32) (BankID, bool) {
	n := address - addrVRAMCNT
	switch {
	case n < 7:
		return BankID(n), true
	case n == 8 || n == 9:
		return BankID(n - 1), true
	}
	return 0, false
}

// ReadRegister reads the VRAMCNT registers of the ARM9. The address is word
// aligned. Bytes that are not VRAMCNT registers read as zero.
func (v *VRAM) ReadRegister(address uint32) (uint32, bool) {
	if address < addrVRAMCNT || address > addrVRAMCNT+8 {
		return 0, false
	}
	var value uint32
	for n := uint32(0); n < 4; n++ {
		if id, ok := bankRegister(address + n); ok {
			value |= uint32(v.Banks[id].Control) << (n * 8)
		}
	}
	return value, true
}

// WriteRegister writes the VRAMCNT registers of the ARM9. The address is word
// aligned and the mask selects which bytes of the value are written.
func (v *VRAM) WriteRegister(address uint32, value uint32, mask uint32) bool {
	if address < addrVRAMCNT || address > addrVRAMCNT+8 {
		return false
	}
	for n := uint32(0); n < 4; n++ {
		if mask&(0xff<<(n*8)) == 0 {
			continue
		}
		if id, ok := bankRegister(address + n); ok {
			v.SetControl(id, uint8(value>>(n*8)))
		}
	}
	return true
}

// StatusRegister is the ARM7 view of the VRAM registers. It implements only
// the VRAMSTAT register.
type StatusRegister struct {
	v *VRAM
}

// Status returns the ARM7 view of the VRAM registers.
func (v *VRAM) Status() StatusRegister {
	return StatusRegister{v: v}
}

// ReadRegister reads the VRAMSTAT register.
func (s StatusRegister) ReadRegister(address uint32) (uint32, bool) {
	if address != addrVRAMSTAT {
		return 0, false
	}
	return uint32(s.v.MappedToARM7()), true
}

// WriteRegister ignores writes to the read only VRAMSTAT register.
func (s StatusRegister) WriteRegister(address uint32, value uint32, mask uint32) bool {
	return address == addrVRAMSTAT
}
