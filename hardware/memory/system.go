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

// Halter is implemented by the ARM7 and is called when HALTCNT is written to.
type Halter interface {
	Halt()
}

// register addresses
const (
	addrKEYINPUT = 0x04000130
	addrEXTKEYIN = 0x04000134
	addrEXMEMCNT = 0x04000204
	addrWRAMCNT  = 0x04000244
	addrWRAMSTAT = 0x04000240
	addrPOSTFLG  = 0x04000300
)

// every key is released
const (
	keysReleased    = 0x03ff
	extKeysReleased = 0x007f
)

// bits of EXMEMCNT owned by the ARM7
const exmemARM7 = 0x007f

// the system registers of the ARM9. the WRAMCNT register is the last byte of
// the VRAMCNT word and only that byte is claimed
type arm9System struct {
	mem *Memory
}

func (sys arm9System) ReadRegister(address uint32) (uint32, bool) {
	mem := sys.mem
	switch address {
	case addrKEYINPUT:
		return keysReleased | uint32(mem.KEYCNT)<<16, true
	case addrEXMEMCNT:
		return uint32(mem.EXMEMCNT), true
	case addrWRAMCNT:
		return uint32(mem.WRAMCNT) << 24, true
	case addrPOSTFLG:
		return uint32(mem.POSTFLG9), true
	}
	return 0, false
}

func (sys arm9System) WriteRegister(address uint32, value uint32, mask uint32) bool {
	mem := sys.mem
	switch address {
	case addrKEYINPUT:
		if mask&0xffff0000 != 0 {
			mem.KEYCNT = (mem.KEYCNT &^ uint16(mask>>16)) | uint16((value&mask)>>16)
		}
	case addrEXMEMCNT:
		mem.EXMEMCNT = (mem.EXMEMCNT &^ uint16(mask)) | uint16(value&mask)
	case addrWRAMCNT:
		if mask&0xff000000 == 0 {
			return false
		}
		mem.WRAMCNT = uint8(value>>24) & 0x03
	case addrPOSTFLG:
		// bit 0 can only be set. bit 1 is writable
		if mask&0xff != 0 {
			mem.POSTFLG9 = (mem.POSTFLG9 & 0x01) | uint8(value&0x03)
		}
	default:
		return false
	}
	return true
}

// the system registers of the ARM7
type arm7System struct {
	mem *Memory
}

func (sys arm7System) ReadRegister(address uint32) (uint32, bool) {
	mem := sys.mem
	switch address {
	case addrKEYINPUT:
		return keysReleased | uint32(mem.KEYCNT)<<16, true
	case addrEXTKEYIN:
		return extKeysReleased << 16, true
	case addrEXMEMCNT:
		v := (mem.EXMEMCNT &^ exmemARM7) | (mem.EXMEMSTAT & exmemARM7)
		return uint32(v), true
	case addrWRAMSTAT:
		// VRAMSTAT is in the first byte of the word
		return uint32(mem.WRAMCNT) << 8, true
	case addrPOSTFLG:
		return uint32(mem.POSTFLG7), true
	}
	return 0, false
}

func (sys arm7System) WriteRegister(address uint32, value uint32, mask uint32) bool {
	mem := sys.mem
	switch address {
	case addrKEYINPUT:
		if mask&0xffff0000 != 0 {
			mem.KEYCNT = (mem.KEYCNT &^ uint16(mask>>16)) | uint16((value&mask)>>16)
		}
	case addrEXTKEYIN:
		// read only
	case addrEXMEMCNT:
		m := uint16(mask) & exmemARM7
		mem.EXMEMSTAT = (mem.EXMEMSTAT &^ m) | uint16(value)&m
	case addrWRAMSTAT:
		// read only. VRAMSTAT also ignores the write
	case addrPOSTFLG:
		if mask&0x000000ff != 0 {
			mem.POSTFLG7 = (mem.POSTFLG7 & 0x01) | uint8(value&0x01)
		}

		// HALTCNT. a value of 2 in the top two bits halts the processor. the
		// other power down modes are not emulated
		if mask&0x0000ff00 != 0 {
			if (value>>14)&0x03 == 0x02 && mem.arm7Halter != nil {
				mem.arm7Halter.Halt()
			}
		}
	default:
		return false
	}
	return true
}
