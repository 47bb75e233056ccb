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

package arm

import (
	"fmt"

	"github.com/jetsetilly/gopherds/hardware/arm/bitfield"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// transferAddress describes the addressing mode of a load/store instruction.
type transferAddress struct {
	rn     int
	pre    bool
	up     bool
	wb     bool
	offset string
}

func (t transferAddress) String() string {
	sign := ""
	if !t.up {
		sign = "-"
	}
	if t.pre {
		wb := ""
		if t.wb {
			wb = "!"
		}
		return fmt.Sprintf("[%s, %s%s]%s", reg(t.rn), sign, t.offset, wb)
	}
	return fmt.Sprintf("[%s], %s%s", reg(t.rn), sign, t.offset)
}

// effectiveAddress returns the address to access and the value of the base
// register after indexing.
func effectiveAddress(base uint32, offset uint32, pre bool, up bool) (uint32, uint32) {
	indexed := base - offset
	if up {
		indexed = base + offset
	}
	if pre {
		return indexed, indexed
	}
	return base, indexed
}

func executeSingleTransfer(arm *ARM, opcode uint32) Exception {
	st := arm.state

	pre := opcode&0x01000000 != 0
	up := opcode&0x00800000 != 0
	byteWidth := opcode&0x00400000 != 0
	wb := opcode&0x00200000 != 0
	load := opcode&0x00100000 != 0
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)

	var offset uint32
	if opcode&0x02000000 != 0 {
		offset, _ = arm.shiftImmediate((opcode>>5)&0x03, st.Registers[opcode&0x0f], (opcode>>7)&0x1f)
	} else {
		offset = opcode & 0x0fff
	}

	if arm.disasm != nil {
		mnemonic := "STR"
		if load {
			mnemonic = "LDR"
		}
		mnemonic += arm.cond()
		if byteWidth {
			mnemonic += "B"
		}
		if !pre && wb {
			mnemonic += "T"
		}
		t := transferAddress{rn: rn, pre: pre, up: up, wb: wb, offset: fmt.Sprintf("#%d", offset)}
		if opcode&0x02000000 != 0 {
			t.offset = shifterOperandString(opcode &^ 0x02000000).String()
		}
		arm.disasmf(mnemonic, "%s, %s", reg(rd), t)
	}

	addr, indexed := effectiveAddress(st.Registers[rn], offset, pre, up)

	// post-indexed addressing always writes back. the W bit in that case
	// selects the user mode access variant, which behaves identically here
	writeback := (!pre || wb) && rn != rPC

	if load {
		var v uint32
		var ok bool
		if byteWidth {
			v, ok = arm.read(addr, bus.Byte)
		} else {
			v, ok = arm.readRotated(addr)
		}
		if !ok {
			return ExceptionDataAbort
		}

		// the loaded value takes precedence over the write back if the base
		// and destination registers are the same
		if writeback {
			st.Registers[rn] = indexed
		}
		arm.loadRegister(rd, v)

		return ExceptionNone
	}

	width := bus.Word
	if byteWidth {
		width = bus.Byte
	}
	if !arm.write(addr, width, arm.storeValue(rd)) {
		return ExceptionDataAbort
	}
	if writeback {
		st.Registers[rn] = indexed
	}

	return ExceptionNone
}

func executeHalfwordTransfer(arm *ARM, opcode uint32) Exception {
	st := arm.state

	pre := opcode&0x01000000 != 0
	up := opcode&0x00800000 != 0
	immediate := opcode&0x00400000 != 0
	wb := opcode&0x00200000 != 0
	load := opcode&0x00100000 != 0
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)
	sh := (opcode >> 5) & 0x03

	var offset uint32
	if immediate {
		offset = (opcode>>4)&0xf0 | opcode&0x0f
	} else {
		offset = st.Registers[opcode&0x0f]
	}

	var mnemonic string
	switch {
	case sh == 0b00:
		arm.disasmf("UND", "%08x", opcode)
		return ExceptionUndefined
	case load && sh == 0b01:
		mnemonic = "LDRH"
	case load && sh == 0b10:
		mnemonic = "LDRSB"
	case load && sh == 0b11:
		mnemonic = "LDRSH"
	case sh == 0b01:
		mnemonic = "STRH"
	case sh == 0b10:
		mnemonic = "LDRD"
	case sh == 0b11:
		mnemonic = "STRD"
	}

	// the doubleword transfers are ARMv5TE instructions and require an even
	// numbered destination register
	doubleword := !load && sh != 0b01
	if doubleword && (!arm.mmap.IsV5() || rd&0x01 != 0) {
		arm.disasmf("UND", "%08x", opcode)
		return ExceptionUndefined
	}

	if arm.disasm != nil {
		t := transferAddress{rn: rn, pre: pre, up: up, wb: wb, offset: fmt.Sprintf("#%d", offset)}
		if !immediate {
			t.offset = reg(opcode & 0x0f).String()
		}
		arm.disasmf(mnemonic+arm.cond(), "%s, %s", reg(rd), t)
	}

	addr, indexed := effectiveAddress(st.Registers[rn], offset, pre, up)
	writeback := (!pre || wb) && rn != rPC

	if doubleword {
		if sh == 0b10 {
			lo, ok := arm.read(addr, bus.Word)
			if !ok {
				return ExceptionDataAbort
			}
			hi, ok := arm.read(addr+4, bus.Word)
			if !ok {
				return ExceptionDataAbort
			}
			if writeback {
				st.Registers[rn] = indexed
			}
			arm.loadRegister(rd, lo)
			arm.loadRegister(rd+1, hi)
			return ExceptionNone
		}

		if !arm.write(addr, bus.Word, arm.storeValue(rd)) {
			return ExceptionDataAbort
		}
		if !arm.write(addr+4, bus.Word, arm.storeValue(rd+1)) {
			return ExceptionDataAbort
		}
		if writeback {
			st.Registers[rn] = indexed
		}
		return ExceptionNone
	}

	if !load {
		if !arm.write(addr, bus.Halfword, arm.storeValue(rd)) {
			return ExceptionDataAbort
		}
		if writeback {
			st.Registers[rn] = indexed
		}
		return ExceptionNone
	}

	var v uint32
	var ok bool

	switch sh {
	case 0b01:
		v, ok = arm.readHalfword(addr)
	case 0b10:
		v, ok = arm.read(addr, bus.Byte)
		v = bitfield.SignExtend32(v, 8)
	case 0b11:
		// a misaligned signed halfword load on ARMv4 loads the sign
		// extended byte
		if !arm.mmap.IsV5() && addr&0x01 != 0 {
			v, ok = arm.read(addr, bus.Byte)
			v = bitfield.SignExtend32(v, 8)
		} else {
			v, ok = arm.read(addr, bus.Halfword)
			v = bitfield.SignExtend32(v, 16)
		}
	}
	if !ok {
		return ExceptionDataAbort
	}

	if writeback {
		st.Registers[rn] = indexed
	}
	arm.loadRegister(rd, v)

	return ExceptionNone
}

func executeSwap(arm *ARM, opcode uint32) Exception {
	st := arm.state

	byteWidth := opcode&0x00400000 != 0
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)
	rm := int(opcode & 0x0f)

	if byteWidth {
		arm.disasmf("SWP"+arm.cond()+"B", "%s, %s, [%s]", reg(rd), reg(rm), reg(rn))
	} else {
		arm.disasmf("SWP"+arm.cond(), "%s, %s, [%s]", reg(rd), reg(rm), reg(rn))
	}

	// the read and the write happen within the same step so no other bus
	// master can see memory between the two accesses
	addr := st.Registers[rn]
	value := st.Registers[rm]

	var v uint32
	var ok bool
	if byteWidth {
		v, ok = arm.read(addr, bus.Byte)
		if ok {
			ok = arm.write(addr, bus.Byte, value)
		}
	} else {
		v, ok = arm.readRotated(addr)
		if ok {
			ok = arm.write(addr, bus.Word, value)
		}
	}
	if !ok {
		return ExceptionDataAbort
	}

	st.Registers[rd] = v

	return ExceptionNone
}
