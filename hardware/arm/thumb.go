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

// the Thumb instruction set. each function executes one of the nineteen
// formats of Thumb instruction. R15 reads as the address of the instruction
// plus four.

func executeThumbMoveShifted(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 11) & 0x03
	amount := (opcode >> 6) & 0x1f
	rs := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	arm.disasmf(shiftMnemonic[op]+"S", "%s, %s, #%d", reg(rd), reg(rs), amount)

	result, carry := arm.shiftImmediate(op, st.Registers[rs], amount)
	st.Registers[rd] = result
	st.CPSR.isNegative(result)
	st.CPSR.isZero(result)
	st.CPSR.setCarry(carry)

	return ExceptionNone
}

func executeThumbAddSubtract(arm *ARM, opcode uint32) Exception {
	st := arm.state

	immediate := opcode&0x0400 != 0
	subtract := opcode&0x0200 != 0
	rn := (opcode >> 6) & 0x07
	rs := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	a := st.Registers[rs]
	b := rn
	if !immediate {
		b = st.Registers[rn]
	}

	if arm.disasm != nil {
		mnemonic := "ADDS"
		if subtract {
			mnemonic = "SUBS"
		}
		if immediate {
			arm.disasmf(mnemonic, "%s, %s, #%d", reg(rd), reg(rs), rn)
		} else {
			arm.disasmf(mnemonic, "%s, %s, %s", reg(rd), reg(rs), reg(rn))
		}
	}

	var result uint32
	if subtract {
		result = a - b
		st.CPSR.isCarry(a, ^b, 1)
		st.CPSR.isOverflow(a, ^b, 1)
	} else {
		result = a + b
		st.CPSR.isCarry(a, b, 0)
		st.CPSR.isOverflow(a, b, 0)
	}
	st.CPSR.isNegative(result)
	st.CPSR.isZero(result)
	st.Registers[rd] = result

	return ExceptionNone
}

var thumbImmediateMnemonic = [4]string{"MOVS", "CMP", "ADDS", "SUBS"}

func executeThumbImmediate(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 11) & 0x03
	rd := int((opcode >> 8) & 0x07)
	imm := opcode & 0xff

	arm.disasmf(thumbImmediateMnemonic[op], "%s, #%d", reg(rd), imm)

	a := st.Registers[rd]
	var result uint32

	switch op {
	case 0b00:
		result = imm
	case 0b01, 0b11:
		result = a - imm
		st.CPSR.isCarry(a, ^imm, 1)
		st.CPSR.isOverflow(a, ^imm, 1)
	case 0b10:
		result = a + imm
		st.CPSR.isCarry(a, imm, 0)
		st.CPSR.isOverflow(a, imm, 0)
	}

	st.CPSR.isNegative(result)
	st.CPSR.isZero(result)
	if op != 0b01 {
		st.Registers[rd] = result
	}

	return ExceptionNone
}

var thumbALUMnemonic = [16]string{
	"ANDS", "EORS", "LSLS", "LSRS", "ASRS", "ADCS", "SBCS", "RORS",
	"TST", "NEGS", "CMP", "CMN", "ORRS", "MULS", "BICS", "MVNS",
}

func executeThumbALU(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 6) & 0x0f
	rs := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	arm.disasmf(thumbALUMnemonic[op], "%s, %s", reg(rd), reg(rs))

	a := st.Registers[rd]
	b := st.Registers[rs]

	var result uint32
	write := true

	switch op {
	case 0x0: // AND
		result = a & b
	case 0x1: // EOR
		result = a ^ b
	case 0x2: // LSL
		var c bool
		result, c = arm.shiftRegister(shiftLSL, a, b)
		st.CPSR.setCarry(c)
	case 0x3: // LSR
		var c bool
		result, c = arm.shiftRegister(shiftLSR, a, b)
		st.CPSR.setCarry(c)
	case 0x4: // ASR
		var c bool
		result, c = arm.shiftRegister(shiftASR, a, b)
		st.CPSR.setCarry(c)
	case 0x5: // ADC
		c := st.CPSR.carryBit()
		result = a + b + c
		st.CPSR.isCarry(a, b, c)
		st.CPSR.isOverflow(a, b, c)
	case 0x6: // SBC
		c := st.CPSR.carryBit()
		result = a + ^b + c
		st.CPSR.isCarry(a, ^b, c)
		st.CPSR.isOverflow(a, ^b, c)
	case 0x7: // ROR
		var c bool
		result, c = arm.shiftRegister(shiftROR, a, b)
		st.CPSR.setCarry(c)
	case 0x8: // TST
		result = a & b
		write = false
	case 0x9: // NEG
		result = 0 - b
		st.CPSR.isCarry(0, ^b, 1)
		st.CPSR.isOverflow(0, ^b, 1)
	case 0xa: // CMP
		result = a - b
		st.CPSR.isCarry(a, ^b, 1)
		st.CPSR.isOverflow(a, ^b, 1)
		write = false
	case 0xb: // CMN
		result = a + b
		st.CPSR.isCarry(a, b, 0)
		st.CPSR.isOverflow(a, b, 0)
		write = false
	case 0xc: // ORR
		result = a | b
	case 0xd: // MUL
		// the carry flag is left unchanged
		result = a * b
	case 0xe: // BIC
		result = a &^ b
	case 0xf: // MVN
		result = ^b
	}

	st.CPSR.isNegative(result)
	st.CPSR.isZero(result)
	if write {
		st.Registers[rd] = result
	}

	return ExceptionNone
}

func executeThumbHiRegister(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 8) & 0x03
	h1 := opcode&0x0080 != 0
	rs := int((opcode >> 3) & 0x0f)
	rd := int(opcode & 0x07)
	if h1 {
		rd += 8
	}

	switch op {
	case 0b00:
		arm.disasmf("ADD", "%s, %s", reg(rd), reg(rs))
		result := st.Registers[rd] + st.Registers[rs]
		if rd == rPC {
			arm.writePC(result)
		} else {
			st.Registers[rd] = result
		}

	case 0b01:
		arm.disasmf("CMP", "%s, %s", reg(rd), reg(rs))
		a := st.Registers[rd]
		b := st.Registers[rs]
		result := a - b
		st.CPSR.isNegative(result)
		st.CPSR.isZero(result)
		st.CPSR.isCarry(a, ^b, 1)
		st.CPSR.isOverflow(a, ^b, 1)

	case 0b10:
		arm.disasmf("MOV", "%s, %s", reg(rd), reg(rs))
		if rd == rPC {
			arm.writePC(st.Registers[rs])
		} else {
			st.Registers[rd] = st.Registers[rs]
		}

	case 0b11:
		target := st.Registers[rs]
		if h1 {
			if !arm.mmap.IsV5() {
				arm.disasmf("UND", "BLX %s (ARMv5 only)", reg(rs))
				return ExceptionUndefined
			}
			arm.disasmf("BLX", "%s", reg(rs))
			st.Registers[rLR] = (arm.instructionPC + 2) | 0x01
		} else {
			arm.disasmf("BX", "%s", reg(rs))
		}
		arm.interwork(target)
	}

	return ExceptionNone
}

func executeThumbPCRelativeLoad(arm *ARM, opcode uint32) Exception {
	st := arm.state

	rd := int((opcode >> 8) & 0x07)
	offset := (opcode & 0xff) << 2

	// bit 1 of the PC is ignored so that the address is word aligned
	addr := (st.Registers[rPC] &^ 0x02) + offset

	arm.disasmf("LDR", "%s, [PC, #%d]", reg(rd), offset)

	v, ok := arm.read(addr, bus.Word)
	if !ok {
		return ExceptionDataAbort
	}
	st.Registers[rd] = v

	return ExceptionNone
}

// thumbTransfer is the common load/store for Thumb instructions that access a
// single register.
func (arm *ARM) thumbTransfer(load bool, width bus.Width, signed bool, rd int, addr uint32) Exception {
	st := arm.state

	if !load {
		if !arm.write(addr, width, st.Registers[rd]) {
			return ExceptionDataAbort
		}
		return ExceptionNone
	}

	var v uint32
	var ok bool

	switch width {
	case bus.Word:
		v, ok = arm.readRotated(addr)
	case bus.Halfword:
		switch {
		case !signed:
			v, ok = arm.readHalfword(addr)
		case !arm.mmap.IsV5() && addr&0x01 != 0:
			v, ok = arm.read(addr, bus.Byte)
			v = bitfield.SignExtend32(v, 8)
		default:
			v, ok = arm.read(addr, bus.Halfword)
			v = bitfield.SignExtend32(v, 16)
		}
	case bus.Byte:
		v, ok = arm.read(addr, bus.Byte)
		if signed {
			v = bitfield.SignExtend32(v, 8)
		}
	}
	if !ok {
		return ExceptionDataAbort
	}

	st.Registers[rd] = v

	return ExceptionNone
}

var thumbRegisterOffsetMnemonic = [4]string{"STR", "STRB", "LDR", "LDRB"}

func executeThumbRegisterOffset(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 10) & 0x03
	ro := int((opcode >> 6) & 0x07)
	rb := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	arm.disasmf(thumbRegisterOffsetMnemonic[op], "%s, [%s, %s]", reg(rd), reg(rb), reg(ro))

	width := bus.Word
	if op&0x01 != 0 {
		width = bus.Byte
	}

	return arm.thumbTransfer(op&0x02 != 0, width, false, rd, st.Registers[rb]+st.Registers[ro])
}

var thumbSignExtendedMnemonic = [4]string{"STRH", "LDRSB", "LDRH", "LDRSH"}

func executeThumbSignExtended(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 10) & 0x03
	ro := int((opcode >> 6) & 0x07)
	rb := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	arm.disasmf(thumbSignExtendedMnemonic[op], "%s, [%s, %s]", reg(rd), reg(rb), reg(ro))

	addr := st.Registers[rb] + st.Registers[ro]

	switch op {
	case 0b00:
		return arm.thumbTransfer(false, bus.Halfword, false, rd, addr)
	case 0b01:
		return arm.thumbTransfer(true, bus.Byte, true, rd, addr)
	case 0b10:
		return arm.thumbTransfer(true, bus.Halfword, false, rd, addr)
	}
	return arm.thumbTransfer(true, bus.Halfword, true, rd, addr)
}

func executeThumbImmediateOffset(arm *ARM, opcode uint32) Exception {
	st := arm.state

	byteWidth := opcode&0x1000 != 0
	load := opcode&0x0800 != 0
	offset := (opcode >> 6) & 0x1f
	rb := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	width := bus.Byte
	if !byteWidth {
		width = bus.Word
		offset <<= 2
	}

	if arm.disasm != nil {
		mnemonic := "STR"
		if load {
			mnemonic = "LDR"
		}
		if byteWidth {
			mnemonic += "B"
		}
		arm.disasmf(mnemonic, "%s, [%s, #%d]", reg(rd), reg(rb), offset)
	}

	return arm.thumbTransfer(load, width, false, rd, st.Registers[rb]+offset)
}

func executeThumbHalfword(arm *ARM, opcode uint32) Exception {
	st := arm.state

	load := opcode&0x0800 != 0
	offset := ((opcode >> 6) & 0x1f) << 1
	rb := int((opcode >> 3) & 0x07)
	rd := int(opcode & 0x07)

	if load {
		arm.disasmf("LDRH", "%s, [%s, #%d]", reg(rd), reg(rb), offset)
	} else {
		arm.disasmf("STRH", "%s, [%s, #%d]", reg(rd), reg(rb), offset)
	}

	return arm.thumbTransfer(load, bus.Halfword, false, rd, st.Registers[rb]+offset)
}

func executeThumbSPRelative(arm *ARM, opcode uint32) Exception {
	st := arm.state

	load := opcode&0x0800 != 0
	rd := int((opcode >> 8) & 0x07)
	offset := (opcode & 0xff) << 2

	if load {
		arm.disasmf("LDR", "%s, [SP, #%d]", reg(rd), offset)
	} else {
		arm.disasmf("STR", "%s, [SP, #%d]", reg(rd), offset)
	}

	return arm.thumbTransfer(load, bus.Word, false, rd, st.Registers[rSP]+offset)
}

func executeThumbLoadAddress(arm *ARM, opcode uint32) Exception {
	st := arm.state

	sp := opcode&0x0800 != 0
	rd := int((opcode >> 8) & 0x07)
	offset := (opcode & 0xff) << 2

	if sp {
		arm.disasmf("ADD", "%s, SP, #%d", reg(rd), offset)
		st.Registers[rd] = st.Registers[rSP] + offset
	} else {
		arm.disasmf("ADD", "%s, PC, #%d", reg(rd), offset)
		st.Registers[rd] = (st.Registers[rPC] &^ 0x02) + offset
	}

	return ExceptionNone
}

func executeThumbAddSP(arm *ARM, opcode uint32) Exception {
	st := arm.state

	offset := (opcode & 0x7f) << 2
	if opcode&0x80 != 0 {
		arm.disasmf("SUB", "SP, #%d", offset)
		st.Registers[rSP] -= offset
	} else {
		arm.disasmf("ADD", "SP, #%d", offset)
		st.Registers[rSP] += offset
	}

	return ExceptionNone
}

func executeThumbPushPop(arm *ARM, opcode uint32) Exception {
	load := opcode&0x0800 != 0
	list := opcode & 0xff

	if opcode&0x0100 != 0 {
		if load {
			list |= 1 << rPC
		} else {
			list |= 1 << rLR
		}
	}

	if load {
		arm.disasmf("POP", "%s", regList(list))
		return arm.transferBlock(blockTransfer{
			base:      rSP,
			list:      list,
			up:        true,
			writeback: true,
			load:      true,
			thumb:     true,
		})
	}

	arm.disasmf("PUSH", "%s", regList(list))
	return arm.transferBlock(blockTransfer{
		base:      rSP,
		list:      list,
		before:    true,
		writeback: true,
		thumb:     true,
	})
}

func executeThumbBreakpoint(arm *ARM, opcode uint32) Exception {
	arm.disasmf("BKPT", "#%02x", opcode&0xff)
	return ExceptionPrefetchAbort
}

func executeThumbBlockTransfer(arm *ARM, opcode uint32) Exception {
	load := opcode&0x0800 != 0
	rb := int((opcode >> 8) & 0x07)
	list := opcode & 0xff

	if load {
		arm.disasmf("LDMIA", "%s!, %s", reg(rb), regList(list))
	} else {
		arm.disasmf("STMIA", "%s!, %s", reg(rb), regList(list))
	}

	return arm.transferBlock(blockTransfer{
		base:      rb,
		list:      list,
		up:        true,
		writeback: true,
		load:      load,
		thumb:     true,
	})
}

func executeThumbSoftwareInterrupt(arm *ARM, opcode uint32) Exception {
	arm.disasmf("SWI", "#%02x", opcode&0xff)
	return ExceptionSWI
}

func executeThumbUndefined(arm *ARM, opcode uint32) Exception {
	arm.disasmf("UND", "%04x", opcode)
	arm.log("undefined thumb instruction %04x", opcode)
	return ExceptionUndefined
}

func executeThumbConditionalBranch(arm *ARM, opcode uint32) Exception {
	st := arm.state

	cond := (opcode >> 8) & 0x0f
	offset := bitfield.SignExtend32(opcode&0xff, 8) << 1
	target := st.Registers[rPC] + offset

	arm.disasmf("B"+conditionSuffix[cond], "%08x", target)

	if !st.CPSR.condition(cond) {
		arm.disasmCondition(false)
		return ExceptionNone
	}

	arm.writePC(target)

	return ExceptionNone
}

func executeThumbBranch(arm *ARM, opcode uint32) Exception {
	st := arm.state

	offset := bitfield.SignExtend32(opcode&0x07ff, 11) << 1
	target := st.Registers[rPC] + offset

	arm.disasmf("B", "%08x", target)
	arm.writePC(target)

	return ExceptionNone
}

// the long branch with link is a pair of instructions. the first instruction
// puts the upper part of the offset into LR.
func executeThumbBranchLinkPrefix(arm *ARM, opcode uint32) Exception {
	st := arm.state

	offset := bitfield.SignExtend32(opcode&0x07ff, 11) << 12
	st.Registers[rLR] = st.Registers[rPC] + offset

	arm.disasmf("BL", "(prefix) %s", thumbBranchTarget(st.Registers[rLR]))

	return ExceptionNone
}

// thumbBranchTarget is the partial target of a BL prefix.
type thumbBranchTarget uint32

func (t thumbBranchTarget) String() string {
	return fmt.Sprintf("%08x+", uint32(t))
}

// the second instruction of the pair adds the lower part of the offset to LR
// and branches. the BLX form changes to the ARM instruction set.
func executeThumbBranchLinkSuffix(arm *ARM, opcode uint32) Exception {
	st := arm.state

	exchange := opcode&0xf800 == 0xe800
	if exchange && opcode&0x01 != 0 {
		arm.disasmf("UND", "%04x", opcode)
		return ExceptionUndefined
	}

	target := st.Registers[rLR] + (opcode&0x07ff)<<1
	st.Registers[rLR] = (arm.instructionPC + 2) | 0x01

	if exchange {
		arm.disasmf("BLX", "%08x", target&^0x03)
		st.CPSR.setThumb(false)
		arm.writePC(target)
		return ExceptionNone
	}

	arm.disasmf("BL", "%08x", target&^0x01)
	arm.writePC(target)

	return ExceptionNone
}
