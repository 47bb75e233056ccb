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
)

var dataProcessingMnemonic = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

// the data processing opcodes that don't write a result.
func isTestOperation(op uint32) bool {
	return op >= 0x8 && op <= 0xb
}

// shifterOperand returns the second operand of a data processing instruction
// and the carry out of the barrel shifter. the pcAdjust value is the
// additional offset applied to R15 when it is read as an operand.
//
// when the shift amount is taken from a register, the PC is read as the
// address of the instruction plus twelve
func (arm *ARM) shifterOperand(opcode uint32) (value uint32, carry bool, pcAdjust uint32) {
	st := arm.state

	if opcode&0x02000000 != 0 {
		value, carry = arm.rotatedImmediate(opcode)
		return value, carry, 0
	}

	rm := opcode & 0x0f
	typ := (opcode >> 5) & 0x03

	if opcode&0x10 != 0 {
		rs := (opcode >> 8) & 0x0f
		v := st.Registers[rm]
		if rm == rPC {
			v += 4
		}
		value, carry = arm.shiftRegister(typ, v, st.Registers[rs])
		return value, carry, 4
	}

	value, carry = arm.shiftImmediate(typ, st.Registers[rm], (opcode>>7)&0x1f)
	return value, carry, 0
}

// shifterOperandString describes the second operand of a data processing
// instruction.
type shifterOperandString uint32

func (o shifterOperandString) String() string {
	opcode := uint32(o)
	if opcode&0x02000000 != 0 {
		imm := opcode & 0xff
		rotate := ((opcode >> 8) & 0x0f) * 2
		return fmt.Sprintf("#%d", imm>>rotate|imm<<((32-rotate)&31))
	}

	rm := reg(opcode & 0x0f)
	typ := (opcode >> 5) & 0x03

	if opcode&0x10 != 0 {
		return fmt.Sprintf("%s, %s %s", rm, shiftMnemonic[typ], reg((opcode>>8)&0x0f))
	}

	amount := (opcode >> 7) & 0x1f
	switch {
	case typ == shiftLSL && amount == 0:
		return rm.String()
	case typ == shiftROR && amount == 0:
		return fmt.Sprintf("%s, RRX", rm)
	case amount == 0:
		amount = 32
	}
	return fmt.Sprintf("%s, %s #%d", rm, shiftMnemonic[typ], amount)
}

func executeDataProcessing(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 21) & 0x0f
	setFlags := opcode&0x00100000 != 0
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)

	// the test operations with the S bit clear are the encoding space of the
	// status register and miscellaneous instructions. anything reaching here
	// is not a valid instruction
	if isTestOperation(op) && !setFlags {
		arm.disasmf("UND", "%08x", opcode)
		return ExceptionUndefined
	}

	operand2, shifterCarry, pcAdjust := arm.shifterOperand(opcode)

	s := ""
	if setFlags && !isTestOperation(op) {
		s = "S"
	}
	switch {
	case isTestOperation(op):
		arm.disasmf(dataProcessingMnemonic[op]+arm.cond(), "%s, %s", reg(rn), shifterOperandString(opcode))
	case op == 0xd || op == 0xf:
		arm.disasmf(dataProcessingMnemonic[op]+arm.cond()+s, "%s, %s", reg(rd), shifterOperandString(opcode))
	default:
		arm.disasmf(dataProcessingMnemonic[op]+arm.cond()+s, "%s, %s, %s", reg(rd), reg(rn), shifterOperandString(opcode))
	}

	a := st.Registers[rn]
	if rn == rPC {
		a += pcAdjust
	}

	// flags are calculated on a copy of the status register and only
	// committed if the S bit is set
	flags := st.CPSR
	var result uint32
	logical := false

	switch op {
	case 0x0, 0x8: // AND, TST
		result = a & operand2
		logical = true
	case 0x1, 0x9: // EOR, TEQ
		result = a ^ operand2
		logical = true
	case 0x2, 0xa: // SUB, CMP
		result = a - operand2
		flags.isCarry(a, ^operand2, 1)
		flags.isOverflow(a, ^operand2, 1)
	case 0x3: // RSB
		result = operand2 - a
		flags.isCarry(operand2, ^a, 1)
		flags.isOverflow(operand2, ^a, 1)
	case 0x4, 0xb: // ADD, CMN
		result = a + operand2
		flags.isCarry(a, operand2, 0)
		flags.isOverflow(a, operand2, 0)
	case 0x5: // ADC
		c := st.CPSR.carryBit()
		result = a + operand2 + c
		flags.isCarry(a, operand2, c)
		flags.isOverflow(a, operand2, c)
	case 0x6: // SBC
		c := st.CPSR.carryBit()
		result = a + ^operand2 + c
		flags.isCarry(a, ^operand2, c)
		flags.isOverflow(a, ^operand2, c)
	case 0x7: // RSC
		c := st.CPSR.carryBit()
		result = operand2 + ^a + c
		flags.isCarry(operand2, ^a, c)
		flags.isOverflow(operand2, ^a, c)
	case 0xc: // ORR
		result = a | operand2
		logical = true
	case 0xd: // MOV
		result = operand2
		logical = true
	case 0xe: // BIC
		result = a &^ operand2
		logical = true
	case 0xf: // MVN
		result = ^operand2
		logical = true
	}

	if !isTestOperation(op) && rd == rPC {
		// with the S bit set, writing to the PC is the return from an
		// exception. the SPSR is copied to the CPSR and the flags are not
		// otherwise affected
		if setFlags {
			arm.restoreCPSR()
		}
		arm.writePC(result)
		return ExceptionNone
	}

	if !isTestOperation(op) {
		st.Registers[rd] = result
	}

	if setFlags {
		flags.isNegative(result)
		flags.isZero(result)
		if logical {
			flags.setCarry(shifterCarry)
		}
		st.CPSR = flags
	}

	return ExceptionNone
}

func executeStatusRead(arm *ARM, opcode uint32) Exception {
	st := arm.state
	rd := int((opcode >> 12) & 0x0f)

	if opcode&0x00400000 == 0 {
		arm.disasmf("MRS"+arm.cond(), "%s, CPSR", reg(rd))
		st.Registers[rd] = uint32(st.CPSR)
		return ExceptionNone
	}

	arm.disasmf("MRS"+arm.cond(), "%s, SPSR", reg(rd))
	spsr, err := arm.SPSR()
	if err != nil {
		// unpredictable. the CPSR is a reasonable value to return
		arm.log("%v", err)
		spsr = st.CPSR
	}
	st.Registers[rd] = uint32(spsr)

	return ExceptionNone
}

// the field mask letters in MSR instructions.
type psrFields uint32

func (f psrFields) String() string {
	s := "_"
	for i, c := range "cxsf" {
		if f&(1<<i) != 0 {
			s += string(c)
		}
	}
	return s
}

func executeStatusWrite(arm *ARM, opcode uint32) Exception {
	st := arm.state

	fields := (opcode >> 16) & 0x0f
	useSPSR := opcode&0x00400000 != 0

	var value uint32
	if opcode&0x02000000 != 0 {
		value, _ = arm.rotatedImmediate(opcode)
	} else {
		value = st.Registers[opcode&0x0f]
	}

	psr := "CPSR"
	if useSPSR {
		psr = "SPSR"
	}
	arm.disasmf("MSR"+arm.cond(), "%s%s, %s", psr, psrFields(fields), shifterOperandString(opcode))

	var mask uint32
	for i := 0; i < 4; i++ {
		if fields&(1<<i) != 0 {
			mask |= 0xff << (i * 8)
		}
	}

	if !arm.mmap.IsV5() {
		mask &^= statusSaturation
	}

	if useSPSR {
		spsr, err := arm.SPSR()
		if err == nil {
			err = arm.SetSPSR(Status((uint32(spsr) &^ mask) | (value & mask)))
		}
		if err != nil {
			arm.log("%v", err)
		}
		return ExceptionNone
	}

	// only the flags can be changed in user mode. the instruction set cannot
	// be changed by MSR in any mode
	if !st.CPSR.Mode().Privileged() {
		mask &= 0xff000000
	}
	mask &^= statusThumb

	arm.writeCPSR(Status((uint32(st.CPSR) &^ mask) | (value & mask)))

	return ExceptionNone
}
