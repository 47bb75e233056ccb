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

import "math"

// multiply instructions only affect the N and Z flags. the C flag is
// unpredictable on ARMv4 and unaffected on ARMv5. we leave it unaffected in
// both cases.

func executeMultiply(arm *ARM, opcode uint32) Exception {
	st := arm.state

	accumulate := opcode&0x00200000 != 0
	setFlags := opcode&0x00100000 != 0
	rd := int((opcode >> 16) & 0x0f)
	rn := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)

	s := ""
	if setFlags {
		s = "S"
	}

	result := st.Registers[rm] * st.Registers[rs]
	if accumulate {
		arm.disasmf("MLA"+arm.cond()+s, "%s, %s, %s, %s", reg(rd), reg(rm), reg(rs), reg(rn))
		result += st.Registers[rn]
	} else {
		arm.disasmf("MUL"+arm.cond()+s, "%s, %s, %s", reg(rd), reg(rm), reg(rs))
	}

	st.Registers[rd] = result

	if setFlags {
		st.CPSR.isNegative(result)
		st.CPSR.isZero(result)
	}

	return ExceptionNone
}

func executeMultiplyLong(arm *ARM, opcode uint32) Exception {
	st := arm.state

	signed := opcode&0x00400000 != 0
	accumulate := opcode&0x00200000 != 0
	setFlags := opcode&0x00100000 != 0
	rdHi := int((opcode >> 16) & 0x0f)
	rdLo := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)

	if arm.disasm != nil {
		mnemonic := "UMULL"
		switch {
		case signed && accumulate:
			mnemonic = "SMLAL"
		case signed:
			mnemonic = "SMULL"
		case accumulate:
			mnemonic = "UMLAL"
		}
		mnemonic += arm.cond()
		if setFlags {
			mnemonic += "S"
		}
		arm.disasmf(mnemonic, "%s, %s, %s, %s", reg(rdLo), reg(rdHi), reg(rm), reg(rs))
	}

	var result uint64
	if signed {
		result = uint64(int64(int32(st.Registers[rm])) * int64(int32(st.Registers[rs])))
	} else {
		result = uint64(st.Registers[rm]) * uint64(st.Registers[rs])
	}

	if accumulate {
		result += uint64(st.Registers[rdHi])<<32 | uint64(st.Registers[rdLo])
	}

	st.Registers[rdLo] = uint32(result)
	st.Registers[rdHi] = uint32(result >> 32)

	if setFlags {
		st.CPSR.setNegative(result&0x8000000000000000 != 0)
		st.CPSR.setZero(result == 0)
	}

	return ExceptionNone
}

// halfword selects the top or bottom halfword of a register as a signed value.
func halfword(v uint32, top bool) int32 {
	if top {
		return int32(v) >> 16
	}
	return int32(int16(v))
}

// addOverflows returns true if the signed addition a + b overflows.
func addOverflows(a, b, r int32) bool {
	return (a >= 0) == (b >= 0) && (r >= 0) != (a >= 0)
}

func executeSignedHalfwordMultiply(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 21) & 0x03
	rd := int((opcode >> 16) & 0x0f)
	rn := int((opcode >> 12) & 0x0f)
	rs := int((opcode >> 8) & 0x0f)
	rm := int(opcode & 0x0f)
	x := opcode&0x20 != 0
	y := opcode&0x40 != 0

	xy := func(b bool) string {
		if b {
			return "T"
		}
		return "B"
	}

	switch op {
	case 0b00:
		// SMLAxy
		arm.disasmf("SMLA"+xy(x)+xy(y)+arm.cond(), "%s, %s, %s, %s", reg(rd), reg(rm), reg(rs), reg(rn))
		p := halfword(st.Registers[rm], x) * halfword(st.Registers[rs], y)
		acc := int32(st.Registers[rn])
		r := p + acc
		if addOverflows(p, acc, r) {
			st.CPSR.setSaturation(true)
		}
		st.Registers[rd] = uint32(r)

	case 0b01:
		// SMLAWy and SMULWy. the product is the top 32 bits of the 48 bit
		// result
		p := int32((int64(int32(st.Registers[rm])) * int64(halfword(st.Registers[rs], y))) >> 16)
		if x {
			arm.disasmf("SMULW"+xy(y)+arm.cond(), "%s, %s, %s", reg(rd), reg(rm), reg(rs))
			st.Registers[rd] = uint32(p)
			break // switch
		}
		arm.disasmf("SMLAW"+xy(y)+arm.cond(), "%s, %s, %s, %s", reg(rd), reg(rm), reg(rs), reg(rn))
		acc := int32(st.Registers[rn])
		r := p + acc
		if addOverflows(p, acc, r) {
			st.CPSR.setSaturation(true)
		}
		st.Registers[rd] = uint32(r)

	case 0b10:
		// SMLALxy. rn is the low word and rd the high word of the accumulator
		arm.disasmf("SMLAL"+xy(x)+xy(y)+arm.cond(), "%s, %s, %s, %s", reg(rn), reg(rd), reg(rm), reg(rs))
		p := int64(halfword(st.Registers[rm], x) * halfword(st.Registers[rs], y))
		acc := int64(uint64(st.Registers[rd])<<32 | uint64(st.Registers[rn]))
		r := uint64(acc + p)
		st.Registers[rn] = uint32(r)
		st.Registers[rd] = uint32(r >> 32)

	case 0b11:
		// SMULxy
		arm.disasmf("SMUL"+xy(x)+xy(y)+arm.cond(), "%s, %s, %s", reg(rd), reg(rm), reg(rs))
		st.Registers[rd] = uint32(halfword(st.Registers[rm], x) * halfword(st.Registers[rs], y))
	}

	return ExceptionNone
}

// saturate clamps the value to the range of a signed 32bit integer. returns
// true if the value was clamped.
func saturate(v int64) (int32, bool) {
	if v > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if v < math.MinInt32 {
		return math.MinInt32, true
	}
	return int32(v), false
}

func executeSaturatingArithmetic(arm *ARM, opcode uint32) Exception {
	st := arm.state

	op := (opcode >> 21) & 0x03
	rn := int((opcode >> 16) & 0x0f)
	rd := int((opcode >> 12) & 0x0f)
	rm := int(opcode & 0x0f)

	mnemonic := [4]string{"QADD", "QSUB", "QDADD", "QDSUB"}[op]
	arm.disasmf(mnemonic+arm.cond(), "%s, %s, %s", reg(rd), reg(rm), reg(rn))

	a := int64(int32(st.Registers[rm]))
	b := int64(int32(st.Registers[rn]))

	var sat bool

	// the doubling variants saturate the doubled value before the addition
	// or subtraction
	if op&0b10 != 0 {
		var d int32
		d, sat = saturate(b * 2)
		b = int64(d)
	}

	var r int32
	var s bool
	if op&0b01 != 0 {
		r, s = saturate(a - b)
	} else {
		r, s = saturate(a + b)
	}

	if sat || s {
		st.CPSR.setSaturation(true)
	}
	st.Registers[rd] = uint32(r)

	return ExceptionNone
}
