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

import "math/bits"

// shift types as encoded in bits 5 and 6 of ARM data processing instructions
// and in bits 11 and 12 of the Thumb move shifted register instruction.
const (
	shiftLSL = 0b00
	shiftLSR = 0b01
	shiftASR = 0b10
	shiftROR = 0b11
)

var shiftMnemonic = [4]string{"LSL", "LSR", "ASR", "ROR"}

// shiftImmediate performs the barrel shifter operation for a shift amount
// encoded in the instruction. returns the result and the shifter carry out.
//
// an encoded amount of zero has special meaning for all but LSL:
//
//	LSR #0 is LSR #32
//	ASR #0 is ASR #32
//	ROR #0 is RRX (rotate right by one through the carry flag)
func (arm *ARM) shiftImmediate(typ uint32, value uint32, amount uint32) (uint32, bool) {
	carry := arm.state.CPSR.Carry()

	switch typ {
	case shiftLSL:
		if amount == 0 {
			return value, carry
		}
		return value << amount, value&(1<<(32-amount)) != 0

	case shiftLSR:
		if amount == 0 {
			return 0, value&0x80000000 != 0
		}
		return value >> amount, value&(1<<(amount-1)) != 0

	case shiftASR:
		if amount == 0 {
			if value&0x80000000 != 0 {
				return 0xffffffff, true
			}
			return 0, false
		}
		return uint32(int32(value) >> amount), value&(1<<(amount-1)) != 0

	case shiftROR:
		if amount == 0 {
			r := value >> 1
			if carry {
				r |= 0x80000000
			}
			return r, value&0x01 != 0
		}
		return bits.RotateLeft32(value, -int(amount)), value&(1<<(amount-1)) != 0
	}

	panic("arm: illegal shift type")
}

// shiftRegister performs the barrel shifter operation for a shift amount taken
// from the bottom byte of a register. an amount of zero leaves the value and
// the carry flag unchanged.
func (arm *ARM) shiftRegister(typ uint32, value uint32, amount uint32) (uint32, bool) {
	carry := arm.state.CPSR.Carry()

	amount &= 0xff
	if amount == 0 {
		return value, carry
	}

	switch typ {
	case shiftLSL:
		switch {
		case amount < 32:
			return value << amount, value&(1<<(32-amount)) != 0
		case amount == 32:
			return 0, value&0x01 != 0
		}
		return 0, false

	case shiftLSR:
		switch {
		case amount < 32:
			return value >> amount, value&(1<<(amount-1)) != 0
		case amount == 32:
			return 0, value&0x80000000 != 0
		}
		return 0, false

	case shiftASR:
		if amount < 32 {
			return uint32(int32(value) >> amount), value&(1<<(amount-1)) != 0
		}
		if value&0x80000000 != 0 {
			return 0xffffffff, true
		}
		return 0, false

	case shiftROR:
		amount &= 0x1f
		if amount == 0 {
			return value, value&0x80000000 != 0
		}
		return bits.RotateLeft32(value, -int(amount)), value&(1<<(amount-1)) != 0
	}

	panic("arm: illegal shift type")
}

// rotatedImmediate decodes the 8bit immediate value and 4bit rotation of ARM
// data processing and MSR instructions.
func (arm *ARM) rotatedImmediate(opcode uint32) (uint32, bool) {
	imm := opcode & 0xff
	rotate := ((opcode >> 8) & 0x0f) * 2
	if rotate == 0 {
		return imm, arm.state.CPSR.Carry()
	}
	v := bits.RotateLeft32(imm, -int(rotate))
	return v, v&0x80000000 != 0
}
