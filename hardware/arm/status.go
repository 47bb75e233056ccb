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
	"strings"
)

// Mode is the processor mode as stored in the lower five bits of the status
// register.
type Mode uint32

// List of valid Mode values. The remaining 25 values of the five bit field
// are reserved.
const (
	ModeUser       Mode = 0x10
	ModeFIQ        Mode = 0x11
	ModeIRQ        Mode = 0x12
	ModeSupervisor Mode = 0x13
	ModeAbort      Mode = 0x17
	ModeUndefined  Mode = 0x1b
	ModeSystem     Mode = 0x1f
)

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "USR"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSupervisor:
		return "SVC"
	case ModeAbort:
		return "ABT"
	case ModeUndefined:
		return "UND"
	case ModeSystem:
		return "SYS"
	}
	return fmt.Sprintf("reserved (%05b)", uint32(m))
}

// Valid returns true if the mode is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem:
		return true
	}
	return false
}

// Privileged returns true for every mode except user mode.
func (m Mode) Privileged() bool {
	return m != ModeUser
}

// the status register bits.
const (
	statusNegative   = 0x80000000
	statusZero       = 0x40000000
	statusCarry      = 0x20000000
	statusOverflow   = 0x10000000
	statusSaturation = 0x08000000
	statusIRQDisable = 0x00000080
	statusFIQDisable = 0x00000040
	statusThumb      = 0x00000020
	statusMode       = 0x0000001f
)

// Status is the value of a current (CPSR) or saved (SPSR) program status
// register.
type Status uint32

func (sr Status) String() string {
	s := strings.Builder{}

	flag := func(b bool, set rune, clr rune) {
		if b {
			s.WriteRune(set)
		} else {
			s.WriteRune(clr)
		}
	}

	flag(sr.Negative(), 'N', 'n')
	flag(sr.Zero(), 'Z', 'z')
	flag(sr.Carry(), 'C', 'c')
	flag(sr.Overflow(), 'V', 'v')
	flag(sr.Saturation(), 'Q', 'q')
	s.WriteRune(' ')
	flag(sr.IRQDisable(), 'I', 'i')
	flag(sr.FIQDisable(), 'F', 'f')
	flag(sr.Thumb(), 'T', 't')
	s.WriteRune(' ')
	s.WriteString(sr.Mode().String())

	return s.String()
}

// Mode returns the mode field of the status register. The value is always
// masked to five bits but is not guaranteed to be a valid mode.
func (sr Status) Mode() Mode {
	return Mode(sr & statusMode)
}

// Negative flag.
func (sr Status) Negative() bool {
	return sr&statusNegative != 0
}

// Zero flag.
func (sr Status) Zero() bool {
	return sr&statusZero != 0
}

// Carry flag.
func (sr Status) Carry() bool {
	return sr&statusCarry != 0
}

// Overflow flag.
func (sr Status) Overflow() bool {
	return sr&statusOverflow != 0
}

// Saturation is the sticky overflow flag set by the saturating instructions.
func (sr Status) Saturation() bool {
	return sr&statusSaturation != 0
}

// IRQDisable flag.
func (sr Status) IRQDisable() bool {
	return sr&statusIRQDisable != 0
}

// FIQDisable flag.
func (sr Status) FIQDisable() bool {
	return sr&statusFIQDisable != 0
}

// Thumb returns true if the Thumb instruction set is selected.
func (sr Status) Thumb() bool {
	return sr&statusThumb != 0
}

func (sr *Status) set(bit Status, b bool) {
	if b {
		*sr |= bit
	} else {
		*sr &^= bit
	}
}

func (sr *Status) setNegative(b bool) {
	sr.set(statusNegative, b)
}

func (sr *Status) setZero(b bool) {
	sr.set(statusZero, b)
}

func (sr *Status) setCarry(b bool) {
	sr.set(statusCarry, b)
}

func (sr *Status) setOverflow(b bool) {
	sr.set(statusOverflow, b)
}

func (sr *Status) setSaturation(b bool) {
	sr.set(statusSaturation, b)
}

func (sr *Status) setThumb(b bool) {
	sr.set(statusThumb, b)
}

// isNegative and isZero set the N and Z flags according to the result of an
// operation.
func (sr *Status) isNegative(a uint32) {
	sr.setNegative(a&0x80000000 == 0x80000000)
}

func (sr *Status) isZero(a uint32) {
	sr.setZero(a == 0x00)
}

// isCarry and isOverflow set the C and V flags for the addition a + b + c,
// where c is zero or one. subtraction a - b is performed as a + ^b + 1.
func (sr *Status) isCarry(a, b, c uint32) {
	sr.setCarry((uint64(a)+uint64(b)+uint64(c))>>32 != 0)
}

func (sr *Status) isOverflow(a, b, c uint32) {
	r := int64(int32(a)) + int64(int32(b)) + int64(c)
	sr.setOverflow(r != int64(int32(r)))
}

// carryBit returns the C flag as a value suitable for arithmetic.
func (sr Status) carryBit() uint32 {
	if sr.Carry() {
		return 1
	}
	return 0
}

// the mnemonic suffix for each condition code. the always condition has no
// suffix and the never condition is never disassembled with a suffix
var conditionSuffix = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "", "NV",
}

// condition returns true if the condition code passes for the current value of
// the status register. conditions come in pairs: the upper three bits select
// the test and the lowest bit inverts it.
func (sr Status) condition(cond uint32) bool {
	n := sr.Negative()
	z := sr.Zero()
	c := sr.Carry()
	v := sr.Overflow()

	var pass bool
	switch cond >> 1 {
	case 0b000:
		pass = z
	case 0b001:
		pass = c
	case 0b010:
		pass = n
	case 0b011:
		pass = v
	case 0b100:
		pass = c && !z
	case 0b101:
		pass = n == v
	case 0b110:
		pass = !z && n == v
	default:
		// always and never. ARMv5 cores use the never code for a separate set
		// of unconditional instructions, which is handled by the decoder
		return cond == 0b1110
	}

	return pass != (cond&0x01 == 0x01)
}
