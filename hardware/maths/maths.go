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

package maths

import (
	"fmt"
	"math/bits"
)

// register addresses
const (
	addrDivCnt    = 0x04000280
	addrNumer     = 0x04000290
	addrDenom     = 0x04000298
	addrDivResult = 0x040002a0
	addrRemResult = 0x040002a8
	addrSqrtCnt   = 0x040002b0
	addrSqrtRes   = 0x040002b4
	addrSqrtParam = 0x040002b8
)

// DivisionMode selects the width of the numerator and denominator.
type DivisionMode uint8

// List of valid DivisionMode values. The fourth value of the mode field is
// the same as Div64By32.
const (
	Div32By32 DivisionMode = iota
	Div64By32
	Div64By64
)

func (m DivisionMode) String() string {
	switch m {
	case Div32By32:
		return "32/32"
	case Div64By32:
		return "64/32"
	case Div64By64:
		return "64/64"
	}
	return fmt.Sprintf("illegal mode (%d)", uint8(m))
}

// Maths is the state of the division and square root registers.
type Maths struct {
	DivMode   DivisionMode
	DivByZero bool
	Numer     uint64
	Denom     uint64
	Result    uint64
	Remainder uint64

	Sqrt64     bool
	SqrtParam  uint64
	SqrtResult uint32
}

// NewMaths is the preferred method of initialisation for the Maths type.
func NewMaths() *Maths {
	return &Maths{}
}

// Reset all registers to zero.
func (m *Maths) Reset() {
	*m = Maths{}
}

func (m *Maths) String() string {
	return fmt.Sprintf("div %s: %016x / %016x = %016x r %016x  sqrt: %016x = %08x",
		m.DivMode, m.Numer, m.Denom, m.Result, m.Remainder, m.SqrtParam, m.SqrtResult)
}

func (m *Maths) divControl() uint32 {
	v := uint32(m.DivMode)
	if m.DivByZero {
		v |= 0x4000
	}
	return v
}

func (m *Maths) sqrtControl() uint32 {
	if m.Sqrt64 {
		return 0x0001
	}
	return 0
}

// ReadRegister reads the maths registers. The address is word aligned.
func (m *Maths) ReadRegister(address uint32) (uint32, bool) {
	switch address {
	case addrDivCnt:
		return m.divControl(), true
	case addrNumer:
		return uint32(m.Numer), true
	case addrNumer + 4:
		return uint32(m.Numer >> 32), true
	case addrDenom:
		return uint32(m.Denom), true
	case addrDenom + 4:
		return uint32(m.Denom >> 32), true
	case addrDivResult:
		return uint32(m.Result), true
	case addrDivResult + 4:
		return uint32(m.Result >> 32), true
	case addrRemResult:
		return uint32(m.Remainder), true
	case addrRemResult + 4:
		return uint32(m.Remainder >> 32), true
	case addrSqrtCnt:
		return m.sqrtControl(), true
	case addrSqrtRes:
		return m.SqrtResult, true
	case addrSqrtParam:
		return uint32(m.SqrtParam), true
	case addrSqrtParam + 4:
		return uint32(m.SqrtParam >> 32), true
	}
	return 0, false
}

// merge the masked value into the low or high word of a 64bit register
func merge(reg uint64, value uint32, mask uint32, high bool) uint64 {
	if high {
		m := uint64(mask) << 32
		return (reg &^ m) | (uint64(value)<<32)&m
	}
	m := uint64(mask)
	return (reg &^ m) | uint64(value)&m
}

// WriteRegister writes the maths registers. The address is word aligned and
// the mask selects the bytes that are written. A write to any of the control
// or parameter registers recalculates the result.
func (m *Maths) WriteRegister(address uint32, value uint32, mask uint32) bool {
	switch address {
	case addrDivCnt:
		if mask&0xff != 0 {
			m.DivMode = DivisionMode(value & 0x03)
			if m.DivMode == 3 {
				m.DivMode = Div64By32
			}
		}
		m.divide()
	case addrNumer:
		m.Numer = merge(m.Numer, value, mask, false)
		m.divide()
	case addrNumer + 4:
		m.Numer = merge(m.Numer, value, mask, true)
		m.divide()
	case addrDenom:
		m.Denom = merge(m.Denom, value, mask, false)
		m.divide()
	case addrDenom + 4:
		m.Denom = merge(m.Denom, value, mask, true)
		m.divide()
	case addrDivResult, addrDivResult + 4, addrRemResult, addrRemResult + 4:
		// read only
	case addrSqrtCnt:
		if mask&0xff != 0 {
			m.Sqrt64 = value&0x01 != 0
		}
		m.squareRoot()
	case addrSqrtRes:
		// read only
	case addrSqrtParam:
		m.SqrtParam = merge(m.SqrtParam, value, mask, false)
		m.squareRoot()
	case addrSqrtParam + 4:
		m.SqrtParam = merge(m.SqrtParam, value, mask, true)
		m.squareRoot()
	default:
		return false
	}
	return true
}

func (m *Maths) divide() {
	// the division by zero flag looks at the full 64bits of the denominator
	// whatever the mode
	m.DivByZero = m.Denom == 0

	var numer, denom int64
	switch m.DivMode {
	case Div32By32:
		numer = int64(int32(m.Numer))
		denom = int64(int32(m.Denom))
	case Div64By32:
		numer = int64(m.Numer)
		denom = int64(int32(m.Denom))
	default:
		numer = int64(m.Numer)
		denom = int64(m.Denom)
	}

	if denom == 0 {
		m.Remainder = uint64(numer)
		if numer < 0 {
			m.Result = 1
		} else {
			m.Result = 0xffffffffffffffff
		}

		// the sign of the upper half is inverted in 32bit mode
		if m.DivMode == Div32By32 {
			m.Result ^= 0xffffffff00000000
		}
		return
	}

	// the minimum int64 divided by minus one overflows. the result wraps in
	// the same way as the hardware
	m.Result = uint64(numer / denom)
	m.Remainder = uint64(numer % denom)
}

func (m *Maths) squareRoot() {
	if m.Sqrt64 {
		m.SqrtResult = isqrt(m.SqrtParam)
	} else {
		m.SqrtResult = isqrt(m.SqrtParam & 0xffffffff)
	}
}

// isqrt returns the integer square root of v, rounded down.
func isqrt(v uint64) uint32 {
	if v == 0 {
		return 0
	}

	// bit by bit method. the initial bit is the highest even power of four
	// not greater than v
	shift := (63 - bits.LeadingZeros64(v)) &^ 1
	bit := uint64(1) << shift

	var r uint64
	for bit != 0 {
		if v >= r+bit {
			v -= r + bit
			r = (r >> 1) + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}

	return uint32(r)
}

// Snapshot makes a copy of the maths registers.
func (m *Maths) Snapshot() *Maths {
	n := *m
	return &n
}

// Plumb the registers from an earlier snapshot.
func (m *Maths) Plumb(state *Maths) {
	*m = *state
}
