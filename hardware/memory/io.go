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
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// Registers is implemented by every peripheral with registers in the IO
// region. The address is always word aligned. The mask for a write selects
// the bytes of the value that are being written.
//
// Both functions return false if the peripheral has no register at the
// address. A peripheral with a register in only some bytes of the word
// should ignore the bytes it does not own.
type Registers interface {
	ReadRegister(address uint32) (uint32, bool)
	WriteRegister(address uint32, value uint32, mask uint32) bool
}

// IO is the collection of peripherals attached to the IO region of a
// processor.
type IO struct {
	label string
	regs  []Registers
}

func newIO(label string) *IO {
	return &IO{label: label}
}

// Attach peripherals to the IO region.
func (io *IO) Attach(regs ...Registers) {
	io.regs = append(io.regs, regs...)
}

// the mask of the bytes in the word covered by an access
func byteMask(address uint32, width bus.Width) (uint32, uint32) {
	shift := (address & 0x03) * 8
	var mask uint32
	switch width {
	case bus.Byte:
		mask = 0x000000ff
	case bus.Halfword:
		mask = 0x0000ffff
	default:
		mask = 0xffffffff
	}
	return mask << shift, shift
}

// Read the IO region. Returns false if no peripheral claims the address.
func (io *IO) Read(address uint32, width bus.Width) (uint32, bool) {
	address = width.Align(address)
	mask, shift := byteMask(address, width)
	word := address &^ 0x03

	var value uint32
	var found bool
	for _, r := range io.regs {
		if v, ok := r.ReadRegister(word); ok {
			value |= v
			found = true
		}
	}

	return (value & mask) >> shift, found
}

// Write the IO region. Returns false if no peripheral claims the address.
func (io *IO) Write(address uint32, width bus.Width, value uint32) bool {
	address = width.Align(address)
	mask, shift := byteMask(address, width)
	word := address &^ 0x03
	value = (value << shift) & mask

	var found bool
	for _, r := range io.regs {
		if r.WriteRegister(word, value, mask) {
			found = true
		}
	}

	return found
}
