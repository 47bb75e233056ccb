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

// Package bus defines the interfaces through which the processors access
// memory and the memory mapped peripherals.
package bus

import "fmt"

// Width of a memory access in bytes.
type Width int

// List of valid Width values.
const (
	Byte     Width = 1
	Halfword Width = 2
	Word     Width = 4
)

func (w Width) String() string {
	switch w {
	case Byte:
		return "byte"
	case Halfword:
		return "halfword"
	case Word:
		return "word"
	}
	return fmt.Sprintf("illegal width (%d)", int(w))
}

// Align returns the address forcibly aligned to the width.
func (w Width) Align(addr uint32) uint32 {
	return addr &^ uint32(w-1)
}

// Mask returns the value truncated to the width.
func (w Width) Mask(value uint32) uint32 {
	switch w {
	case Byte:
		return value & 0xff
	case Halfword:
		return value & 0xffff
	}
	return value
}

// CPUBus defines the operations for the memory system when accessed by a CPU.
//
// Addresses are forcibly aligned to the width of the access. Reads from
// addresses that are not mapped return the open bus value. Writes to addresses
// that are not mapped are ignored.
type CPUBus interface {
	Read(address uint32, width Width) uint32
	Write(address uint32, width Width, value uint32)
}

// DebugBus defines the meta-operations for all memory areas. Think of these
// functions as "debugging" functions, that is operations outside of the normal
// operation of the machine. Peek and Poke never cause a side effect in a
// peripheral.
type DebugBus interface {
	Peek(address uint32) (uint8, error)
	Poke(address uint32, value uint8) error
}

// Sentinal error returned by DebugBus functions when the address is not
// mapped to anything.
const (
	AddressError = "bus: address %08x is not mapped"
)
