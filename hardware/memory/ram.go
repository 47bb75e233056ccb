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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// RAM is a memory area. The area is mirrored throughout the address range
// given to it by the bus. The size of the area must be a power of two.
type RAM struct {
	label string
	data  []uint8
	mask  uint32
}

func newRAM(label string, size int) *RAM {
	return &RAM{
		label: label,
		data:  make([]uint8, size),
		mask:  uint32(size - 1),
	}
}

// Label returns the name of the memory area.
func (ram *RAM) Label() string {
	return ram.label
}

// Size returns the size of the memory area in bytes.
func (ram *RAM) Size() int {
	return len(ram.data)
}

// Data returns the underlying bytes of the memory area. Changing the slice
// changes the memory area.
func (ram *RAM) Data() []uint8 {
	return ram.data
}

// Reset clears the memory area.
func (ram *RAM) Reset() {
	clear(ram.data)
}

func (ram *RAM) String() string {
	return fmt.Sprintf("%s (%d KB)", ram.label, len(ram.data)/1024)
}

// Dump returns a hex dump of length bytes from the offset.
func (ram *RAM) Dump(offset uint32, length int) string {
	s := strings.Builder{}
	s.WriteString("          -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("        ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	offset &^= 0x0f
	for y := 0; y < length; y += 16 {
		s.WriteString(fmt.Sprintf("%08x |", offset+uint32(y)))
		for x := 0; x < 16; x++ {
			s.WriteString(fmt.Sprintf(" %02x", ram.data[(offset+uint32(y+x))&ram.mask]))
		}
		s.WriteString("\n")
	}
	return strings.Trim(s.String(), "\n")
}

func (ram *RAM) read(address uint32, width bus.Width) uint32 {
	return readData(ram.data, address&ram.mask, width)
}

func (ram *RAM) write(address uint32, width bus.Width, value uint32) {
	writeData(ram.data, address&ram.mask, width, value)
}

// Peek is an implementation of bus.DebugBus for a single area. The address
// is mirrored in the same way as it is for the CPU.
func (ram *RAM) Peek(address uint32) (uint8, error) {
	return ram.data[address&ram.mask], nil
}

// Poke is an implementation of bus.DebugBus for a single area.
func (ram *RAM) Poke(address uint32, value uint8) error {
	ram.data[address&ram.mask] = value
	return nil
}

// little-endian access to a slice of bytes. the offset has already been
// aligned to the width
func readData(data []uint8, offset uint32, width bus.Width) uint32 {
	switch width {
	case bus.Byte:
		return uint32(data[offset])
	case bus.Halfword:
		return uint32(data[offset]) | uint32(data[offset+1])<<8
	}
	return uint32(data[offset]) | uint32(data[offset+1])<<8 |
		uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
}

func writeData(data []uint8, offset uint32, width bus.Width, value uint32) {
	data[offset] = uint8(value)
	if width == bus.Byte {
		return
	}
	data[offset+1] = uint8(value >> 8)
	if width == bus.Halfword {
		return
	}
	data[offset+2] = uint8(value >> 16)
	data[offset+3] = uint8(value >> 24)
}
