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

package video

import "fmt"

// Engine is the register state of one of the two 2D engines. The registers
// following DISPCNT are stored as raw bytes. They have no effect on the
// emulation other than being readable.
type Engine struct {
	Label string

	// DISPCNT
	Control uint32

	// the register block from offset 0x08 to 0x6f. BG control, scroll,
	// rotation, window, blend and master brightness registers
	Registers [blockEnd - blockStart]uint8
}

func (e Engine) String() string {
	return fmt.Sprintf("engine %s: DISPCNT %08x mode %d", e.Label, e.Control, e.Mode())
}

// Mode returns the BG mode field of DISPCNT.
func (e Engine) Mode() int {
	return int(e.Control & 0x07)
}

// DisplayMode returns the display mode field of DISPCNT.
func (e Engine) DisplayMode() int {
	return int(e.Control>>16) & 0x03
}

func (e *Engine) read(offset uint32) uint32 {
	if offset == 0 {
		return e.Control
	}
	i := offset - blockStart
	return uint32(e.Registers[i]) | uint32(e.Registers[i+1])<<8 |
		uint32(e.Registers[i+2])<<16 | uint32(e.Registers[i+3])<<24
}

func (e *Engine) write(offset uint32, value uint32, mask uint32) {
	if offset == 0 {
		e.Control = (e.Control &^ mask) | (value & mask)
		return
	}
	i := offset - blockStart
	for b := uint32(0); b < 4; b++ {
		if mask&(0xff<<(b*8)) != 0 {
			e.Registers[i+b] = uint8(value >> (b * 8))
		}
	}
}
