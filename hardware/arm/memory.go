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
	"math/bits"

	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// fetch an instruction. returns false if the memory protection unit denies
// the access, in which case a prefetch abort should be raised.
func (arm *ARM) fetch(addr uint32, width bus.Width) (uint32, bool) {
	if !arm.permitted(addr) {
		arm.log("prefetch abort at %08x", addr)
		return 0, false
	}
	return arm.mem.Read(addr, width), true
}

// read data from memory. returns false if the memory protection unit denies
// the access, in which case a data abort should be raised.
func (arm *ARM) read(addr uint32, width bus.Width) (uint32, bool) {
	if !arm.permitted(addr) {
		arm.log("data abort reading %08x", addr)
		return 0, false
	}
	return arm.mem.Read(addr, width), true
}

// write data to memory. returns false if the memory protection unit denies
// the access, in which case a data abort should be raised.
func (arm *ARM) write(addr uint32, width bus.Width, value uint32) bool {
	if !arm.permitted(addr) {
		arm.log("data abort writing %08x", addr)
		return false
	}
	arm.mem.Write(addr, width, width.Mask(value))
	return true
}

// readRotated reads a word from memory. a misaligned address reads the
// aligned word rotated so that the addressed byte is in the lowest eight bits.
// this is the behaviour of LDR and SWP.
func (arm *ARM) readRotated(addr uint32) (uint32, bool) {
	v, ok := arm.read(addr, bus.Word)
	if !ok {
		return 0, false
	}
	return bits.RotateLeft32(v, -int((addr&0x03)*8)), true
}

// readHalfword reads an unsigned halfword. ARMv4 cores rotate the value read
// from a misaligned address. ARMv5 cores ignore the lowest bit of the address.
func (arm *ARM) readHalfword(addr uint32) (uint32, bool) {
	v, ok := arm.read(addr, bus.Halfword)
	if !ok {
		return 0, false
	}
	if !arm.mmap.IsV5() && addr&0x01 != 0 {
		v = bits.RotateLeft32(v, -8)
	}
	return v, true
}

func (arm *ARM) permitted(addr uint32) bool {
	if !arm.mmap.HasCP15 {
		return true
	}
	return arm.state.CP15.permitted(addr)
}

// writePC sets the program counter, aligned to the current instruction set.
func (arm *ARM) writePC(addr uint32) {
	if arm.state.CPSR.Thumb() {
		arm.state.Registers[rPC] = addr &^ 0x01
	} else {
		arm.state.Registers[rPC] = addr &^ 0x03
	}
	arm.branched = true
}

// interwork sets the instruction set from the lowest bit of the address and
// then sets the program counter.
func (arm *ARM) interwork(addr uint32) {
	arm.state.CPSR.setThumb(addr&0x01 == 0x01)
	arm.writePC(addr)
}

// loadRegister writes a value read from memory to a register. loads into the
// program counter change the instruction set on ARMv5 cores.
func (arm *ARM) loadRegister(n int, value uint32) {
	if n != rPC {
		arm.state.Registers[n] = value
		return
	}
	if arm.mmap.IsV5() {
		arm.interwork(value)
	} else {
		arm.writePC(value)
	}
}

// storeValue returns the value of a register to be stored to memory. a store
// of R15 stores the address of the instruction plus twelve in ARM state and
// plus six in Thumb state.
func (arm *ARM) storeValue(n int) uint32 {
	if n == rPC {
		if arm.state.CPSR.Thumb() {
			return arm.state.Registers[rPC] + 2
		}
		return arm.state.Registers[rPC] + 4
	}
	return arm.state.Registers[n]
}
