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

// Package arm implements the two ARM cores of the console. The ARM9 is an
// ARMv5TE core with the system control coprocessor (CP15) and the ARM7 is an
// ARMv4T core. Both cores execute the 32bit ARM and the 16bit Thumb
// instruction sets.
//
// Instructions are classified by Decode() into one of a closed set of Class
// values. The classification uses two ordered tables of mask/match
// predicates, one for each instruction set, and the first matching entry
// wins. Each Class has exactly one execution function.
//
// The R15 register holds the address of the next instruction between calls
// to Step(). During the execution of an instruction it holds the address of
// the instruction plus eight (ARM) or plus four (Thumb), which is the value
// seen when R15 is used as an operand.
//
// Memory is accessed through the bus.CPUBus interface. Interrupt requests are
// read through the InterruptLines interface at instruction boundaries.
package arm
