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

// Package memory implements the memory fabric of the two processors. The
// fabric maps an address to a memory area or to the IO registers:
//
//	    ARM9 ---- ARM9Bus ----\              /---- ITCM / DTCM
//	                           \            /
//	                            *-- Memory -*----- main RAM, shared WRAM
//	                           /            \
//	    ARM7 ---- ARM7Bus ----/              \---- palette, OAM, VRAM, BIOS
//
//	                   |                |
//	                   \/               \/
//
//	                ARM9 IO          ARM7 IO
//
// Memory areas are shared between the two buses where the hardware shares
// them. The VRAM is accessed through the windows described by the vram
// package.
//
// The IO registers are implemented by the peripheral packages. Each
// peripheral implements the Registers interface and is attached to the IO of
// one or both processors. An IO access is presented to every attached
// peripheral as a word aligned address and a mask of the bytes being
// accessed. The result of a read is the bitwise OR of every peripheral that
// claims the address.
//
// Addresses that are not mapped read as the open bus value and writes to them
// are ignored. Illegal accesses can be logged by setting the LogIllegalAccess
// preference.
package memory
