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

// Package hardware is the base package for the emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The NDS type is the root of the emulation and contains external references
// to all the sub-systems. From here, the emulation can either be run for a
// number of cycles or it can be stepped.
//
// The two processors are interleaved. For every slice of ARM7 cycles, the
// ARM9 runs for the number of cycles given by the ClockRatio preference and
// then the ARM7 runs for the slice. The display counter is advanced after the
// ARM7.
//
// Access to the NDS is serialised by a single mutex. Exported functions of
// the NDS type acquire it. Other goroutines wanting to read the state of the
// sub-systems directly should use the Critical() function.
package hardware
