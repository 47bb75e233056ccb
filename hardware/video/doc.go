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

// Package video implements the display registers of the two graphics engines,
// the display status registers of both processors and the power control
// register of the ARM9.
//
// No pixels are produced. The package maintains the scanline counter so that
// the VBlank, HBlank and VCount interrupts are raised at the correct time and
// the registers hold the values a rasteriser would need.
package video
