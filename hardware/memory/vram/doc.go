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

// Package vram implements the nine video memory banks and the composition of
// banks that are mapped to the same window.
//
// Each bank is configured by its VRAMCNT register. The register selects
// whether the bank is enabled, which logical window (the Target) it is mapped
// into and the offset of the bank within that window. More than one bank can
// be mapped to the same part of a window. When that happens a read returns
// the bitwise OR of every bank and a write goes to every bank.
//
// The package knows nothing about CPU addresses. The memory fabric translates
// a CPU address into a Target and an offset before calling Read() or Write().
package vram
