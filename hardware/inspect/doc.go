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

// Package inspect provides read-only access to the state of the emulation
// through named fields. Field names are of the form "arm9.cpsr", "arm7.ie" or
// "vram.a.cnt". The Fields() function lists every name.
//
// Fields are resolved while holding the NDS mutex and no field changes the
// state of the emulation when it is read.
//
// The Graph() function writes a graph of the emulation state in the DOT
// language.
package inspect
