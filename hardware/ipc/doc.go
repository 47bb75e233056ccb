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

// Package ipc implements the inter-processor communication registers. These
// are the IPCSYNC register, which passes four bits in each direction, and the
// pair of IPC FIFOs, which pass 32bit words in each direction.
//
// The IPC type holds the state of both processors' registers. Each processor
// accesses the registers through its own Port.
package ipc
