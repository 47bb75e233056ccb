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

// Package statsview serves live runtime statistics of a running emulation. It
// is only built when the "statsview" build tag is present. Without the tag
// Available() returns false and the -statsview flag is not offered.
//
// The charts are useful alongside the PERFORMANCE mode, when looking at the
// garbage collection and allocation behaviour of long emulation runs. With the
// server running the charts are at:
//
//	http://localhost:12600/debug/statsview
//
// and the pprof index is at:
//
//	http://localhost:12600/debug/pprof/
package statsview

// Address of the stats server.
const Address = "localhost:12600"
