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

// Package savestate saves and restores the state of the emulation as a JSON
// document. The document is versioned and the field names are stable.
//
// A document is decoded and validated in full before any state is applied to
// the emulation. A document that cannot be applied leaves the emulation
// untouched.
//
// The cartridge is not part of the document. Loading a document into an
// emulation with a different cartridge attached produces a state that is
// unlikely to be useful.
package savestate
