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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The pattern given to
// Errorf() is retained and can later be tested for with the Is() and Has()
// functions.
//
// Packages that create curated errors export their patterns as string
// constants so that callers can test for them without comparing formatted
// messages.
//
//	const CannotRead = "cannot read: %v"
//	err := curated.Errorf(CannotRead, 0x04000000)
//
//	if curated.Is(err, CannotRead) {
//		...
//	}
//
// Has() differs from Is() in that it looks through the chain of curated
// errors given as values to Errorf().
//
//	e := curated.Errorf(CannotRead, 0x04000000)
//	f := curated.Errorf("savestate: %v", e)
//
//	curated.Has(f, CannotRead) == true
//	curated.Is(f, CannotRead) == false
//
// When a curated error is formatted, repeated leading parts of the message are
// collapsed. "savestate: savestate: version" becomes "savestate: version".
package curated
