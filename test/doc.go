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

// Package test contains helper functions to remove common boilerplate from
// the emulation's tests.
//
// ExpectSuccess and ExpectFailure test for success or failure under generic
// conditions: a bool value is a success if it is true and an error value is a
// success if it is nil. The nil type is a success; this is how errors work and
// so it is how the functions treat it.
//
// ExpectEquality compares like-typed values. The type parameter means that
// mismatched types are caught by the compiler rather than at test time.
//
// The Writer type implements the io.Writer interface and should be used to
// capture output. The Writer.Compare() function can then be used to test for
// equality.
package test
