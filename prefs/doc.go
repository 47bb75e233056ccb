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

// Package prefs facilitates the storage of preferential values. Values are of
// a known type (Bool, Int, Float, String) and can be registered with a Disk
// instance for loading from and saving to a file.
//
// The file format is simple. One entry per line with a key and value
// separated by " :: ". The first line of the file is always the
// WarningBoilerPlate string.
//
// Values can be overridden with a string of the form
//
//	key::value; key::value
//
// which is a convenient format for use on the command line. See
// Disk.Override().
package prefs
