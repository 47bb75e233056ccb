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

// Package paths prepares paths to GopherDS resources, such as the preferences
// file and the default location of savestate files.
//
// The ResourcePath() function returns the path to a file in a sub-directory
// of the resource directory. The sub-directory is created if it does not
// exist. For example, the path to the preferences file is:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// For development builds the resource directory is ".gopherds" in the current
// directory. Release builds (built with the "release" tag) use a "gopherds"
// directory in the user's config directory, as returned by os.UserConfigDir().
package paths
