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

package logger

// Permission is satisfied by anything that can decide whether a log request
// should create an entry. Each emulation environment is a Permission, so a
// quiet environment can run the same emulation code as the main environment
// without filling the log.
type Permission interface {
	AllowLogging() bool
}

// fixed is a Permission that does not depend on an environment.
type fixed bool

func (p fixed) AllowLogging() bool {
	return bool(p)
}

// Allow always permits logging. Use it for requests that are not made on
// behalf of an emulation, such as command line and monitor messages.
var Allow Permission = fixed(true)

// Deny never permits logging.
var Deny Permission = fixed(false)
