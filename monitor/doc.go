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

// Package monitor implements an interactive command console for the emulation.
// Commands are read a line at a time and operate on the emulation between
// steps. Commands can be abbreviated to any unique prefix.
//
// Commands can also be run from a Lua script with the SCRIPT command.
//
// The console uses the liner package for line editing and history when the
// input is a terminal. Input from a pipe is read without any line editing,
// which allows the monitor to be scripted.
package monitor
