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

// Package logger is the diagnostic log used by every part of the emulation.
//
// Unlike a process-wide log, a Logger instance is created alongside the
// emulation (see the environment package) and is handed to each component
// that needs to report something. When the emulation is discarded, so is the
// log.
//
// Log entries are tagged. Consecutive entries with identical tag and detail
// are collapsed into a single entry with a repeat count.
//
// Logging is gated by the Permission interface. Components pass their
// environment (or logger.Allow) with every log request.
package logger
