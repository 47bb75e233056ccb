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

package memory

import (
	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// Sentinal error returned when trying to peek a register that changes state
// when it is read.
const (
	PeekSideEffect = "memory: peeking %08x would change the state of the register"
)

// a word is removed from the receive FIFO when it is read
const addrIPCFIFORecv = 0x04100000

// peek a byte in the IO region. only registers without read side effects can
// be peeked. IO registers cannot be poked
func peekIO(io *IO, address uint32) (uint8, error) {
	if address&^0x03 == addrIPCFIFORecv {
		return 0, curated.Errorf(PeekSideEffect, address)
	}
	if v, ok := io.Read(address, bus.Byte); ok {
		return uint8(v), nil
	}
	return 0, curated.Errorf(bus.AddressError, address)
}
