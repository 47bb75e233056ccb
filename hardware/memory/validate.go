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
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
)

// Sentinal error patterns returned by Validate().
const (
	MissingArea  = "memory: state has no data for %s"
	AreaSize     = "memory: state for %s is %d bytes, expected %d"
	BankSize     = "memory: state for VRAM bank %s is %d bytes, expected %d"
	BankIdentity = "memory: state for VRAM bank %s has identity %s"
)

// Validate checks that a State is suitable for plumbing into the memory. Every
// memory area and VRAM bank must be present and of the correct size.
func (mem *Memory) Validate(state *State) error {
	for _, a := range mem.Areas() {
		d, ok := state.Areas[a.Label()]
		if !ok {
			return curated.Errorf(MissingArea, a.Label())
		}
		if len(d) != len(a.data) {
			return curated.Errorf(AreaSize, a.Label(), len(d), len(a.data))
		}
	}

	for i := range mem.VRAM.Banks {
		b := &mem.VRAM.Banks[i]
		s := &state.Banks[i]
		if s.ID != vram.BankID(i) {
			return curated.Errorf(BankIdentity, b.ID, s.ID)
		}
		if len(s.Data) != len(b.Data) {
			return curated.Errorf(BankSize, b.ID, len(s.Data), len(b.Data))
		}
	}

	return nil
}
