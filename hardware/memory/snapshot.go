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
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
)

// State is a copy of the contents of every memory area and the configuration
// of the memory fabric. It is produced by the Snapshot() function and can be
// restored with the Plumb() function.
type State struct {
	Areas map[string][]uint8
	Banks [vram.NumBanks]vram.Bank

	WRAMCNT   uint8
	EXMEMCNT  uint16
	EXMEMSTAT uint16
	POSTFLG9  uint8
	POSTFLG7  uint8
	KEYCNT    uint16
	TCM       arm.TCMConfig
}

// Snapshot makes a copy of the memory.
func (mem *Memory) Snapshot() *State {
	s := &State{
		Areas:     make(map[string][]uint8),
		WRAMCNT:   mem.WRAMCNT,
		EXMEMCNT:  mem.EXMEMCNT,
		EXMEMSTAT: mem.EXMEMSTAT,
		POSTFLG9:  mem.POSTFLG9,
		POSTFLG7:  mem.POSTFLG7,
		KEYCNT:    mem.KEYCNT,
		TCM:       mem.tcm,
	}

	for _, a := range mem.Areas() {
		s.Areas[a.Label()] = append([]uint8(nil), a.data...)
	}

	for i, b := range mem.VRAM.Banks {
		s.Banks[i] = b
		s.Banks[i].Data = append([]uint8(nil), b.Data...)
	}

	return s
}

// Plumb a previously snapshotted state. The state is copied so the snapshot
// can be reused. The snapshot must have been checked with Validate() if it did
// not come from Snapshot().
func (mem *Memory) Plumb(state *State) {
	if err := mem.Validate(state); err != nil {
		panic(err)
	}

	for _, a := range mem.Areas() {
		copy(a.data, state.Areas[a.Label()])
	}

	for i := range mem.VRAM.Banks {
		b := &mem.VRAM.Banks[i]
		copy(b.Data, state.Banks[i].Data)
		mem.VRAM.SetControl(b.ID, state.Banks[i].Control)
	}

	mem.WRAMCNT = state.WRAMCNT & 0x03
	mem.EXMEMCNT = state.EXMEMCNT
	mem.EXMEMSTAT = state.EXMEMSTAT
	mem.POSTFLG9 = state.POSTFLG9
	mem.POSTFLG7 = state.POSTFLG7
	mem.KEYCNT = state.KEYCNT
	mem.tcm = state.TCM
}
