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

package hardware

import (
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/hardware/maths"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/hardware/video"
)

// State stores the state of every sub-system. It is produced by the
// Snapshot() function and can be restored with the Plumb() function.
//
// The cartridge is not part of the state.
type State struct {
	Cycles uint64

	ARM9    *arm.State
	ARM7    *arm.State
	ARM9IRQ *interrupts.Interrupts
	ARM7IRQ *interrupts.Interrupts
	IPC     *ipc.IPC
	Maths   *maths.Maths
	Video   *video.Video
	Mem     *memory.State
}

// Snapshot the state of the sub-systems. The snapshot is taken between
// steps.
func (nds *NDS) Snapshot() *State {
	nds.crit.Lock()
	defer nds.crit.Unlock()

	return &State{
		Cycles:  nds.cycles,
		ARM9:    nds.ARM9.Snapshot(),
		ARM7:    nds.ARM7.Snapshot(),
		ARM9IRQ: nds.ARM9IRQ.Snapshot(),
		ARM7IRQ: nds.ARM7IRQ.Snapshot(),
		IPC:     nds.IPC.Snapshot(),
		Maths:   nds.Maths.Snapshot(),
		Video:   nds.Video.Snapshot(),
		Mem:     nds.Mem.Snapshot(),
	}
}

// Validate checks that a State is suitable for plumbing.
func (nds *NDS) Validate(state *State) error {
	return nds.Mem.Validate(state.Mem)
}

// Plumb a previously snapshotted state. The state may have come from a
// different emulation. The state is copied so that the snapshot can be reused.
func (nds *NDS) Plumb(state *State) error {
	if state == nil {
		panic("hardware: cannot plumb in a nil state")
	}

	nds.crit.Lock()
	defer nds.crit.Unlock()

	if err := nds.Mem.Validate(state.Mem); err != nil {
		return err
	}

	nds.cycles = state.Cycles
	nds.Mem.Plumb(state.Mem)
	nds.ARM9IRQ.Plumb(state.ARM9IRQ)
	nds.ARM7IRQ.Plumb(state.ARM7IRQ)
	nds.IPC.Plumb(state.IPC)
	nds.Maths.Plumb(state.Maths)
	nds.Video.Plumb(state.Video)

	// processors last. the ARM9 will push its TCM configuration to the memory
	nds.ARM9.Plumb(state.ARM9.Snapshot())
	nds.ARM7.Plumb(state.ARM7.Snapshot())

	return nil
}
