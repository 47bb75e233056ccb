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

package inspect

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/hardware/maths"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
	"github.com/jetsetilly/gopherds/hardware/video"
)

// bank is a VRAM bank without its contents
type bank struct {
	ID      string
	Control uint8
	Enabled bool
	Target  string
	Start   uint32
}

type processor struct {
	State      *arm.State
	Interrupts *interrupts.Interrupts
	IPC        *ipc.Registers
}

// graph is the state of the emulation without the contents of memory, which
// would swamp the graph
type graph struct {
	ARM9  processor
	ARM7  processor
	Maths *maths.Maths
	Video struct {
		Coords       video.Coords
		Engines      [2]video.Engine
		Status       [2]video.DisplayStatus
		PowerControl uint32
	}
	VRAM    [vram.NumBanks]bank
	WRAMCNT uint8
	TCM     arm.TCMConfig
}

// Graph writes a graph of the emulation state to the writer in the DOT
// language. The contents of the memory areas are not included.
func (ins *Inspector) Graph(w io.Writer) {
	s := ins.nds.Snapshot()

	g := &graph{
		ARM9:    processor{State: s.ARM9, Interrupts: s.ARM9IRQ, IPC: &s.IPC.Sides[ipc.ARM9]},
		ARM7:    processor{State: s.ARM7, Interrupts: s.ARM7IRQ, IPC: &s.IPC.Sides[ipc.ARM7]},
		Maths:   s.Maths,
		WRAMCNT: s.Mem.WRAMCNT,
		TCM:     s.Mem.TCM,
	}

	g.Video.Coords = s.Video.Coords
	g.Video.Engines = s.Video.Engines
	g.Video.Status = s.Video.Status
	g.Video.PowerControl = s.Video.PowerControl

	for i, b := range s.Mem.Banks {
		g.VRAM[i] = bank{
			ID:      b.ID.String(),
			Control: b.Control,
			Enabled: b.Enabled,
			Target:  b.Target.String(),
			Start:   b.Start,
		}
	}

	memviz.Map(w, g)
}
