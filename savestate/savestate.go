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

package savestate

import (
	"encoding/json"
	"io"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/hardware/maths"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
	"github.com/jetsetilly/gopherds/hardware/video"
)

// Sentinal error patterns.
const (
	VersionMismatch = "savestate: version mismatch (file %d, expected %d)"
	InvalidState    = "savestate: %s: %v"
	EncodeError     = "savestate: encoding: %v"
	DecodeError     = "savestate: decoding: %v"
)

// Save the current state of the emulation to the writer.
func Save(w io.Writer, nds *hardware.NDS) error {
	doc := newDocument(nds.Snapshot())

	enc := json.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return curated.Errorf(EncodeError, err)
	}

	nds.Env.Log.Logf(nds.Env, "savestate", "saved at cycle %d", doc.Cycles)
	return nil
}

// Load a document from the reader and apply it to the emulation. The emulation
// is not changed if the document cannot be applied.
func Load(r io.Reader, nds *hardware.NDS) error {
	var doc Document

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return curated.Errorf(DecodeError, err)
	}

	if doc.Version != Version {
		return curated.Errorf(VersionMismatch, doc.Version, Version)
	}

	state, err := doc.state()
	if err != nil {
		return err
	}

	if err := nds.Validate(state); err != nil {
		return curated.Errorf(InvalidState, "memory", err)
	}

	if err := nds.Plumb(state); err != nil {
		return err
	}

	nds.Env.Log.Logf(nds.Env, "savestate", "loaded state at cycle %d", doc.Cycles)
	return nil
}

func newDocument(s *hardware.State) *Document {
	doc := &Document{
		Version: Version,
		Cycles:  s.Cycles,
		ARM9:    newProcessor(s, architecture.ARM9, s.ARM9, s.ARM9IRQ),
		ARM7:    newProcessor(s, architecture.ARM7, s.ARM7, s.ARM7IRQ),
		Maths: Maths{
			DivMode:    uint8(s.Maths.DivMode),
			DivByZero:  s.Maths.DivByZero,
			Numer:      s.Maths.Numer,
			Denom:      s.Maths.Denom,
			Result:     s.Maths.Result,
			Remainder:  s.Maths.Remainder,
			Sqrt64:     s.Maths.Sqrt64,
			SqrtParam:  s.Maths.SqrtParam,
			SqrtResult: s.Maths.SqrtResult,
		},
		Video: Video{
			Frame:        s.Video.Coords.Frame,
			Scanline:     s.Video.Coords.Scanline,
			Clock:        s.Video.Coords.Clock,
			PowerControl: s.Video.PowerControl,
		},
		Memory: Memory{
			Areas:     s.Mem.Areas,
			WRAMCNT:   s.Mem.WRAMCNT,
			EXMEMCNT:  s.Mem.EXMEMCNT,
			EXMEMSTAT: s.Mem.EXMEMSTAT,
			POSTFLG9:  s.Mem.POSTFLG9,
			POSTFLG7:  s.Mem.POSTFLG7,
			KEYCNT:    s.Mem.KEYCNT,
			TCM:       newTCM(s.Mem.TCM),
		},
	}

	for _, e := range s.Video.Engines {
		doc.Video.Engines = append(doc.Video.Engines, Engine{
			Control:   e.Control,
			Registers: append([]byte{}, e.Registers[:]...),
		})
	}

	for _, b := range s.Mem.Banks {
		doc.Memory.VRAM = append(doc.Memory.VRAM, VRAMBank{
			ID:      b.ID.String(),
			Control: b.Control,
			Data:    b.Data,
		})
	}

	return doc
}

func newProcessor(s *hardware.State, core architecture.Core, st *arm.State, irq *interrupts.Interrupts) Processor {
	side := ipc.ARM9
	cpu := video.ARM9
	if core == architecture.ARM7 {
		side = ipc.ARM7
		cpu = video.ARM7
	}

	p := Processor{
		Registers: append([]uint32{}, st.Registers[:]...),
		CPSR:      uint32(st.CPSR),
		FIQHigh:   append([]uint32{}, st.FIQHigh[:]...),
		UserHigh:  append([]uint32{}, st.UserHigh[:]...),
		Controller: Controller{
			State:   int(st.Controller.State),
			Kind:    int(st.Controller.Kind),
			Address: st.Controller.Address,
		},
		Halted: st.Halted,
		Cycles: st.Cycles,
		Interrupts: Interrupts{
			IME: irq.IME,
			IE:  irq.IE,
			IF:  irq.IF,
		},
	}

	for _, b := range st.Banks {
		p.Banks = append(p.Banks, Bank{SP: b.SP, LR: b.LR, SPSR: uint32(b.SPSR)})
	}

	if core == architecture.ARM9 {
		cp := st.CP15
		p.CP15 = &CP15{
			Control:                cp.Control,
			DataCacheable:          cp.DataCacheable,
			InstructionCacheable:   cp.InstructionCacheable,
			WriteBuffer:            cp.WriteBuffer,
			DataPermissions:        cp.DataPermissions,
			InstructionPermissions: cp.InstructionPermissions,
			Regions:                append([]uint32{}, cp.Regions[:]...),
			DataLockdown:           cp.DataLockdown,
			InstructionLockdown:    cp.InstructionLockdown,
			DTCMRegion:             cp.DTCMRegion,
			ITCMRegion:             cp.ITCMRegion,
			ProcessID:              cp.ProcessID,
		}
	}

	r := s.IPC.Sides[side]
	p.IPC = IPC{
		SyncOutput:      r.SyncOutput,
		SyncIRQEnable:   r.SyncIRQEnable,
		SendEmptyIRQ:    r.SendEmptyIRQ,
		RecvNotEmptyIRQ: r.RecvNotEmptyIRQ,
		Error:           r.Error,
		Enabled:         r.Enabled,
		LastRecv:        r.LastRecv,
		Send:            []uint32{},
	}
	for i := 0; i < r.Send.Count; i++ {
		p.IPC.Send = append(p.IPC.Send, r.Send.Words[(r.Send.Head+i)%len(r.Send.Words)])
	}

	d := s.Video.Status[cpu]
	p.DisplayStatus = DisplayStatus{
		VBlankIRQ:     d.VBlankIRQ,
		HBlankIRQ:     d.HBlankIRQ,
		VCountIRQ:     d.VCountIRQ,
		VCountSetting: d.VCountSetting,
	}

	return p
}

// state converts the document to a hardware state. The sizes of every fixed
// length field are checked. The content of the memory areas is checked later
// by the hardware.
func (doc *Document) state() (*hardware.State, error) {
	s := &hardware.State{
		Cycles:  doc.Cycles,
		ARM9IRQ: &interrupts.Interrupts{},
		ARM7IRQ: &interrupts.Interrupts{},
		IPC:     &ipc.IPC{},
		Maths: &maths.Maths{
			DivMode:    maths.DivisionMode(doc.Maths.DivMode & 0x03),
			DivByZero:  doc.Maths.DivByZero,
			Numer:      doc.Maths.Numer,
			Denom:      doc.Maths.Denom,
			Result:     doc.Maths.Result,
			Remainder:  doc.Maths.Remainder,
			Sqrt64:     doc.Maths.Sqrt64,
			SqrtParam:  doc.Maths.SqrtParam,
			SqrtResult: doc.Maths.SqrtResult,
		},
		Video: &video.Video{
			Coords: video.Coords{
				Frame:    doc.Video.Frame,
				Scanline: doc.Video.Scanline,
				Clock:    doc.Video.Clock,
			},
			PowerControl: doc.Video.PowerControl,
		},
		Mem: &memory.State{
			Areas:     doc.Memory.Areas,
			WRAMCNT:   doc.Memory.WRAMCNT,
			EXMEMCNT:  doc.Memory.EXMEMCNT,
			EXMEMSTAT: doc.Memory.EXMEMSTAT,
			POSTFLG9:  doc.Memory.POSTFLG9,
			POSTFLG7:  doc.Memory.POSTFLG7,
			KEYCNT:    doc.Memory.KEYCNT,
			TCM:       doc.Memory.TCM.config(),
		},
	}

	var err error

	s.ARM9, err = doc.ARM9.state(s, architecture.ARM9, s.ARM9IRQ)
	if err != nil {
		return nil, curated.Errorf(InvalidState, "arm9", err)
	}
	s.ARM7, err = doc.ARM7.state(s, architecture.ARM7, s.ARM7IRQ)
	if err != nil {
		return nil, curated.Errorf(InvalidState, "arm7", err)
	}

	if v := doc.Video; v.Scanline < 0 || v.Scanline >= video.Scanlines || v.Clock < 0 || v.Clock >= video.ClksScanline {
		return nil, curated.Errorf(InvalidState, "video", "beam position out of range")
	}

	if len(doc.Video.Engines) != len(s.Video.Engines) {
		return nil, curated.Errorf(InvalidState, "video", "wrong number of engines")
	}
	for i, e := range doc.Video.Engines {
		eng := &s.Video.Engines[i]
		if len(e.Registers) != len(eng.Registers) {
			return nil, curated.Errorf(InvalidState, "video", "engine register block is the wrong size")
		}
		eng.Label = string(rune('A' + i))
		eng.Control = e.Control
		copy(eng.Registers[:], e.Registers)
	}

	if len(doc.Memory.VRAM) != len(s.Mem.Banks) {
		return nil, curated.Errorf(InvalidState, "vram", "wrong number of banks")
	}
	for i, b := range doc.Memory.VRAM {
		id := vram.BankID(i)
		if b.ID != id.String() {
			return nil, curated.Errorf(InvalidState, "vram", "banks out of order")
		}
		s.Mem.Banks[i] = vram.Bank{
			ID:      id,
			Control: b.Control,
			Data:    b.Data,
		}
	}

	return s, nil
}

func (p *Processor) state(s *hardware.State, core architecture.Core, irq *interrupts.Interrupts) (*arm.State, error) {
	st := &arm.State{}

	if len(p.Registers) != len(st.Registers) {
		return nil, curated.Errorf("wrong number of registers")
	}
	if len(p.Banks) != len(st.Banks) {
		return nil, curated.Errorf("wrong number of banks")
	}
	if len(p.FIQHigh) != len(st.FIQHigh) || len(p.UserHigh) != len(st.UserHigh) {
		return nil, curated.Errorf("wrong number of high registers")
	}

	st.CPSR = arm.Status(p.CPSR)
	if !st.CPSR.Mode().Valid() {
		return nil, curated.Errorf("CPSR mode %05b is not valid", uint32(st.CPSR.Mode()))
	}

	copy(st.Registers[:], p.Registers)
	copy(st.FIQHigh[:], p.FIQHigh)
	copy(st.UserHigh[:], p.UserHigh)
	for i, b := range p.Banks {
		st.Banks[i] = arm.Bank{SP: b.SP, LR: b.LR, SPSR: arm.Status(b.SPSR)}
	}

	if p.Controller.State < int(arm.Running) || p.Controller.State > int(arm.Entering) {
		return nil, curated.Errorf("exception controller state %d is not valid", p.Controller.State)
	}
	if p.Controller.Kind < int(arm.ExceptionNone) || p.Controller.Kind > int(arm.ExceptionFIQ) {
		return nil, curated.Errorf("exception kind %d is not valid", p.Controller.Kind)
	}
	st.Controller = arm.Controller{
		State:   arm.ControllerState(p.Controller.State),
		Kind:    arm.Exception(p.Controller.Kind),
		Address: p.Controller.Address,
	}
	st.Halted = p.Halted
	st.Cycles = p.Cycles

	if core == architecture.ARM9 {
		if p.CP15 == nil {
			return nil, curated.Errorf("no CP15 state")
		}
		if len(p.CP15.Regions) != len(st.CP15.Regions) {
			return nil, curated.Errorf("wrong number of protection regions")
		}
		st.CP15 = arm.CP15{
			Control:                p.CP15.Control,
			DataCacheable:          p.CP15.DataCacheable,
			InstructionCacheable:   p.CP15.InstructionCacheable,
			WriteBuffer:            p.CP15.WriteBuffer,
			DataPermissions:        p.CP15.DataPermissions,
			InstructionPermissions: p.CP15.InstructionPermissions,
			DataLockdown:           p.CP15.DataLockdown,
			InstructionLockdown:    p.CP15.InstructionLockdown,
			DTCMRegion:             p.CP15.DTCMRegion,
			ITCMRegion:             p.CP15.ITCMRegion,
			ProcessID:              p.CP15.ProcessID,
		}
		copy(st.CP15.Regions[:], p.CP15.Regions)
	}

	irq.IME = p.Interrupts.IME & 0x01
	irq.IE = p.Interrupts.IE
	irq.IF = p.Interrupts.IF

	side := ipc.ARM9
	cpu := video.ARM9
	if core == architecture.ARM7 {
		side = ipc.ARM7
		cpu = video.ARM7
	}

	r := &s.IPC.Sides[side]
	if len(p.IPC.Send) > len(r.Send.Words) {
		return nil, curated.Errorf("IPC send FIFO has %d words", len(p.IPC.Send))
	}
	*r = ipc.Registers{
		SyncOutput:      p.IPC.SyncOutput & 0x0f,
		SyncIRQEnable:   p.IPC.SyncIRQEnable,
		SendEmptyIRQ:    p.IPC.SendEmptyIRQ,
		RecvNotEmptyIRQ: p.IPC.RecvNotEmptyIRQ,
		Error:           p.IPC.Error,
		Enabled:         p.IPC.Enabled,
		LastRecv:        p.IPC.LastRecv,
	}
	copy(r.Send.Words[:], p.IPC.Send)
	r.Send.Count = len(p.IPC.Send)

	s.Video.Status[cpu] = video.DisplayStatus{
		VBlankIRQ:     p.DisplayStatus.VBlankIRQ,
		HBlankIRQ:     p.DisplayStatus.HBlankIRQ,
		VCountIRQ:     p.DisplayStatus.VCountIRQ,
		VCountSetting: p.DisplayStatus.VCountSetting & 0x1ff,
	}

	return st, nil
}
