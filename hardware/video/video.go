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

package video

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
)

// Requester is implemented by the interrupt registers of a processor.
type Requester interface {
	Request(bits uint32)
}

// CPU identifies one of the two processors.
type CPU int

// List of valid CPU values.
const (
	ARM9 CPU = iota
	ARM7
)

func (c CPU) String() string {
	if c == ARM9 {
		return "ARM9"
	}
	return "ARM7"
}

// register addresses
const (
	addrEngineA   = 0x04000000
	addrEngineB   = 0x04001000
	addrDispStat  = 0x04000004
	addrPowerCnt1 = 0x04000304

	// the register block following DISPCNT. offsets from the engine base
	blockStart = 0x08
	blockEnd   = 0x70
)

// DisplayStatus is the DISPSTAT register of a processor. The flag bits are not
// stored and are derived from the scanline counter when the register is read.
type DisplayStatus struct {
	VBlankIRQ     bool
	HBlankIRQ     bool
	VCountIRQ     bool
	VCountSetting uint16
}

func (ds DisplayStatus) value(c Coords) uint32 {
	var v uint32
	if c.InVBlank() {
		v |= 0x0001
	}
	if c.InHBlank() {
		v |= 0x0002
	}
	if c.Scanline == int(ds.VCountSetting) {
		v |= 0x0004
	}
	if ds.VBlankIRQ {
		v |= 0x0008
	}
	if ds.HBlankIRQ {
		v |= 0x0010
	}
	if ds.VCountIRQ {
		v |= 0x0020
	}
	v |= uint32(ds.VCountSetting&0x100) >> 1
	v |= uint32(ds.VCountSetting&0xff) << 8
	return v
}

// Video is the state of the display registers.
type Video struct {
	env *environment.Environment
	irq [2]Requester

	Coords  Coords
	Engines [2]Engine
	Status  [2]DisplayStatus

	// POWCNT1. only the documented bits are stored
	PowerControl uint32
}

// NewVideo is the preferred method of initialisation for the Video type. The
// requesters are the interrupt registers of the ARM9 and ARM7.
func NewVideo(env *environment.Environment, arm9 Requester, arm7 Requester) *Video {
	vid := &Video{
		env: env,
		irq: [2]Requester{arm9, arm7},
	}
	vid.Reset()
	return vid
}

// Reset the display registers and the scanline counter.
func (vid *Video) Reset() {
	vid.Coords = Coords{}
	vid.Engines = [2]Engine{{Label: "A"}, {Label: "B"}}
	vid.Status = [2]DisplayStatus{}
	vid.PowerControl = 0
}

func (vid *Video) String() string {
	s := strings.Builder{}
	s.WriteString(vid.Coords.String())
	for _, e := range vid.Engines {
		s.WriteString(fmt.Sprintf("\n%s", e))
	}
	s.WriteString(fmt.Sprintf("\nPOWCNT1: %04x", vid.PowerControl))
	return s.String()
}

// Snapshot makes a copy of the display registers.
func (vid *Video) Snapshot() *Video {
	n := *vid
	return &n
}

// Plumb the display registers from an earlier snapshot. The snapshot may have
// come from a different emulation.
func (vid *Video) Plumb(state *Video) {
	vid.Coords = state.Coords
	vid.Engines = state.Engines
	vid.Status = state.Status
	vid.PowerControl = state.PowerControl
}

// Step the scanline counter by the number of ARM7 cycles. Interrupts are
// requested as the counter crosses the start of the HBlank, the start of
// VBlank and the start of the scanline matching each processor's VCount
// setting.
func (vid *Video) Step(cycles int) {
	for cycles > 0 {
		// advance to the next event or to the end of the budget, whichever is
		// sooner
		var next int
		if vid.Coords.Clock < ClksHBlank {
			next = ClksHBlank
		} else {
			next = ClksScanline
		}

		n := next - vid.Coords.Clock
		if n > cycles {
			vid.Coords.Clock += cycles
			return
		}
		cycles -= n
		vid.Coords.Clock = next

		if next == ClksHBlank {
			vid.hblank()
		} else {
			vid.newScanline()
		}
	}
}

func (vid *Video) hblank() {
	for cpu := range vid.Status {
		if vid.Status[cpu].HBlankIRQ {
			vid.request(CPU(cpu), interrupts.HBlank)
		}
	}
}

func (vid *Video) newScanline() {
	vid.Coords.Clock = 0
	vid.Coords.Scanline++
	if vid.Coords.Scanline >= Scanlines {
		vid.Coords.Scanline = 0
		vid.Coords.Frame++
	}

	for cpu := range vid.Status {
		st := &vid.Status[cpu]
		if vid.Coords.Scanline == VisibleLines && st.VBlankIRQ {
			vid.request(CPU(cpu), interrupts.VBlank)
		}
		if vid.Coords.Scanline == int(st.VCountSetting) && st.VCountIRQ {
			vid.request(CPU(cpu), interrupts.VCount)
		}
	}
}

func (vid *Video) request(cpu CPU, bits uint32) {
	if vid.irq[cpu] != nil {
		vid.irq[cpu].Request(bits)
	}
}

// Port returns the view of the display registers for one of the processors.
// The ARM7 sees only its own DISPSTAT and the VCOUNT register.
func (vid *Video) Port(cpu CPU) Port {
	return Port{vid: vid, cpu: cpu}
}

// Port is the view of the display registers seen by a single processor.
type Port struct {
	vid *Video
	cpu CPU
}

// ReadRegister reads the display registers. The address is word aligned.
func (p Port) ReadRegister(address uint32) (uint32, bool) {
	vid := p.vid

	if address == addrDispStat {
		v := vid.Status[p.cpu].value(vid.Coords)
		v |= uint32(vid.Coords.Scanline) << 16
		return v, true
	}

	if p.cpu != ARM9 {
		return 0, false
	}

	if address == addrPowerCnt1 {
		return vid.PowerControl, true
	}

	if e, offset, ok := p.engine(address); ok {
		return e.read(offset), true
	}

	return 0, false
}

// WriteRegister writes the display registers. The address is word aligned and
// the mask selects the bytes that are written. VCOUNT is read only.
func (p Port) WriteRegister(address uint32, value uint32, mask uint32) bool {
	vid := p.vid

	if address == addrDispStat {
		st := &vid.Status[p.cpu]
		if mask&0x000000ff != 0 {
			st.VBlankIRQ = value&0x0008 != 0
			st.HBlankIRQ = value&0x0010 != 0
			st.VCountIRQ = value&0x0020 != 0
			st.VCountSetting = (st.VCountSetting & 0x00ff) | uint16(value&0x0080)<<1
		}
		if mask&0x0000ff00 != 0 {
			st.VCountSetting = (st.VCountSetting & 0x0100) | uint16(value>>8)&0x00ff
		}
		return true
	}

	if p.cpu != ARM9 {
		return false
	}

	if address == addrPowerCnt1 {
		vid.PowerControl = (vid.PowerControl &^ mask) | (value & mask & powerControlMask)
		return true
	}

	if e, offset, ok := p.engine(address); ok {
		e.write(offset, value, mask)
		return true
	}

	return false
}

// the engine and offset for an address. DISPSTAT is excluded by the caller
func (p Port) engine(address uint32) (*Engine, uint32, bool) {
	var e *Engine
	switch address & 0xfffff000 {
	case addrEngineA:
		e = &p.vid.Engines[0]
	case addrEngineB:
		e = &p.vid.Engines[1]
	default:
		return nil, 0, false
	}

	offset := address & 0xfff
	if offset == 0 || (offset >= blockStart && offset < blockEnd) {
		return e, offset, true
	}
	return nil, 0, false
}

// Power control bits.
const (
	PowerLCD      = 0x0001
	Power2DA      = 0x0002
	PowerRender3D = 0x0004
	PowerGeometry = 0x0008
	Power2DB      = 0x0200
	PowerSwap     = 0x8000

	powerControlMask = PowerLCD | Power2DA | PowerRender3D | PowerGeometry | Power2DB | PowerSwap
)
