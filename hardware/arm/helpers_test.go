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

package arm

import (
	"testing"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// mockMem is a sparse memory that implements the bus.CPUBus interface.
type mockMem struct {
	internal map[uint32]uint8
}

func newMockMem() *mockMem {
	return &mockMem{internal: make(map[uint32]uint8)}
}

func (mem *mockMem) Read(address uint32, width bus.Width) uint32 {
	address = width.Align(address)
	var v uint32
	for i := 0; i < int(width); i++ {
		v |= uint32(mem.internal[address+uint32(i)]) << (i * 8)
	}
	return v
}

func (mem *mockMem) Write(address uint32, width bus.Width, value uint32) {
	address = width.Align(address)
	for i := 0; i < int(width); i++ {
		mem.internal[address+uint32(i)] = uint8(value >> (i * 8))
	}
}

// putARM writes a sequence of ARM instructions starting at origin.
func (mem *mockMem) putARM(origin uint32, opcodes ...uint32) {
	for i, o := range opcodes {
		mem.Write(origin+uint32(i)*4, bus.Word, o)
	}
}

// putThumb writes a sequence of Thumb instructions starting at origin.
func (mem *mockMem) putThumb(origin uint32, opcodes ...uint16) {
	for i, o := range opcodes {
		mem.Write(origin+uint32(i)*2, bus.Halfword, uint32(o))
	}
}

func (mem *mockMem) assert(t *testing.T, address uint32, value uint32) {
	t.Helper()
	d := mem.Read(address, bus.Word)
	if d != value {
		t.Errorf("memory assertion failed (%08x - wanted %08x at address %08x)", d, value, address)
	}
}

// mockLines implements the InterruptLines interface.
type mockLines struct {
	irq  bool
	fiq  bool
	wake bool
}

func (l *mockLines) IRQ() bool  { return l.irq }
func (l *mockLines) FIQ() bool  { return l.fiq }
func (l *mockLines) Wake() bool { return l.wake }

// the origin of test programs
const origin = 0x02000000

func newTestARM(t *testing.T, core architecture.Core) (*ARM, *mockMem, *mockLines) {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	mem := newMockMem()
	lines := &mockLines{}
	arm := NewARM(env, architecture.NewMap(core), mem, lines)
	arm.SetRegister(rPC, origin)
	return arm, mem, lines
}

// enterThumb switches the ARM to the Thumb instruction set with the PC at the
// test origin.
func enterThumb(arm *ARM) {
	arm.state.CPSR.setThumb(true)
	arm.SetRegister(rPC, origin)
}

func step(arm *ARM, n int) {
	for i := 0; i < n; i++ {
		arm.Step()
	}
}
