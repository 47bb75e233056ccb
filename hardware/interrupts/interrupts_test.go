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

package interrupts_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/test"
)

func TestAsserted(t *testing.T) {
	irq := interrupts.NewInterrupts()
	test.ExpectFailure(t, irq.Asserted())

	irq.Request(interrupts.VBlank)
	test.ExpectFailure(t, irq.Asserted())
	test.ExpectFailure(t, irq.Wake())

	irq.IE = interrupts.VBlank
	test.ExpectFailure(t, irq.Asserted())
	test.ExpectSuccess(t, irq.Wake())

	irq.IME = 1
	test.ExpectSuccess(t, irq.Asserted())
	test.ExpectSuccess(t, irq.IRQ())
	test.ExpectFailure(t, irq.FIQ())
}

func TestWriteToClear(t *testing.T) {
	irq := interrupts.NewInterrupts()
	irq.Request(interrupts.VBlank | interrupts.HBlank | interrupts.IPCSync)

	// a byte write to IF only clears bits in that byte
	test.ExpectSuccess(t, irq.WriteRegister(0x04000214, 0x00000001, 0x000000ff))
	test.ExpectEquality(t, irq.IF, uint32(interrupts.HBlank|interrupts.IPCSync))

	// writing zero has no effect
	test.ExpectSuccess(t, irq.WriteRegister(0x04000214, 0, 0xffffffff))
	test.ExpectEquality(t, irq.IF, uint32(interrupts.HBlank|interrupts.IPCSync))

	test.ExpectSuccess(t, irq.WriteRegister(0x04000214, 0xffffffff, 0xffffffff))
	test.ExpectEquality(t, irq.IF, uint32(0))
}

func TestRegisters(t *testing.T) {
	irq := interrupts.NewInterrupts()

	test.ExpectSuccess(t, irq.WriteRegister(0x04000208, 0xffffffff, 0xffffffff))
	d, ok := irq.ReadRegister(0x04000208)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, uint32(1))

	test.ExpectSuccess(t, irq.WriteRegister(0x04000210, 0x00010001, 0x0000ffff))
	d, _ = irq.ReadRegister(0x04000210)
	test.ExpectEquality(t, d, uint32(0x0001))

	test.ExpectFailure(t, irq.WriteRegister(0x04000218, 0, 0xffffffff))
	_, ok = irq.ReadRegister(0x0400020c)
	test.ExpectFailure(t, ok)
}
