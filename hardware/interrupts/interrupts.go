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

package interrupts

import (
	"fmt"
	"strings"
)

// Interrupt bits as used by the IE and IF registers.
const (
	VBlank          = 1 << 0
	HBlank          = 1 << 1
	VCount          = 1 << 2
	Timer0          = 1 << 3
	Timer1          = 1 << 4
	Timer2          = 1 << 5
	Timer3          = 1 << 6
	DMA0            = 1 << 8
	DMA1            = 1 << 9
	DMA2            = 1 << 10
	DMA3            = 1 << 11
	Keypad          = 1 << 12
	IPCSync         = 1 << 16
	IPCSendEmpty    = 1 << 17
	IPCRecvNotEmpty = 1 << 18
	CardTransfer    = 1 << 19
	GeometryFIFO    = 1 << 21
)

// register addresses. the same for both processors
const (
	addrIME = 0x04000208
	addrIE  = 0x04000210
	addrIF  = 0x04000214
)

// Interrupts is the interrupt state of a single processor.
type Interrupts struct {
	// only bit zero of IME is significant
	IME uint32
	IE  uint32
	IF  uint32
}

// NewInterrupts is the preferred method of initialisation for the Interrupts
// type.
func NewInterrupts() *Interrupts {
	return &Interrupts{}
}

func (irq *Interrupts) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("IME: %d  IE: %08x  IF: %08x", irq.IME&0x01, irq.IE, irq.IF))
	if irq.Asserted() {
		s.WriteString(" (asserted)")
	}
	return s.String()
}

// Reset the registers to zero.
func (irq *Interrupts) Reset() {
	*irq = Interrupts{}
}

// Request sets the bits in the IF register. The bits are set whether or not
// they are enabled in the IE register.
func (irq *Interrupts) Request(bits uint32) {
	irq.IF |= bits
}

// Asserted returns true if the interrupt line to the processor is asserted.
func (irq *Interrupts) Asserted() bool {
	return irq.IME&0x01 == 0x01 && irq.IE&irq.IF != 0
}

// IRQ implements the arm.InterruptLines interface.
func (irq *Interrupts) IRQ() bool {
	return irq.Asserted()
}

// FIQ implements the arm.InterruptLines interface. The fast interrupt line is
// not connected.
func (irq *Interrupts) FIQ() bool {
	return false
}

// Wake implements the arm.InterruptLines interface. A halted processor wakes
// when an enabled interrupt is flagged regardless of the master enable.
func (irq *Interrupts) Wake() bool {
	return irq.IE&irq.IF != 0
}

// ReadRegister reads the interrupt registers. The address is word aligned.
func (irq *Interrupts) ReadRegister(address uint32) (uint32, bool) {
	switch address {
	case addrIME:
		return irq.IME & 0x01, true
	case addrIE:
		return irq.IE, true
	case addrIF:
		return irq.IF, true
	}
	return 0, false
}

// WriteRegister writes the interrupt registers. The address is word aligned
// and the mask selects the bytes that are written. Writing a one to a bit of
// the IF register clears that bit.
func (irq *Interrupts) WriteRegister(address uint32, value uint32, mask uint32) bool {
	switch address {
	case addrIME:
		irq.IME = (irq.IME &^ mask) | (value & mask & 0x01)
	case addrIE:
		irq.IE = (irq.IE &^ mask) | (value & mask)
	case addrIF:
		irq.IF &^= value & mask
	default:
		return false
	}
	return true
}

// Snapshot makes a copy of the interrupt registers.
func (irq *Interrupts) Snapshot() *Interrupts {
	n := *irq
	return &n
}

// Plumb the registers from an earlier snapshot.
func (irq *Interrupts) Plumb(state *Interrupts) {
	*irq = *state
}
