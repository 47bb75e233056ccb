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

// InterruptLines is the connection between the ARM and the interrupt
// controller for that ARM.
type InterruptLines interface {
	// IRQ returns true if the interrupt request line is asserted
	IRQ() bool

	// FIQ returns true if the fast interrupt request line is asserted
	FIQ() bool

	// Wake returns true if any enabled interrupt has been flagged. a halted
	// processor is woken by this condition regardless of the master enable
	Wake() bool
}

// TCMConfig describes the tightly coupled memory configuration as set by the
// CP15 coprocessor.
type TCMConfig struct {
	ITCMEnabled  bool
	ITCMLoadMode bool
	ITCMSize     uint32

	DTCMEnabled  bool
	DTCMLoadMode bool
	DTCMBase     uint32
	DTCMSize     uint32
}

// TCM is implemented by the memory fabric of the ARM9. The configuration is
// pushed whenever the relevant CP15 registers are written to.
type TCM interface {
	ConfigureTCM(cfg TCMConfig)
}

// Disassembler receives a DisasmEntry for every instruction executed.
type Disassembler interface {
	Step(e DisasmEntry)
}
