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

import "fmt"

// Exception kinds.
type Exception int

// List of valid Exception values. ExceptionNone is returned by execution
// functions that complete normally.
const (
	ExceptionNone Exception = iota
	ExceptionReset
	ExceptionUndefined
	ExceptionSWI
	ExceptionPrefetchAbort
	ExceptionDataAbort
	ExceptionIRQ
	ExceptionFIQ
)

func (e Exception) String() string {
	switch e {
	case ExceptionNone:
		return "none"
	case ExceptionReset:
		return "reset"
	case ExceptionUndefined:
		return "undefined instruction"
	case ExceptionSWI:
		return "software interrupt"
	case ExceptionPrefetchAbort:
		return "prefetch abort"
	case ExceptionDataAbort:
		return "data abort"
	case ExceptionIRQ:
		return "IRQ"
	case ExceptionFIQ:
		return "FIQ"
	}
	return fmt.Sprintf("unknown exception (%d)", int(e))
}

// the processor mode entered for each exception kind.
func (e Exception) mode() Mode {
	switch e {
	case ExceptionReset, ExceptionSWI:
		return ModeSupervisor
	case ExceptionUndefined:
		return ModeUndefined
	case ExceptionPrefetchAbort, ExceptionDataAbort:
		return ModeAbort
	case ExceptionIRQ:
		return ModeIRQ
	case ExceptionFIQ:
		return ModeFIQ
	}
	panic("arm: no mode for exception " + e.String())
}

// the offset of the exception vector from the vector base.
func (e Exception) vector() uint32 {
	switch e {
	case ExceptionReset:
		return 0x00
	case ExceptionUndefined:
		return 0x04
	case ExceptionSWI:
		return 0x08
	case ExceptionPrefetchAbort:
		return 0x0c
	case ExceptionDataAbort:
		return 0x10
	case ExceptionIRQ:
		return 0x18
	case ExceptionFIQ:
		return 0x1c
	}
	panic("arm: no vector for exception " + e.String())
}

// the value added to the exception address to form the return address stored
// in the link register. the exception address is the address of the
// instruction that caused the exception, or for interrupts, the address of the
// next instruction to be executed.
func (e Exception) returnOffset(thumb bool) uint32 {
	switch e {
	case ExceptionUndefined, ExceptionSWI:
		if thumb {
			return 2
		}
		return 4
	case ExceptionDataAbort:
		return 8
	case ExceptionReset:
		return 0
	}
	return 4
}

// priority of the exception when more than one is pending. higher values
// take precedence.
func (e Exception) priority() int {
	switch e {
	case ExceptionReset:
		return 6
	case ExceptionDataAbort:
		return 5
	case ExceptionFIQ:
		return 4
	case ExceptionIRQ:
		return 3
	case ExceptionPrefetchAbort:
		return 2
	case ExceptionUndefined, ExceptionSWI:
		return 1
	}
	return 0
}

// ControllerState is the state of the exception controller.
type ControllerState int

// List of valid ControllerState values.
const (
	Running ControllerState = iota
	ExceptionPending
	Entering
)

func (s ControllerState) String() string {
	switch s {
	case Running:
		return "running"
	case ExceptionPending:
		return "exception pending"
	case Entering:
		return "entering exception"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Controller is the exception controller of the ARM.
type Controller struct {
	State ControllerState

	// the kind of exception being sequenced and the address that the return
	// offset is added to
	Kind    Exception
	Address uint32
}

func (c Controller) String() string {
	if c.State == Running {
		return c.State.String()
	}
	return fmt.Sprintf("%s: %s", c.State, c.Kind)
}

// Controller returns the current state of the exception controller.
func (arm *ARM) Controller() Controller {
	return arm.state.Controller
}

// RaiseException requests an exception. The exception is sequenced at the
// start of the next call to Step(). The exception address is the address of
// the next instruction.
func (arm *ARM) RaiseException(kind Exception) {
	arm.raise(kind, arm.state.Registers[rPC])
}

func (arm *ARM) raise(kind Exception, addr uint32) {
	c := &arm.state.Controller
	if c.State == ExceptionPending && c.Kind.priority() >= kind.priority() {
		return
	}
	c.State = ExceptionPending
	c.Kind = kind
	c.Address = addr
}

// VectorBase returns the current base address of the exception vectors.
func (arm *ARM) VectorBase() uint32 {
	if arm.mmap.HasCP15 && arm.state.CP15.highVectors() {
		return arm.mmap.HighVectorBase
	}
	return arm.mmap.VectorBase
}

// enterException performs the entry sequence for the pending exception.
func (arm *ARM) enterException() {
	st := arm.state
	c := &st.Controller
	if c.State != ExceptionPending {
		return
	}
	c.State = Entering

	kind := c.Kind
	cpsr := st.CPSR
	m := kind.mode()

	arm.switchBank(m)
	st.Banks[m.bank()].SPSR = cpsr
	st.Registers[rLR] = c.Address + kind.returnOffset(cpsr.Thumb())

	n := (cpsr &^ (statusMode | statusThumb)) | Status(m) | statusIRQDisable
	if kind == ExceptionReset || kind == ExceptionFIQ {
		n |= statusFIQDisable
	}
	st.CPSR = n
	st.Registers[rPC] = arm.VectorBase() + kind.vector()

	c.State = Running
	c.Kind = ExceptionNone
	c.Address = 0
}
