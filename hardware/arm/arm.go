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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// reset value of the CPSR. supervisor mode with interrupts disabled
const resetCPSR = Status(ModeSupervisor) | statusIRQDisable | statusFIQDisable

// ARM implements one of the two ARM cores.
type ARM struct {
	env   *environment.Environment
	mmap  architecture.Map
	mem   bus.CPUBus
	lines InterruptLines
	tcm   TCM

	// state of the ARM. saveable and restorable
	state *State

	// the address and opcode of the instruction being executed
	instructionPC uint32
	opcode        uint32

	// whether the instruction being executed has written to R15
	branched bool

	// interface to an optional disassembler and the entry being prepared for
	// it. the entry is only filled in if disasm is not nil
	disasm      Disassembler
	disasmEntry DisasmEntry
}

// NewARM is the preferred method of initialisation for the ARM type. The
// InterruptLines argument can be nil, in which case the ARM never sees an
// interrupt request.
func NewARM(env *environment.Environment, mmap architecture.Map, mem bus.CPUBus, lines InterruptLines) *ARM {
	arm := &ARM{
		env:   env,
		mmap:  mmap,
		mem:   mem,
		lines: lines,
		state: &State{},
	}
	arm.Reset()
	return arm
}

func (arm *ARM) String() string {
	s := strings.Builder{}
	for i, r := range arm.state.Registers {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString("\t\t")
			}
		}
		s.WriteString(fmt.Sprintf("R%-2d: %08x", i, r))
	}
	s.WriteString(fmt.Sprintf("\nCPSR: %08x  %s", uint32(arm.state.CPSR), arm.state.CPSR))
	if spsr, err := arm.SPSR(); err == nil {
		s.WriteString(fmt.Sprintf("\nSPSR: %08x  %s", uint32(spsr), spsr))
	}
	if arm.state.Halted {
		s.WriteString("\nhalted")
	}
	return s.String()
}

// Label returns the name of the core.
func (arm *ARM) Label() string {
	return string(arm.mmap.Core)
}

// Architecture returns the architecture map of the ARM.
func (arm *ARM) Architecture() architecture.Map {
	return arm.mmap
}

// SetTCM connects the tightly coupled memory. The current configuration is
// pushed to the TCM immediately.
func (arm *ARM) SetTCM(tcm TCM) {
	arm.tcm = tcm
	arm.pushTCM()
}

// SetDisassembler attaches a disassembler. A value of nil detaches the
// current disassembler.
func (arm *ARM) SetDisassembler(disasm Disassembler) {
	arm.disasm = disasm
}

// Snapshot makes a copy of the ARM state.
func (arm *ARM) Snapshot() *State {
	return arm.state.Snapshot()
}

// Plumb a new state into the ARM. The state must have come from an earlier
// call to Snapshot().
func (arm *ARM) Plumb(state *State) {
	arm.state = state
	arm.pushTCM()
}

// Reset the ARM to its power on state.
func (arm *ARM) Reset() {
	*arm.state = State{}
	arm.state.CPSR = resetCPSR
	arm.state.Registers[rPC] = arm.mmap.ResetPC

	if arm.mmap.HasCP15 {
		arm.state.CP15.reset(arm.env.Prefs.HighVectors.Get().(bool))
		arm.pushTCM()
	}
}

// DirectBoot prepares the ARM for execution of a program without running the
// boot code. The stack pointers for system, IRQ and supervisor modes are set
// to the values set by the boot code and the processor is left in system
// mode.
func (arm *ARM) DirectBoot(entry uint32) {
	arm.EnterMode(ModeIRQ)
	arm.state.Registers[rSP] = arm.mmap.BootStackIRQ
	arm.EnterMode(ModeSupervisor)
	arm.state.Registers[rSP] = arm.mmap.BootStackSupervisor
	arm.EnterMode(ModeSystem)
	arm.state.Registers[rSP] = arm.mmap.BootStackSystem

	arm.state.CPSR &^= statusIRQDisable | statusFIQDisable | statusThumb
	arm.state.Registers[rPC] = entry &^ 0x03

	if arm.mmap.HasCP15 {
		arm.state.CP15.directBoot()
		arm.pushTCM()
	}
}

// CP15 returns a copy of the system control coprocessor registers. The
// registers of an ARM without a CP15 are all zero.
func (arm *ARM) CP15() CP15 {
	return arm.state.CP15
}

// Halt the ARM until an enabled interrupt is flagged.
func (arm *ARM) Halt() {
	arm.state.Halted = true
}

// Halted returns true if the ARM is halted.
func (arm *ARM) Halted() bool {
	return arm.state.Halted
}

// Cycles returns the number of cycles executed since reset.
func (arm *ARM) Cycles() uint64 {
	return arm.state.Cycles
}

// Step executes a single instruction, or sequences a pending exception.
// Returns the number of cycles consumed.
//
// Interrupt lines are sampled before the instruction is fetched. An exception
// raised by the instruction is entered before Step() returns so the next
// instruction executed is the first instruction of the exception handler.
func (arm *ARM) Step() int {
	st := arm.state
	st.Cycles++

	if st.Halted {
		if arm.lines == nil || !arm.lines.Wake() {
			return 1
		}
		st.Halted = false
	}

	if arm.lines != nil {
		if arm.lines.FIQ() && !st.CPSR.FIQDisable() {
			arm.raise(ExceptionFIQ, st.Registers[rPC])
		} else if arm.lines.IRQ() && !st.CPSR.IRQDisable() {
			arm.raise(ExceptionIRQ, st.Registers[rPC])
		}
	}

	if st.Controller.State == ExceptionPending {
		arm.enterException()
		return 1
	}

	arm.instructionPC = st.Registers[rPC]
	arm.branched = false

	var exc Exception
	var size uint32
	if st.CPSR.Thumb() {
		exc = arm.stepThumb()
		size = 2
	} else {
		exc = arm.stepARM()
		size = 4
	}

	if !arm.branched {
		st.Registers[rPC] = arm.instructionPC + size
	}

	if exc != ExceptionNone {
		arm.raise(exc, arm.instructionPC)
		arm.enterException()
	}

	if arm.disasm != nil {
		arm.disasmEntry.Registers = st.Registers
		arm.disasmEntry.CPSR = st.CPSR
		if arm.disasmEntry.Operator == "" {
			arm.disasmEntry.Operator = arm.disasmEntry.Class.String()
		}
		arm.disasm.Step(arm.disasmEntry)
	}

	return 1
}

// Run the ARM for at least the number of cycles in the budget. Returns the
// number of cycles actually consumed. Instructions are never interrupted so
// the number of cycles consumed may exceed the budget.
func (arm *ARM) Run(budget int) int {
	var n int
	for n < budget {
		n += arm.Step()
	}
	return n
}

func (arm *ARM) stepARM() Exception {
	st := arm.state

	opcode, ok := arm.fetch(arm.instructionPC, bus.Word)
	if !ok {
		return ExceptionPrefetchAbort
	}
	arm.opcode = opcode

	// pipeline offset. R15 is eight bytes ahead of the executing instruction
	st.Registers[rPC] = arm.instructionPC + 8

	class := Decode(opcode, bus.Word)
	arm.disasmStart(class)

	cond := opcode >> 28
	if cond == 0xf {
		// the never condition on ARMv4. on ARMv5 the decoder has given the
		// unconditional instruction
		if !arm.mmap.IsV5() {
			arm.disasmCondition(false)
			return ExceptionNone
		}
	} else if !st.CPSR.condition(cond) {
		arm.disasmCondition(false)
		return ExceptionNone
	}

	return arm.execute(class, opcode)
}

func (arm *ARM) stepThumb() Exception {
	st := arm.state

	opcode, ok := arm.fetch(arm.instructionPC, bus.Halfword)
	if !ok {
		return ExceptionPrefetchAbort
	}
	arm.opcode = opcode

	// pipeline offset. R15 is four bytes ahead of the executing instruction
	st.Registers[rPC] = arm.instructionPC + 4

	class := Decode(opcode, bus.Halfword)
	arm.disasmStart(class)

	return arm.execute(class, opcode)
}

func (arm *ARM) execute(class Class, opcode uint32) Exception {
	if class.requiresV5() && !arm.mmap.IsV5() {
		arm.disasmf("UND", "%s (ARMv5 only)", class)
		return ExceptionUndefined
	}
	return executors[class](arm, opcode)
}

// log a message with the label of the ARM as the tag.
func (arm *ARM) log(detail string, args ...interface{}) {
	arm.env.Log.Logf(arm.env, arm.Label(), "%08x: "+detail, append([]interface{}{arm.instructionPC}, args...)...)
}
