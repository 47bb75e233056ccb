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
	"github.com/jetsetilly/gopherds/curated"
)

// register names.
const (
	rSP = 13 + iota // stack pointer
	rLR             // link register
	rPC             // program counter
	NumRegisters
)

// Sentinal error returned by SPSR() and SetSPSR() when the current mode has no
// saved status register.
const (
	NoSavedStatus = "arm: no saved status register in %s mode"
)

// the register banks. user and system mode share a bank.
type bankID int

const (
	bankUser bankID = iota
	bankFIQ
	bankIRQ
	bankSupervisor
	bankAbort
	bankUndefined
	numBanks
)

// bank returns the register bank selected by the mode. reserved modes never
// reach the status register so calling this function with a reserved mode is
// a programming error.
func (m Mode) bank() bankID {
	switch m {
	case ModeUser, ModeSystem:
		return bankUser
	case ModeFIQ:
		return bankFIQ
	case ModeIRQ:
		return bankIRQ
	case ModeSupervisor:
		return bankSupervisor
	case ModeAbort:
		return bankAbort
	case ModeUndefined:
		return bankUndefined
	}
	panic("arm: no register bank for " + m.String())
}

// Bank is the storage for the registers that are banked by mode. The values
// in the bank of the current mode are stale. The live values are in the
// register file.
type Bank struct {
	SP   uint32
	LR   uint32
	SPSR Status
}

// State of the ARM. It contains everything needed to restore the processor
// to an earlier point of execution.
type State struct {
	// the visible register file
	Registers [NumRegisters]uint32

	CPSR  Status
	Banks [numBanks]Bank

	// R8 to R12 are additionally banked for FIQ mode. UserHigh holds the user
	// values while the processor is in FIQ mode and FIQHigh holds the FIQ
	// values at all other times
	FIQHigh  [5]uint32
	UserHigh [5]uint32

	Controller Controller
	Halted     bool

	CP15 CP15

	// number of cycles executed since reset
	Cycles uint64
}

// Snapshot makes a copy of the State.
func (s *State) Snapshot() *State {
	n := *s
	return &n
}

// Register returns the value of the register in the current bank. The program
// counter is the address of the next instruction to be executed.
func (arm *ARM) Register(n int) uint32 {
	return arm.state.Registers[n]
}

// SetRegister sets the value of the register in the current bank. The
// program counter is aligned to the current instruction set.
func (arm *ARM) SetRegister(n int, value uint32) {
	if n == rPC {
		if arm.state.CPSR.Thumb() {
			value &^= 0x01
		} else {
			value &^= 0x03
		}
	}
	arm.state.Registers[n] = value
}

// CPSR returns the current program status register.
func (arm *ARM) CPSR() Status {
	return arm.state.CPSR
}

// SetCPSR sets the current program status register. Changing the mode field
// swaps the banked registers as required. A reserved mode value is not
// accepted and the mode field is left unchanged; all other fields are set.
func (arm *ARM) SetCPSR(value Status) {
	arm.writeCPSR(value)
}

// SPSR returns the saved status register of the current mode.
func (arm *ARM) SPSR() (Status, error) {
	m := arm.state.CPSR.Mode()
	if !m.Privileged() || m == ModeSystem {
		return 0, curated.Errorf(NoSavedStatus, m)
	}
	return arm.state.Banks[m.bank()].SPSR, nil
}

// SetSPSR sets the saved status register of the current mode. Any value is
// accepted, including values with a reserved mode field.
func (arm *ARM) SetSPSR(value Status) error {
	m := arm.state.CPSR.Mode()
	if !m.Privileged() || m == ModeSystem {
		return curated.Errorf(NoSavedStatus, m)
	}
	arm.state.Banks[m.bank()].SPSR = value
	return nil
}

// EnterMode switches the processor to the mode. The registers of the current
// mode are saved to its bank and the registers of the new mode are made
// visible. No register contents are lost. A reserved mode leaves the
// processor in the current mode.
func (arm *ARM) EnterMode(m Mode) {
	if !m.Valid() {
		arm.log("ignoring switch to reserved mode (%05b)", uint32(m))
		return
	}
	arm.switchBank(m)
	arm.state.CPSR = (arm.state.CPSR &^ statusMode) | Status(m)
}

// Banked returns the stored banked registers for a mode. The values of the
// current mode are read from the register file.
func (arm *ARM) Banked(m Mode) Bank {
	b := arm.state.Banks[m.bank()]
	if m.bank() == arm.state.CPSR.Mode().bank() {
		b.SP = arm.state.Registers[rSP]
		b.LR = arm.state.Registers[rLR]
	}
	return b
}

// switchBank exchanges the banked registers in the register file. it does
// not alter the CPSR.
func (arm *ARM) switchBank(m Mode) {
	st := arm.state

	from := st.CPSR.Mode().bank()
	to := m.bank()
	if from == to {
		return
	}

	st.Banks[from].SP = st.Registers[rSP]
	st.Banks[from].LR = st.Registers[rLR]
	st.Registers[rSP] = st.Banks[to].SP
	st.Registers[rLR] = st.Banks[to].LR

	if from == bankFIQ {
		copy(st.FIQHigh[:], st.Registers[8:13])
		copy(st.Registers[8:13], st.UserHigh[:])
	} else if to == bankFIQ {
		copy(st.UserHigh[:], st.Registers[8:13])
		copy(st.Registers[8:13], st.FIQHigh[:])
	}
}

// writeCPSR applies the reserved mode policy. a write with a reserved mode
// keeps the current mode but applies every other field.
func (arm *ARM) writeCPSR(value Status) {
	m := value.Mode()
	if !m.Valid() {
		arm.log("CPSR write with reserved mode (%05b): mode unchanged", uint32(m))
		value = (value &^ statusMode) | Status(arm.state.CPSR.Mode())
	}
	arm.switchBank(value.Mode())
	arm.state.CPSR = value
}

// restoreCPSR copies the SPSR of the current mode to the CPSR, as happens
// when returning from an exception.
func (arm *ARM) restoreCPSR() {
	spsr, err := arm.SPSR()
	if err != nil {
		arm.log("%v", err)
		return
	}
	arm.writeCPSR(spsr)
}

// userRegister returns the value of a register in the user bank, regardless of
// the current mode. used by the block transfer instructions with the S bit set.
func (arm *ARM) userRegister(n int) uint32 {
	st := arm.state
	cur := st.CPSR.Mode().bank()
	switch {
	case n >= 8 && n <= 12 && cur == bankFIQ:
		return st.UserHigh[n-8]
	case n == rSP && cur != bankUser:
		return st.Banks[bankUser].SP
	case n == rLR && cur != bankUser:
		return st.Banks[bankUser].LR
	}
	return st.Registers[n]
}

// setUserRegister is the counterpart of userRegister().
func (arm *ARM) setUserRegister(n int, value uint32) {
	st := arm.state
	cur := st.CPSR.Mode().bank()
	switch {
	case n >= 8 && n <= 12 && cur == bankFIQ:
		st.UserHigh[n-8] = value
	case n == rSP && cur != bankUser:
		st.Banks[bankUser].SP = value
	case n == rLR && cur != bankUser:
		st.Banks[bankUser].LR = value
	default:
		st.Registers[n] = value
	}
}
