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

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/test"
)

func TestResetState(t *testing.T) {
	arm, _, _ := newTestARM(t, architecture.ARM7)
	arm.Reset()
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeSupervisor)
	test.ExpectSuccess(t, arm.CPSR().IRQDisable())
	test.ExpectSuccess(t, arm.CPSR().FIQDisable())
	test.ExpectFailure(t, arm.CPSR().Thumb())
	test.ExpectEquality(t, arm.Register(rPC), uint32(0))

	arm9, _, _ := newTestARM(t, architecture.ARM9)
	arm9.Reset()
	test.ExpectEquality(t, arm9.Register(rPC), uint32(0xffff0000))
}

func TestBanking(t *testing.T) {
	arm, _, _ := newTestARM(t, architecture.ARM7)

	arm.EnterMode(ModeUser)
	arm.SetRegister(rSP, 0x1000)
	arm.SetRegister(rLR, 0x2000)
	arm.SetRegister(8, 0x08)

	arm.EnterMode(ModeIRQ)
	test.ExpectEquality(t, arm.Register(rSP), uint32(0))
	arm.SetRegister(rSP, 0x3000)
	arm.SetRegister(rLR, 0x4000)
	test.ExpectEquality(t, arm.Register(8), uint32(0x08))

	// system mode shares the user bank
	arm.EnterMode(ModeSystem)
	test.ExpectEquality(t, arm.Register(rSP), uint32(0x1000))
	test.ExpectEquality(t, arm.Register(rLR), uint32(0x2000))

	// FIQ mode banks R8 to R12
	arm.EnterMode(ModeFIQ)
	test.ExpectEquality(t, arm.Register(8), uint32(0))
	arm.SetRegister(8, 0x88)

	arm.EnterMode(ModeUser)
	test.ExpectEquality(t, arm.Register(8), uint32(0x08))
	test.ExpectEquality(t, arm.Banked(ModeIRQ).SP, uint32(0x3000))
	test.ExpectEquality(t, arm.Banked(ModeIRQ).LR, uint32(0x4000))

	arm.EnterMode(ModeFIQ)
	test.ExpectEquality(t, arm.Register(8), uint32(0x88))
}

func TestReservedMode(t *testing.T) {
	arm, _, _ := newTestARM(t, architecture.ARM7)
	arm.EnterMode(ModeSystem)

	// the mode field is kept but the flags are written
	arm.SetCPSR(Status(0xf0000000) | 0x05)
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeSystem)
	test.ExpectSuccess(t, arm.CPSR().Negative())
	test.ExpectSuccess(t, arm.CPSR().Overflow())

	arm.EnterMode(Mode(0x05))
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeSystem)
}

func TestSavedStatus(t *testing.T) {
	arm, _, _ := newTestARM(t, architecture.ARM7)

	arm.EnterMode(ModeUser)
	_, err := arm.SPSR()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, NoSavedStatus))
	test.ExpectFailure(t, arm.SetSPSR(0))

	arm.EnterMode(ModeSystem)
	_, err = arm.SPSR()
	test.ExpectSuccess(t, curated.Is(err, NoSavedStatus))

	arm.EnterMode(ModeAbort)
	test.ExpectSuccess(t, arm.SetSPSR(Status(ModeUser)|statusCarry))
	spsr, err := arm.SPSR()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spsr, Status(ModeUser)|statusCarry)

	// each privileged mode has its own SPSR
	arm.EnterMode(ModeUndefined)
	spsr, err = arm.SPSR()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spsr, Status(0))
}

func TestModeString(t *testing.T) {
	test.ExpectEquality(t, ModeIRQ.String(), "IRQ")
	test.ExpectSuccess(t, ModeSystem.Valid())
	test.ExpectFailure(t, Mode(0x05).Valid())
	test.ExpectFailure(t, ModeUser.Privileged())
	test.ExpectSuccess(t, ModeSystem.Privileged())
}

func TestArithmeticFlags(t *testing.T) {
	var sr Status

	// 0xffffffff + 1 carries but does not overflow
	sr.isCarry(0xffffffff, 1, 0)
	sr.isOverflow(0xffffffff, 1, 0)
	test.ExpectSuccess(t, sr.Carry())
	test.ExpectFailure(t, sr.Overflow())

	// 0x7fffffff + 1 overflows but does not carry
	sr.isCarry(0x7fffffff, 1, 0)
	sr.isOverflow(0x7fffffff, 1, 0)
	test.ExpectFailure(t, sr.Carry())
	test.ExpectSuccess(t, sr.Overflow())

	// 0x80000000 - 1 as 0x80000000 + ^1 + 1 carries (no borrow) and overflows
	sr.isCarry(0x80000000, ^uint32(1), 1)
	sr.isOverflow(0x80000000, ^uint32(1), 1)
	test.ExpectSuccess(t, sr.Carry())
	test.ExpectSuccess(t, sr.Overflow())

	// 0 - 1 borrows
	sr.isCarry(0, ^uint32(1), 1)
	sr.isOverflow(0, ^uint32(1), 1)
	test.ExpectFailure(t, sr.Carry())
	test.ExpectFailure(t, sr.Overflow())

	// the carry in is included in the addition
	sr.isCarry(0xfffffffe, 1, 1)
	test.ExpectSuccess(t, sr.Carry())
}

func TestCondition(t *testing.T) {
	var sr Status

	// no flags set
	test.ExpectFailure(t, sr.condition(0b0000))
	test.ExpectSuccess(t, sr.condition(0b0001))
	test.ExpectFailure(t, sr.condition(0b1000))
	test.ExpectSuccess(t, sr.condition(0b1001))
	test.ExpectSuccess(t, sr.condition(0b1010))
	test.ExpectSuccess(t, sr.condition(0b1100))
	test.ExpectSuccess(t, sr.condition(0b1110))
	test.ExpectFailure(t, sr.condition(0b1111))

	// carry without zero is unsigned higher
	sr.setCarry(true)
	test.ExpectSuccess(t, sr.condition(0b0010))
	test.ExpectSuccess(t, sr.condition(0b1000))
	test.ExpectFailure(t, sr.condition(0b1001))

	// negative without overflow is signed less than
	sr.setNegative(true)
	test.ExpectSuccess(t, sr.condition(0b0100))
	test.ExpectSuccess(t, sr.condition(0b1011))
	test.ExpectFailure(t, sr.condition(0b1100))
	test.ExpectSuccess(t, sr.condition(0b1101))

	// negative with overflow is signed greater than or equal
	sr.setOverflow(true)
	test.ExpectSuccess(t, sr.condition(0b0110))
	test.ExpectSuccess(t, sr.condition(0b1010))
	test.ExpectSuccess(t, sr.condition(0b1100))

	// zero makes greater than fail
	sr.setZero(true)
	test.ExpectFailure(t, sr.condition(0b1100))
	test.ExpectSuccess(t, sr.condition(0b1101))
	test.ExpectSuccess(t, sr.condition(0b1001))
}
