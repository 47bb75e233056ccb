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

	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/test"
)

func TestThumbArithmetic(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// MOVS R0, #1; LSLS R1, R0, #31; ADDS R2, R1, R1; SUBS R3, R0, #2
	mem.putThumb(origin, 0x2001, 0x07c1, 0x184a, 0x1e83)

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(0), uint32(1))
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+2))

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(1), uint32(0x80000000))
	test.ExpectSuccess(t, arm.CPSR().Negative())

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(2), uint32(0))
	test.ExpectSuccess(t, arm.CPSR().Zero())
	test.ExpectSuccess(t, arm.CPSR().Carry())
	test.ExpectSuccess(t, arm.CPSR().Overflow())

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(3), uint32(0xffffffff))
	test.ExpectSuccess(t, arm.CPSR().Negative())
	test.ExpectFailure(t, arm.CPSR().Carry())
}

func TestThumbALU(t *testing.T) {
	var tests = []struct {
		opcode uint16
		r0     uint32
		r1     uint32
		result uint32
	}{
		{0x4008, 0xff00ff00, 0x0ff00ff0, 0x0f000f00}, // ANDS R0, R1
		{0x4048, 0xff00ff00, 0x0ff00ff0, 0xf0f0f0f0}, // EORS R0, R1
		{0x4088, 0x00000001, 0x00000004, 0x00000010}, // LSLS R0, R1
		{0x40c8, 0x00000010, 0x00000004, 0x00000001}, // LSRS R0, R1
		{0x4108, 0x80000000, 0x00000004, 0xf8000000}, // ASRS R0, R1
		{0x41c8, 0x00000001, 0x00000001, 0x80000000}, // RORS R0, R1
		{0x4248, 0x00000000, 0x00000001, 0xffffffff}, // NEGS R0, R1
		{0x4308, 0xff000000, 0x000000ff, 0xff0000ff}, // ORRS R0, R1
		{0x4348, 0x00000003, 0x00000005, 0x0000000f}, // MULS R0, R1
		{0x4388, 0xffffffff, 0x0000ffff, 0xffff0000}, // BICS R0, R1
		{0x43c8, 0x00000000, 0x0000ffff, 0xffff0000}, // MVNS R0, R1
		{0x4208, 0x00000001, 0x00000001, 0x00000001}, // TST R0, R1
		{0x4288, 0x00000002, 0x00000001, 0x00000002}, // CMP R0, R1
	}

	for _, tt := range tests {
		arm, mem, _ := newTestARM(t, architecture.ARM7)
		enterThumb(arm)
		mem.putThumb(origin, tt.opcode)
		arm.SetRegister(0, tt.r0)
		arm.SetRegister(1, tt.r1)
		step(arm, 1)
		if arm.Register(0) != tt.result {
			t.Errorf("%04x: got %08x, wanted %08x", tt.opcode, arm.Register(0), tt.result)
		}
	}
}

func TestThumbHiRegister(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// MOV R8, R0; ADD R0, R8; MOV R1, PC
	mem.putThumb(origin, 0x4680, 0x4440, 0x4679)
	arm.SetRegister(0, 0x10)
	step(arm, 3)
	test.ExpectEquality(t, arm.Register(8), uint32(0x10))
	test.ExpectEquality(t, arm.Register(0), uint32(0x20))
	test.ExpectEquality(t, arm.Register(1), uint32(origin+4+4))
}

func TestThumbBranchExchange(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// BX R0 to ARM
	mem.putThumb(origin, 0x4700)
	arm.SetRegister(0, origin+0x100)
	step(arm, 1)
	test.ExpectFailure(t, arm.CPSR().Thumb())
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+0x100))

	// BLX R0 is undefined on the ARMv4
	arm, mem, _ = newTestARM(t, architecture.ARM7)
	enterThumb(arm)
	mem.putThumb(origin, 0x4780)
	step(arm, 1)
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeUndefined)

	arm, mem, _ = newTestARM(t, architecture.ARM9)
	enterThumb(arm)
	mem.putThumb(origin, 0x4780)
	arm.SetRegister(0, origin+0x100)
	step(arm, 1)
	test.ExpectFailure(t, arm.CPSR().Thumb())
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+0x100))
	test.ExpectEquality(t, arm.Register(rLR), uint32(origin+3))
}

func TestThumbLoadStore(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// LDR R0, [PC, #12]; STR R0, [R1, R2]; LDRB R3, [R1, #1]; LDRSH R4, [R1, R5]
	// STRH R0, [R1, #2]; LDR R6, [R1]
	mem.putThumb(origin, 0x4803, 0x5088, 0x784b, 0x5f4c, 0x8048, 0x680e)
	mem.Write(origin+16, bus.Word, 0x12348765)
	arm.SetRegister(1, data)
	arm.SetRegister(2, 0)
	arm.SetRegister(5, 0)

	// the PC relative load has bit 1 of the PC forced to zero
	step(arm, 1)
	test.ExpectEquality(t, arm.Register(0), uint32(0x12348765))

	step(arm, 1)
	mem.assert(t, data, 0x12348765)

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(3), uint32(0x87))

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(4), uint32(0xffff8765))

	step(arm, 2)
	test.ExpectEquality(t, arm.Register(6), uint32(0x87658765))
}

func TestThumbStack(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// PUSH {R0, R1, LR}; POP {R2, R3, PC}
	mem.putThumb(origin, 0xb503, 0xbd0c)
	arm.SetRegister(rSP, data+0x100)
	arm.SetRegister(0, 0xaa)
	arm.SetRegister(1, 0xbb)
	arm.SetRegister(rLR, origin+0x41)

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(rSP), uint32(data+0x100-12))
	mem.assert(t, data+0x100-12, 0xaa)
	mem.assert(t, data+0x100-8, 0xbb)
	mem.assert(t, data+0x100-4, origin+0x41)

	// the ARMv4 core stays in Thumb state when popping the PC
	step(arm, 1)
	test.ExpectEquality(t, arm.Register(rSP), uint32(data+0x100))
	test.ExpectEquality(t, arm.Register(2), uint32(0xaa))
	test.ExpectEquality(t, arm.Register(3), uint32(0xbb))
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+0x40))
	test.ExpectSuccess(t, arm.CPSR().Thumb())
}

func TestThumbPopInterworking(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM9)
	enterThumb(arm)

	// POP {PC} to an ARM address
	mem.putThumb(origin, 0xbd00)
	mem.Write(data, bus.Word, origin+0x80)
	arm.SetRegister(rSP, data)
	step(arm, 1)
	test.ExpectFailure(t, arm.CPSR().Thumb())
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+0x80))
}

func TestThumbBlockTransfer(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// STMIA R0!, {R1, R2}; LDMIA R3!, {R3, R4}
	mem.putThumb(origin, 0xc006, 0xcb18)
	arm.SetRegister(0, data)
	arm.SetRegister(1, 0x11)
	arm.SetRegister(2, 0x22)
	arm.SetRegister(3, data)

	step(arm, 1)
	test.ExpectEquality(t, arm.Register(0), uint32(data+8))
	mem.assert(t, data, 0x11)
	mem.assert(t, data+4, 0x22)

	// no write back when the base is in the list
	step(arm, 1)
	test.ExpectEquality(t, arm.Register(3), uint32(0x11))
	test.ExpectEquality(t, arm.Register(4), uint32(0x22))
}

func TestThumbBranches(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// BEQ +4 (not taken); B -2 (to self + 2)
	mem.putThumb(origin, 0xd002, 0xe7ff)
	step(arm, 1)
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+2))
	step(arm, 1)
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+4))

	// BL +0x1000
	arm, mem, _ = newTestARM(t, architecture.ARM7)
	enterThumb(arm)
	mem.putThumb(origin, 0xf001, 0xf800)
	step(arm, 2)
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+4+0x1000))
	test.ExpectEquality(t, arm.Register(rLR), uint32(origin+5))
	test.ExpectSuccess(t, arm.CPSR().Thumb())

	// BLX +0x1000 changes to ARM state
	arm, mem, _ = newTestARM(t, architecture.ARM9)
	enterThumb(arm)
	mem.putThumb(origin, 0xf001, 0xe802)
	step(arm, 2)
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+4+0x1004))
	test.ExpectEquality(t, arm.Register(rLR), uint32(origin+5))
	test.ExpectFailure(t, arm.CPSR().Thumb())
}

func TestThumbStackPointerArithmetic(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	enterThumb(arm)

	// SUB SP, #8; ADD R0, SP, #4; ADD R1, PC, #4; STR R0, [SP, #4]
	mem.putThumb(origin, 0xb082, 0xa801, 0xa101, 0x9001)
	arm.SetRegister(rSP, data+0x10)
	step(arm, 4)
	test.ExpectEquality(t, arm.Register(rSP), uint32(data+0x08))
	test.ExpectEquality(t, arm.Register(0), uint32(data+0x0c))
	test.ExpectEquality(t, arm.Register(1), uint32(origin+8+4))
	mem.assert(t, data+0x0c, data+0x0c)
}
