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
	"github.com/jetsetilly/gopherds/test"
)

// mockTCM records the most recent TCM configuration.
type mockTCM struct {
	cfg   TCMConfig
	count int
}

func (tcm *mockTCM) ConfigureTCM(cfg TCMConfig) {
	tcm.cfg = cfg
	tcm.count++
}

func TestCP15Identification(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM9)

	// MRC p15, 0, R0, c0, c0, 0; MRC p15, 0, R1, c0, c0, 1; MRC p15, 0, R2, c0, c0, 2
	// MRC p15, 0, PC, c0, c0, 0
	mem.putARM(origin, 0xee100f10, 0xee101f30, 0xee102f50, 0xee10ff10)
	step(arm, 4)
	test.ExpectEquality(t, arm.Register(0), uint32(0x41059461))
	test.ExpectEquality(t, arm.Register(1), uint32(0x0f0d2112))
	test.ExpectEquality(t, arm.Register(2), uint32(0x00140180))

	// the flags are taken from the top of the value
	test.ExpectSuccess(t, arm.CPSR().Zero())
	test.ExpectFailure(t, arm.CPSR().Negative())
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+16))
}

func TestCP15Control(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM9)

	// MCR p15, 0, R1, c1, c0, 0; MRC p15, 0, R0, c1, c0, 0
	mem.putARM(origin, 0xee011f10, 0xee110f10)
	arm.SetRegister(1, 0xffffffff)
	step(arm, 2)
	test.ExpectEquality(t, arm.Register(0), uint32(controlWritable|controlFixed))

	arm.SetRegister(rPC, origin)
	arm.SetRegister(1, 0)
	step(arm, 2)
	test.ExpectEquality(t, arm.Register(0), uint32(controlFixed))
	test.ExpectEquality(t, arm.VectorBase(), uint32(0))
}

func TestCP15TCM(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM9)
	tcm := &mockTCM{}
	arm.SetTCM(tcm)
	test.ExpectEquality(t, tcm.count, 1)
	test.ExpectFailure(t, tcm.cfg.DTCMEnabled)

	// MCR p15, 0, R1, c9, c1, 0; MCR p15, 0, R2, c9, c1, 1; MCR p15, 0, R3, c1, c0, 0
	mem.putARM(origin, 0xee091f11, 0xee092f31, 0xee013f10)
	arm.SetRegister(1, 0x027c000a)
	arm.SetRegister(2, 0x00000020)
	arm.SetRegister(3, controlDTCMEnable|controlITCMEnable)
	step(arm, 3)

	test.ExpectEquality(t, tcm.count, 4)
	test.ExpectSuccess(t, tcm.cfg.DTCMEnabled)
	test.ExpectSuccess(t, tcm.cfg.ITCMEnabled)
	test.ExpectFailure(t, tcm.cfg.DTCMLoadMode)
	test.ExpectEquality(t, tcm.cfg.DTCMBase, uint32(0x027c0000))
	test.ExpectEquality(t, tcm.cfg.DTCMSize, uint32(16*1024))
	test.ExpectEquality(t, tcm.cfg.ITCMSize, uint32(32*1024*1024))
}

func TestCP15Halt(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM9)

	// MCR p15, 0, R0, c7, c0, 4
	mem.putARM(origin, 0xee070f90)
	step(arm, 1)
	test.ExpectSuccess(t, arm.Halted())
	test.ExpectEquality(t, arm.Register(rPC), uint32(origin+4))
}

func TestCP15Access(t *testing.T) {
	// not available in user mode
	arm, mem, _ := newTestARM(t, architecture.ARM9)
	mem.putARM(origin, 0xee100f10)
	arm.EnterMode(ModeUser)
	step(arm, 1)
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeUndefined)

	// not available on the ARM7
	arm, mem, _ = newTestARM(t, architecture.ARM7)
	mem.putARM(origin, 0xee100f10)
	step(arm, 1)
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeUndefined)

	// coprocessors other than CP15 are not present
	arm, mem, _ = newTestARM(t, architecture.ARM9)
	mem.putARM(origin, 0xee100e10)
	step(arm, 1)
	test.ExpectEquality(t, arm.CPSR().Mode(), ModeUndefined)
}

func TestProtectionRegions(t *testing.T) {
	var cp CP15
	cp.reset(false)

	// everything is permitted when the MPU is disabled
	test.ExpectSuccess(t, cp.permitted(0x08000000))

	cp.Control |= controlMPU
	test.ExpectFailure(t, cp.permitted(0x08000000))

	// 4KB region at 0x08000000
	cp.Regions[3] = 0x08000000 | 11<<1 | 0x01
	test.ExpectSuccess(t, cp.permitted(0x08000000))
	test.ExpectSuccess(t, cp.permitted(0x08000fff))
	test.ExpectFailure(t, cp.permitted(0x08001000))

	// 4GB region
	cp.Regions[0] = 31<<1 | 0x01
	test.ExpectSuccess(t, cp.permitted(0xffffffff))
}

func TestAccessPermissions(t *testing.T) {
	test.ExpectEquality(t, extendedPermissions(0xffff), uint32(0x33333333))
	test.ExpectEquality(t, simplePermissions(0x33333333), uint32(0xffff))
	test.ExpectEquality(t, simplePermissions(extendedPermissions(0x1234)), uint32(0x1234))
}

func TestDirectBoot(t *testing.T) {
	arm, _, _ := newTestARM(t, architecture.ARM9)
	tcm := &mockTCM{}
	arm.SetTCM(tcm)
	arm.DirectBoot(0x02000800)

	test.ExpectEquality(t, arm.CPSR().Mode(), ModeSystem)
	test.ExpectEquality(t, arm.Register(rSP), uint32(0x03002f7c))
	test.ExpectEquality(t, arm.Banked(ModeIRQ).SP, uint32(0x03003f80))
	test.ExpectEquality(t, arm.Banked(ModeSupervisor).SP, uint32(0x03003fc0))
	test.ExpectEquality(t, arm.Register(rPC), uint32(0x02000800))
	test.ExpectSuccess(t, tcm.cfg.DTCMEnabled)
	test.ExpectEquality(t, tcm.cfg.DTCMBase, uint32(0x027c0000))
}
