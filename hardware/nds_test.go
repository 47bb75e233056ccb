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

package hardware_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/hardware/video"
	"github.com/jetsetilly/gopherds/test"
)

// the ARM9 program writes 5 to the output bits of IPCSYNC
var arm9Program = []uint32{
	0xe3a00301, // MOV R0, #0x04000000
	0xe3a01c05, // MOV R1, #0x500
	0xe5801180, // STR R1, [R0, #0x180]
	0xeafffffe, // B .
}

// the ARM7 program waits for the input bits of IPCSYNC to be 5 and then
// stores the value in main RAM
var arm7Program = []uint32{
	0xe3a00301, // MOV R0, #0x04000000
	0xe5901180, // LDR R1, [R0, #0x180]
	0xe3510005, // CMP R1, #5
	0x1afffffc, // BNE -4
	0xe3a02402, // MOV R2, #0x02000000
	0xe5821100, // STR R1, [R2, #0x100]
	0xeafffffe, // B .
}

const (
	arm9Entry = 0x02000000
	arm7Entry = 0x02380000
)

func program(t *testing.T) *cartridge.Cartridge {
	t.Helper()

	rom := make([]uint8, 0x400)
	for i, o := range arm9Program {
		binary.LittleEndian.PutUint32(rom[0x200+i*4:], o)
	}
	for i, o := range arm7Program {
		binary.LittleEndian.PutUint32(rom[0x300+i*4:], o)
	}

	cart, err := cartridge.NewCartridge(rom,
		cartridge.Binary{ROMOffset: 0x200, Entry: arm9Entry, Load: arm9Entry, Size: uint32(len(arm9Program) * 4)},
		cartridge.Binary{ROMOffset: 0x300, Entry: arm7Entry, Load: arm7Entry, Size: uint32(len(arm7Program) * 4)},
	)
	test.ExpectSuccess(t, err)
	return cart
}

func newNDS(t *testing.T) *hardware.NDS {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.ExpectSuccess(t, err)
	nds, err := hardware.NewNDS(env)
	test.ExpectSuccess(t, err)
	return nds
}

func TestDirectBoot(t *testing.T) {
	nds := newNDS(t)

	err := nds.DirectBoot()
	test.ExpectSuccess(t, curated.Is(err, hardware.NoCartridge))

	test.ExpectSuccess(t, nds.Attach(program(t)))

	test.ExpectEquality(t, nds.ARM9.Register(15), uint32(arm9Entry))
	test.ExpectEquality(t, nds.ARM7.Register(15), uint32(arm7Entry))
	test.ExpectEquality(t, nds.ARM9.CPSR().Mode(), arm.ModeSystem)
	test.ExpectEquality(t, nds.ARM7.CPSR().Mode(), arm.ModeSystem)

	// the binaries have been copied to their load addresses
	test.ExpectEquality(t, nds.Mem.ARM7().Read(arm9Entry, bus.Word), arm9Program[0])
	test.ExpectEquality(t, nds.Mem.ARM7().Read(arm7Entry+4, bus.Word), arm7Program[1])

	// the boot code leaves the TCMs enabled
	cfg := nds.Mem.TCMConfig()
	test.ExpectSuccess(t, cfg.DTCMEnabled)
	test.ExpectEquality(t, cfg.DTCMBase, uint32(0x027c0000))

	// and the shared WRAM with the ARM7
	test.ExpectEquality(t, nds.Mem.WRAMCNT, uint8(3))
}

func TestRun(t *testing.T) {
	nds := newNDS(t)
	test.ExpectSuccess(t, nds.Attach(program(t)))

	n, err := nds.Run(context.Background(), 200)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 200)
	test.ExpectEquality(t, nds.Cycles(), uint64(200))

	// the value passed through IPCSYNC
	test.ExpectEquality(t, nds.Mem.ARM7().Read(0x02000100, bus.Word), uint32(5))
	test.ExpectEquality(t, nds.ARM9.Register(1), uint32(0x500))

	// the ARM9 runs for twice the number of cycles
	test.ExpectEquality(t, nds.ARM9.Cycles(), uint64(400))
	test.ExpectEquality(t, nds.ARM7.Cycles(), uint64(200))
}

func TestRunCancel(t *testing.T) {
	nds := newNDS(t)
	test.ExpectSuccess(t, nds.Attach(program(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := nds.Run(ctx, 1000000)
	test.ExpectEquality(t, err, context.Canceled)
	test.ExpectInequality(t, n, 1000000)
}

func TestVideoTiming(t *testing.T) {
	nds := newNDS(t)
	test.ExpectSuccess(t, nds.Attach(program(t)))

	_, err := nds.Run(context.Background(), video.ClksScanline*video.VisibleLines)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, nds.Video.Coords.Scanline, video.VisibleLines)

	// the VBlank interrupt has been flagged on both processors but the
	// interrupts are not enabled
	test.ExpectEquality(t, nds.ARM9IRQ.IF&0x01, uint32(0))
	nds.Video.Status[video.ARM9].VBlankIRQ = true
	_, err = nds.Run(context.Background(), video.ClksScanline*video.Scanlines)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, nds.ARM9IRQ.IF&0x01, uint32(1))
}

func TestSnapshot(t *testing.T) {
	nds := newNDS(t)
	test.ExpectSuccess(t, nds.Attach(program(t)))

	s := nds.Snapshot()
	_, err := nds.Run(context.Background(), 200)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, nds.Mem.ARM7().Read(0x02000100, bus.Word), uint32(5))

	test.ExpectSuccess(t, nds.Plumb(s))
	test.ExpectEquality(t, nds.Cycles(), uint64(0))
	test.ExpectEquality(t, nds.ARM9.Register(15), uint32(arm9Entry))
	test.ExpectEquality(t, nds.Mem.ARM7().Read(0x02000100, bus.Word), uint32(0))
	test.ExpectEquality(t, nds.IPC.Sides[0].SyncOutput, uint8(0))

	// the TCM configuration is restored with the ARM9
	test.ExpectEquality(t, nds.Mem.TCMConfig().DTCMBase, uint32(0x027c0000))

	// the emulation runs the same way after plumbing
	_, err = nds.Run(context.Background(), 200)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, nds.Mem.ARM7().Read(0x02000100, bus.Word), uint32(5))
}

func TestReset(t *testing.T) {
	nds := newNDS(t)

	// without a cartridge, reset leaves the processors at their reset vectors
	test.ExpectSuccess(t, nds.Reset())
	test.ExpectEquality(t, nds.ARM9.Register(15), uint32(0xffff0000))
	test.ExpectEquality(t, nds.ARM7.Register(15), uint32(0x00000000))
	test.ExpectEquality(t, nds.ARM9.CPSR().Mode(), arm.ModeSupervisor)

	// direct boot can be requested explicitly when the preference is unset
	test.ExpectSuccess(t, nds.Env.Prefs.DirectBoot.Set(false))
	test.ExpectSuccess(t, nds.Attach(program(t)))
	test.ExpectEquality(t, nds.ARM9.Register(15), uint32(0xffff0000))
	test.ExpectSuccess(t, nds.DirectBoot())
	test.ExpectEquality(t, nds.ARM9.Register(15), uint32(arm9Entry))
}
