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

package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
)

// sizes of the memory areas
const (
	kb = 1024
	mb = 1024 * kb

	sizeMainRAM    = 4 * mb
	sizeSharedWRAM = 32 * kb
	sizeARM7WRAM   = 64 * kb
	sizePalette    = 2 * kb
	sizeOAM        = 2 * kb
	sizeITCM       = 32 * kb
	sizeDTCM       = 16 * kb
	sizeARM9BIOS   = 4 * kb
	sizeARM7BIOS   = 16 * kb
)

// WRAMCNT values. The value describes how the shared WRAM is divided between
// the two processors.
const (
	WRAMAllARM9 = iota
	WRAMSecondHalfARM9
	WRAMFirstHalfARM9
	WRAMAllARM7
)

// Memory is the collection of memory areas of the console.
type Memory struct {
	env *environment.Environment

	MainRAM    *RAM
	SharedWRAM *RAM
	ARM7WRAM   *RAM
	Palette    *RAM
	OAM        *RAM
	ITCM       *RAM
	DTCM       *RAM
	ARM9BIOS   *RAM
	ARM7BIOS   *RAM

	VRAM *vram.VRAM

	// IO region for each processor
	ARM9IO *IO
	ARM7IO *IO

	// system registers
	WRAMCNT    uint8
	EXMEMCNT   uint16
	EXMEMSTAT  uint16
	POSTFLG9   uint8
	POSTFLG7   uint8
	KEYCNT     uint16
	tcm        arm.TCMConfig
	arm7Halter Halter

	arm9 *ARM9Bus
	arm7 *ARM7Bus
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The IO region of each processor has the system registers attached. Other
// peripherals must be attached with the Attach() function of the IO type.
func NewMemory(env *environment.Environment) *Memory {
	mem := &Memory{
		env:        env,
		MainRAM:    newRAM("main RAM", sizeMainRAM),
		SharedWRAM: newRAM("shared WRAM", sizeSharedWRAM),
		ARM7WRAM:   newRAM("ARM7 WRAM", sizeARM7WRAM),
		Palette:    newRAM("palette", sizePalette),
		OAM:        newRAM("OAM", sizeOAM),
		ITCM:       newRAM("ITCM", sizeITCM),
		DTCM:       newRAM("DTCM", sizeDTCM),
		ARM9BIOS:   newRAM("ARM9 BIOS", sizeARM9BIOS),
		ARM7BIOS:   newRAM("ARM7 BIOS", sizeARM7BIOS),
		VRAM:       vram.NewVRAM(env),
		ARM9IO:     newIO("ARM9 IO"),
		ARM7IO:     newIO("ARM7 IO"),
	}

	mem.arm9 = &ARM9Bus{mem: mem}
	mem.arm7 = &ARM7Bus{mem: mem}

	mem.ARM9IO.Attach(arm9System{mem: mem}, mem.VRAM)
	mem.ARM7IO.Attach(arm7System{mem: mem}, mem.VRAM.Status())

	mem.Reset()

	return mem
}

// Areas returns every memory area.
func (mem *Memory) Areas() []*RAM {
	return []*RAM{
		mem.MainRAM, mem.SharedWRAM, mem.ARM7WRAM, mem.Palette, mem.OAM,
		mem.ITCM, mem.DTCM, mem.ARM9BIOS, mem.ARM7BIOS,
	}
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	for _, a := range mem.Areas() {
		s.WriteString(a.String())
		s.WriteString("\n")
	}
	s.WriteString(fmt.Sprintf("WRAMCNT: %d  EXMEMCNT: %04x  POSTFLG: %d/%d", mem.WRAMCNT, mem.EXMEMCNT, mem.POSTFLG9, mem.POSTFLG7))
	return s.String()
}

// Reset clears every memory area and sets the system registers to their
// power on values.
func (mem *Memory) Reset() {
	for _, a := range mem.Areas() {
		a.Reset()
	}
	mem.VRAM.Reset()
	mem.WRAMCNT = WRAMAllARM9
	mem.EXMEMCNT = 0
	mem.EXMEMSTAT = 0
	mem.POSTFLG9 = 0
	mem.POSTFLG7 = 0
	mem.KEYCNT = 0
}

// DirectBoot sets the system registers to the values left by the boot code.
func (mem *Memory) DirectBoot() {
	mem.WRAMCNT = WRAMAllARM7
	mem.POSTFLG9 = 1
	mem.POSTFLG7 = 1
}

// ARM9 returns the bus of the ARM9.
func (mem *Memory) ARM9() *ARM9Bus {
	return mem.arm9
}

// ARM7 returns the bus of the ARM7.
func (mem *Memory) ARM7() *ARM7Bus {
	return mem.arm7
}

// SetARM7Halter connects the HALTCNT register to the ARM7.
func (mem *Memory) SetARM7Halter(h Halter) {
	mem.arm7Halter = h
}

// ConfigureTCM implements the arm.TCM interface.
func (mem *Memory) ConfigureTCM(cfg arm.TCMConfig) {
	mem.tcm = cfg
}

// TCMConfig returns the current TCM configuration as set by the ARM9.
func (mem *Memory) TCMConfig() arm.TCMConfig {
	return mem.tcm
}

// the shared WRAM window of a processor. returns false if the processor has
// no access to the shared WRAM
func (mem *Memory) sharedWRAM(arm9 bool) (offset uint32, mask uint32, ok bool) {
	switch mem.WRAMCNT & 0x03 {
	case WRAMAllARM9:
		if arm9 {
			return 0, sizeSharedWRAM - 1, true
		}
	case WRAMSecondHalfARM9:
		if arm9 {
			return sizeSharedWRAM / 2, sizeSharedWRAM/2 - 1, true
		}
		return 0, sizeSharedWRAM/2 - 1, true
	case WRAMFirstHalfARM9:
		if arm9 {
			return 0, sizeSharedWRAM/2 - 1, true
		}
		return sizeSharedWRAM / 2, sizeSharedWRAM/2 - 1, true
	case WRAMAllARM7:
		if !arm9 {
			return 0, sizeSharedWRAM - 1, true
		}
	}
	return 0, 0, false
}

// the open bus value from the preferences
func (mem *Memory) openBus(width bus.Width) uint32 {
	v := uint32(mem.env.Prefs.OpenBusValue.Get().(int))
	return width.Mask(v)
}

func (mem *Memory) logIllegal(label string, write bool, address uint32) {
	if !mem.env.Prefs.LogIllegalAccess.Get().(bool) {
		return
	}
	if write {
		mem.env.Log.Logf(mem.env, label, "illegal write: %08x", address)
	} else {
		mem.env.Log.Logf(mem.env, label, "illegal read: %08x", address)
	}
}
