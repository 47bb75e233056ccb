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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
	"github.com/jetsetilly/gopherds/test"
)

func TestSnapshot(t *testing.T) {
	mem, _ := newMemory(t)
	arm9 := mem.ARM9()

	arm9.Write(0x02000000, bus.Word, 0x12345678)
	arm9.Write(0x04000240, bus.Byte, 0x80)
	arm9.Write(0x06800000, bus.Word, 0x87654321)
	arm9.Write(0x04000247, bus.Byte, memory.WRAMFirstHalfARM9)

	s := mem.Snapshot()

	// changes after the snapshot do not affect the snapshot
	arm9.Write(0x02000000, bus.Word, 0)
	arm9.Write(0x06800000, bus.Word, 0)
	arm9.Write(0x04000240, bus.Byte, 0x00)
	arm9.Write(0x04000247, bus.Byte, memory.WRAMAllARM9)
	test.ExpectEquality(t, s.Areas["main RAM"][0], uint8(0x78))

	mem.Plumb(s)
	test.ExpectEquality(t, arm9.Read(0x02000000, bus.Word), uint32(0x12345678))
	test.ExpectEquality(t, arm9.Read(0x06800000, bus.Word), uint32(0x87654321))
	test.ExpectEquality(t, mem.VRAM.Banks[vram.BankA].Target, vram.TargetLCDC)
	test.ExpectEquality(t, mem.WRAMCNT, uint8(memory.WRAMFirstHalfARM9))

	// plumbing copies the snapshot
	arm9.Write(0x02000000, bus.Word, 0)
	test.ExpectEquality(t, s.Areas["main RAM"][0], uint8(0x78))
}

func TestValidate(t *testing.T) {
	mem, _ := newMemory(t)

	s := mem.Snapshot()
	test.ExpectSuccess(t, mem.Validate(s))

	s.Areas["OAM"] = s.Areas["OAM"][:10]
	test.ExpectSuccess(t, curated.Is(mem.Validate(s), memory.AreaSize))

	s = mem.Snapshot()
	delete(s.Areas, "palette")
	test.ExpectSuccess(t, curated.Is(mem.Validate(s), memory.MissingArea))

	s = mem.Snapshot()
	s.Banks[vram.BankH].Data = nil
	test.ExpectSuccess(t, curated.Is(mem.Validate(s), memory.BankSize))

	s = mem.Snapshot()
	s.Banks[vram.BankC].ID = vram.BankD
	test.ExpectSuccess(t, curated.Is(mem.Validate(s), memory.BankIdentity))
}
