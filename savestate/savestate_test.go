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

package savestate_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/savestate"
	"github.com/jetsetilly/gopherds/test"
)

// both processors count upwards in R0 forever
var loop = []uint32{
	0xe2800001, // ADD R0, R0, #1
	0xeafffffd, // B -4
}

func newNDS(t *testing.T) *hardware.NDS {
	t.Helper()

	rom := make([]uint8, 0x300)
	for i, o := range loop {
		binary.LittleEndian.PutUint32(rom[0x200+i*4:], o)
	}

	cart, err := cartridge.NewCartridge(rom,
		cartridge.Binary{ROMOffset: 0x200, Entry: 0x02000000, Load: 0x02000000, Size: 8},
		cartridge.Binary{ROMOffset: 0x200, Entry: 0x02380000, Load: 0x02380000, Size: 8},
	)
	test.ExpectSuccess(t, err)

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.ExpectSuccess(t, err)
	nds, err := hardware.NewNDS(env)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nds.Attach(cart))

	return nds
}

func run(nds *hardware.NDS, steps int) {
	for i := 0; i < steps; i++ {
		nds.Step()
	}
}

// save the emulation and return the decoded document
func save(t *testing.T, nds *hardware.NDS) *savestate.Document {
	t.Helper()

	var b bytes.Buffer
	test.ExpectSuccess(t, savestate.Save(&b, nds))

	var doc savestate.Document
	test.ExpectSuccess(t, json.Unmarshal(b.Bytes(), &doc))
	return &doc
}

func load(nds *hardware.NDS, doc interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return savestate.Load(bytes.NewReader(b), nds)
}

func TestRoundTrip(t *testing.T) {
	nds := newNDS(t)
	run(nds, 100)

	nds.Mem.MainRAM.Data()[0x1000] = 0xaa
	before := nds.Snapshot()

	var b bytes.Buffer
	test.ExpectSuccess(t, savestate.Save(&b, nds))

	run(nds, 100)
	nds.Mem.MainRAM.Data()[0x1000] = 0x55
	test.ExpectInequality(t, nds.ARM9.Register(0), before.ARM9.Registers[0])

	test.ExpectSuccess(t, savestate.Load(&b, nds))
	after := nds.Snapshot()

	test.ExpectEquality(t, after.Cycles, before.Cycles)
	test.ExpectEquality(t, *after.ARM9, *before.ARM9)
	test.ExpectEquality(t, *after.ARM7, *before.ARM7)
	test.ExpectEquality(t, *after.ARM9IRQ, *before.ARM9IRQ)
	test.ExpectEquality(t, after.Video.Coords, before.Video.Coords)
	test.ExpectEquality(t, after.Mem.WRAMCNT, before.Mem.WRAMCNT)
	test.ExpectEquality(t, after.Mem.TCM, before.Mem.TCM)
	test.ExpectEquality(t, nds.Mem.MainRAM.Data()[0x1000], uint8(0xaa))

	for label, d := range before.Mem.Areas {
		test.ExpectSuccess(t, bytes.Equal(after.Mem.Areas[label], d))
	}

	// the emulation continues from the restored state
	run(nds, 1)
	test.ExpectInequality(t, nds.ARM9.Register(0), before.ARM9.Registers[0])
}

func TestVersionMismatch(t *testing.T) {
	nds := newNDS(t)
	run(nds, 10)

	doc := save(t, nds)
	doc.Version = savestate.Version + 1

	run(nds, 10)
	cycles := nds.Cycles()

	err := load(nds, doc)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, savestate.VersionMismatch))
	test.ExpectEquality(t, nds.Cycles(), cycles)
}

func TestInvalidMode(t *testing.T) {
	nds := newNDS(t)
	doc := save(t, nds)

	// mode bits of zero are not a valid processor mode
	doc.ARM7.CPSR &^= 0x1f
	run(nds, 10)
	r0 := nds.ARM7.Register(0)

	err := load(nds, doc)
	test.ExpectSuccess(t, curated.Is(err, savestate.InvalidState))
	test.ExpectEquality(t, nds.ARM7.Register(0), r0)
}

func TestTruncatedMemory(t *testing.T) {
	nds := newNDS(t)
	doc := save(t, nds)

	area := nds.Mem.MainRAM.Label()
	doc.Memory.Areas[area] = doc.Memory.Areas[area][:100]

	err := load(nds, doc)
	test.ExpectSuccess(t, curated.Is(err, savestate.InvalidState))
	test.ExpectSuccess(t, curated.Has(err, memory.AreaSize))

	doc = save(t, nds)
	delete(doc.Memory.Areas, area)
	err = load(nds, doc)
	test.ExpectSuccess(t, curated.Has(err, memory.MissingArea))
}

func TestMalformed(t *testing.T) {
	nds := newNDS(t)

	err := savestate.Load(bytes.NewReader([]byte("{ not json")), nds)
	test.ExpectSuccess(t, curated.Is(err, savestate.DecodeError))

	err = load(nds, map[string]interface{}{"version": savestate.Version, "extra": true})
	test.ExpectSuccess(t, curated.Is(err, savestate.DecodeError))

	doc := save(t, nds)
	doc.ARM9.Registers = doc.ARM9.Registers[:15]
	err = load(nds, doc)
	test.ExpectSuccess(t, curated.Is(err, savestate.InvalidState))

	doc = save(t, nds)
	doc.ARM9.CP15 = nil
	err = load(nds, doc)
	test.ExpectSuccess(t, curated.Is(err, savestate.InvalidState))

	doc = save(t, nds)
	doc.Memory.VRAM[0], doc.Memory.VRAM[1] = doc.Memory.VRAM[1], doc.Memory.VRAM[0]
	err = load(nds, doc)
	test.ExpectSuccess(t, curated.Is(err, savestate.InvalidState))
}
