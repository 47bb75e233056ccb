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

package inspect_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/inspect"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/test"
)

func newInspector(t *testing.T) (*inspect.Inspector, *hardware.NDS) {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.ExpectSuccess(t, err)
	nds, err := hardware.NewNDS(env)
	test.ExpectSuccess(t, err)
	return inspect.NewInspector(nds), nds
}

func TestLookup(t *testing.T) {
	ins, nds := newInspector(t)

	v, err := ins.Lookup("arm9.pc")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v.(inspect.Hex32), inspect.Hex32(0xffff0000))
	test.ExpectEquality(t, v.(inspect.Hex32).String(), "ffff0000")

	v, err = ins.Lookup("arm7.mode")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v.(string), nds.ARM7.CPSR().Mode().String())

	// names are not case sensitive
	v, err = ins.Lookup(" ARM7.Halted ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v.(bool), false)

	// supervisor mode has a saved status register
	v, err = ins.Lookup("arm7.spsr")
	test.ExpectSuccess(t, err)
	_, ok := v.(inspect.Hex32)
	test.ExpectSuccess(t, ok)

	_, err = ins.Lookup("arm9.r16")
	test.ExpectSuccess(t, curated.Is(err, inspect.UnknownField))
}

func TestVRAMFields(t *testing.T) {
	ins, nds := newInspector(t)

	v, _ := ins.Lookup("vram.a.enable")
	test.ExpectEquality(t, v.(bool), false)

	nds.Mem.ARM9().Write(0x04000240, bus.Byte, 0x81)

	v, _ = ins.Lookup("vram.a.enable")
	test.ExpectEquality(t, v.(bool), true)
	v, _ = ins.Lookup("vram.a.cnt")
	test.ExpectEquality(t, v.(inspect.Hex8), inspect.Hex8(0x81))
	v, _ = ins.Lookup("vram.a.target")
	test.ExpectEquality(t, v.(string), "engine A BG")
}

func TestInterruptFields(t *testing.T) {
	ins, nds := newInspector(t)

	nds.ARM7IRQ.IE = 0x00010001
	nds.ARM7IRQ.IME = 1

	v, _ := ins.Lookup("arm7.ie")
	test.ExpectEquality(t, v.(inspect.Hex32), inspect.Hex32(0x00010001))
	v, _ = ins.Lookup("arm7.ime")
	test.ExpectEquality(t, v.(bool), true)
	v, _ = ins.Lookup("arm9.ime")
	test.ExpectEquality(t, v.(bool), false)
}

func TestReadOnly(t *testing.T) {
	ins, nds := newInspector(t)

	before := nds.Snapshot()
	for _, f := range ins.Fields() {
		_, err := ins.Lookup(f)
		test.ExpectSuccess(t, err)
	}
	after := nds.Snapshot()

	test.ExpectEquality(t, *after.ARM9, *before.ARM9)
	test.ExpectEquality(t, *after.ARM7, *before.ARM7)
	test.ExpectEquality(t, *after.ARM9IRQ, *before.ARM9IRQ)
	test.ExpectEquality(t, after.IPC.Sides, before.IPC.Sides)
	test.ExpectEquality(t, *after.Maths, *before.Maths)
}

func TestFields(t *testing.T) {
	ins, _ := newInspector(t)

	f := ins.Fields()
	test.ExpectSuccess(t, len(f) > 100)
	for i := 1; i < len(f); i++ {
		test.ExpectSuccess(t, f[i-1] < f[i])
	}

	m := ins.Match("vram.i.")
	test.ExpectEquality(t, len(m), 4)
}

func TestGraph(t *testing.T) {
	ins, _ := newInspector(t)

	w := &strings.Builder{}
	ins.Graph(w)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "digraph"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "WRAMCNT"))
}
