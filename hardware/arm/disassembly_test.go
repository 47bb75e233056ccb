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

func TestDisassembly(t *testing.T) {
	arm, mem, _ := newTestARM(t, architecture.ARM7)
	w := &test.Writer{}
	arm.SetDisassembler(DisasmWriter{Output: w, Label: "ARM7"})

	// MOV R0, #1; LDMIA SP!, {R0, R1, PC}
	mem.putARM(origin, 0xe3a00001, 0xe8bd8003)
	step(arm, 1)
	test.ExpectEquality(t, w.String(), "ARM7: 02000000 e3a00001  MOV      R0, #1\n")

	w.Clear()
	step(arm, 1)
	test.ExpectEquality(t, w.String(), "ARM7: 02000004 e8bd8003  LDMIA    SP!, {R0, R1, PC}\n")

	arm, mem, _ = newTestARM(t, architecture.ARM7)
	arm.SetDisassembler(DisasmWriter{Output: w})
	enterThumb(arm)
	w.Clear()

	// MOVS R0, #1
	mem.putThumb(origin, 0x2001)
	step(arm, 1)
	test.ExpectEquality(t, w.String(), "02000000     2001  MOVS     R0, #1\n")

	// detaching the disassembler stops output
	arm.SetDisassembler(nil)
	w.Clear()
	step(arm, 1)
	test.ExpectEquality(t, w.String(), "")
}

func TestDisasmEntry(t *testing.T) {
	e := DisasmEntry{
		Addr:     0x02000000,
		Opcode:   0x03a00001,
		Operator: "MOVEQ",
		Operand:  "R0, #1",
	}
	test.ExpectEquality(t, e.String(), "02000000 03a00001  MOVEQ    R0, #1 (not executed)")
}
