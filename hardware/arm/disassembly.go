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
	"fmt"
	"io"
	"strings"
)

// DisasmEntry is a description of an executed instruction.
type DisasmEntry struct {
	Addr   uint32
	Opcode uint32
	Thumb  bool
	Class  Class

	Operator string
	Operand  string

	// false if the condition of the instruction failed and the instruction
	// had no effect
	Executed bool

	// snapshot of the registers after the instruction has executed
	Registers [NumRegisters]uint32
	CPSR      Status
}

func (e DisasmEntry) String() string {
	s := strings.Builder{}
	if e.Thumb {
		s.WriteString(fmt.Sprintf("%08x     %04x  ", e.Addr, e.Opcode))
	} else {
		s.WriteString(fmt.Sprintf("%08x %08x  ", e.Addr, e.Opcode))
	}
	s.WriteString(fmt.Sprintf("%-8s %s", e.Operator, e.Operand))
	if !e.Executed {
		s.WriteString(" (not executed)")
	}
	return strings.TrimRight(s.String(), " ")
}

// DisasmWriter is an implementation of the Disassembler interface that writes
// every entry to an io.Writer.
type DisasmWriter struct {
	Output io.Writer
	Label  string
}

// Step implements the Disassembler interface.
func (w DisasmWriter) Step(e DisasmEntry) {
	if w.Label != "" {
		fmt.Fprintf(w.Output, "%s: %s\n", w.Label, e)
	} else {
		fmt.Fprintln(w.Output, e)
	}
}

// the disasm functions return immediately when no disassembler is attached.

func (arm *ARM) disasmStart(class Class) {
	if arm.disasm == nil {
		return
	}
	arm.disasmEntry = DisasmEntry{
		Addr:     arm.instructionPC,
		Opcode:   arm.opcode,
		Thumb:    class.Thumb(),
		Class:    class,
		Executed: true,
	}
}

func (arm *ARM) disasmCondition(executed bool) {
	if arm.disasm == nil {
		return
	}
	arm.disasmEntry.Executed = executed
}

func (arm *ARM) disasmf(operator string, operand string, args ...interface{}) {
	if arm.disasm == nil {
		return
	}
	arm.disasmEntry.Operator = operator
	arm.disasmEntry.Operand = fmt.Sprintf(operand, args...)
}

// cond returns the mnemonic suffix for the condition code of the current ARM
// instruction.
func (arm *ARM) cond() string {
	if arm.state.CPSR.Thumb() {
		return ""
	}
	c := arm.opcode >> 28
	if c == 0xf {
		return ""
	}
	return conditionSuffix[c]
}

// reg and regList format registers in assembler notation. they can be passed
// to disasmf() without cost when no disassembler is attached.
type reg int

func (r reg) String() string {
	switch r {
	case rSP:
		return "SP"
	case rLR:
		return "LR"
	case rPC:
		return "PC"
	}
	return fmt.Sprintf("R%d", int(r))
}

type regList uint32

func (l regList) String() string {
	s := strings.Builder{}
	s.WriteRune('{')
	first := true
	for r := 0; r < NumRegisters; r++ {
		if l&(1<<r) == 0 {
			continue
		}
		if !first {
			s.WriteString(", ")
		}
		first = false
		s.WriteString(reg(r).String())
	}
	s.WriteRune('}')
	return s.String()
}
