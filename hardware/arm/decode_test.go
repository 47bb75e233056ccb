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

	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/test"
)

func TestDecodeARM(t *testing.T) {
	var tests = []struct {
		opcode uint32
		class  Class
	}{
		{0xe3a00001, DataProcessing},              // MOV R0, #1
		{0xe0910002, DataProcessing},              // ADDS R0, R1, R2
		{0xe12fff1e, BranchExchange},              // BX LR
		{0xe12fff31, BranchLinkExchangeRegister},  // BLX R1
		{0xe16f0f11, CountLeadingZeros},           // CLZ R0, R1
		{0xe1010052, SaturatingArithmetic},        // QADD R0, R2, R1
		{0xe1200070, Breakpoint},                  // BKPT #0
		{0xe1000281, SignedHalfwordMultiply},      // SMLABB R0, R1, R2, R0
		{0xe0000291, Multiply},                    // MUL R0, R1, R2
		{0xe0810392, MultiplyLong},                // UMULL R0, R1, R2, R3
		{0xe1010092, Swap},                        // SWP R0, R2, [R1]
		{0xe1d000b0, HalfwordTransfer},            // LDRH R0, [R0]
		{0xe1c020d0, HalfwordTransfer},            // LDRD R2, [R0]
		{0xe10f0000, StatusRead},                  // MRS R0, CPSR
		{0xe129f000, StatusWriteRegister},         // MSR CPSR_fc, R0
		{0xe328f20f, StatusWriteImmediate},        // MSR CPSR_f, #0xf0000000
		{0xe5900000, SingleTransfer},              // LDR R0, [R0]
		{0xe7f000f0, Undefined},                   // permanently undefined
		{0xe8bd8000, BlockTransfer},               // LDMIA SP!, {PC}
		{0xea000000, Branch},                      // B
		{0xeb000000, Branch},                      // BL
		{0xed900000, CoprocessorTransfer},         // LDC
		{0xee000000, CoprocessorDataOperation},    // CDP
		{0xee110f10, CoprocessorRegisterTransfer}, // MRC p15, 0, R0, c1, c0, 0
		{0xef000000, SoftwareInterrupt},           // SWI #0
		{0xfa000000, BranchLinkExchangeImmediate}, // BLX
		{0xf5d0f000, Preload},                     // PLD [R0]
		{0xf0000000, Undefined},                   // never condition
	}

	for _, tt := range tests {
		c := Decode(tt.opcode, bus.Word)
		if c != tt.class {
			t.Errorf("decode of %08x: got %s, wanted %s", tt.opcode, c, tt.class)
		}
	}
}

func TestDecodeThumb(t *testing.T) {
	var tests = []struct {
		opcode uint32
		class  Class
	}{
		{0x0088, ThumbMoveShifted},              // LSLS R0, R1, #2
		{0x1888, ThumbAddSubtract},              // ADDS R0, R1, R2
		{0x2001, ThumbImmediate},                // MOVS R0, #1
		{0x4048, ThumbALU},                      // EORS R0, R1
		{0x4770, ThumbHiRegister},               // BX LR
		{0x4801, ThumbPCRelativeLoad},           // LDR R0, [PC, #4]
		{0x5088, ThumbRegisterOffset},           // STR R0, [R1, R2]
		{0x5e88, ThumbSignExtended},             // LDRSH R0, [R1, R2]
		{0x6808, ThumbImmediateOffset},          // LDR R0, [R1]
		{0x8808, ThumbHalfword},                 // LDRH R0, [R1]
		{0x9801, ThumbSPRelative},               // LDR R0, [SP, #4]
		{0xa801, ThumbLoadAddress},              // ADD R0, SP, #4
		{0xb082, ThumbAddSP},                    // SUB SP, #8
		{0xb500, ThumbPushPop},                  // PUSH {LR}
		{0xbd00, ThumbPushPop},                  // POP {PC}
		{0xbe00, ThumbBreakpoint},               // BKPT #0
		{0xc803, ThumbBlockTransfer},            // LDMIA R0!, {R0, R1}
		{0xdf00, ThumbSoftwareInterrupt},        // SWI #0
		{0xde00, ThumbUndefined},                // condition 0xe
		{0xd0fe, ThumbConditionalBranch},        // BEQ
		{0xe7fe, ThumbBranch},                   // B
		{0xf000, ThumbBranchLinkPrefix},         // BL (prefix)
		{0xf800, ThumbBranchLinkSuffix},         // BL (suffix)
		{0xe800, ThumbBranchLinkExchangeSuffix}, // BLX (suffix)
		{0xb100, ThumbUndefined},
	}

	for _, tt := range tests {
		c := Decode(tt.opcode, bus.Halfword)
		if c != tt.class {
			t.Errorf("decode of %04x: got %s, wanted %s", tt.opcode, c, tt.class)
		}
	}
}

// every opcode decodes to a class with an execution function. the Thumb
// instruction set is tested exhaustively. ARM instructions are tested by
// varying the bits that select the instruction class.
func TestDecodeTotality(t *testing.T) {
	for c := Class(0); c < NumClasses; c++ {
		if executors[c] == nil {
			t.Errorf("no execution function for %s", c)
		}
	}

	for opcode := uint32(0); opcode <= 0xffff; opcode++ {
		c := Decode(opcode, bus.Halfword)
		if !c.Thumb() {
			t.Fatalf("thumb opcode %04x decodes to the ARM class %s", opcode, c)
		}
	}

	for hi := uint32(0); hi <= 0xfff; hi++ {
		for lo := uint32(0); lo <= 0xff; lo++ {
			opcode := hi<<20 | lo<<4 | 0x0000f00f
			c := Decode(opcode, bus.Word)
			if c.Thumb() {
				t.Fatalf("ARM opcode %08x decodes to the thumb class %s", opcode, c)
			}
		}
	}
}

func TestClassString(t *testing.T) {
	test.ExpectEquality(t, Branch.String(), "branch")
	test.ExpectEquality(t, Class(-1).String(), "unknown class (-1)")
	test.ExpectSuccess(t, ThumbBranch.Thumb())
	test.ExpectFailure(t, Branch.Thumb())
	test.ExpectSuccess(t, Preload.requiresV5())
	test.ExpectFailure(t, Multiply.requiresV5())
}
