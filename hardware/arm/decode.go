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
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// pattern is a single entry in a decoding table. an opcode matches the entry
// if opcode&mask == match.
type pattern struct {
	mask  uint32
	match uint32
	class Class
}

// the order of entries in the decoding tables is important. several classes
// share bit patterns with classes further down the table and rely on being
// tested first.
var armPatterns = []pattern{
	{mask: 0x0ffffff0, match: 0x012fff10, class: BranchExchange},
	{mask: 0x0ffffff0, match: 0x012fff30, class: BranchLinkExchangeRegister},
	{mask: 0x0fff0ff0, match: 0x016f0f10, class: CountLeadingZeros},
	{mask: 0x0f900ff0, match: 0x01000050, class: SaturatingArithmetic},
	{mask: 0x0ff000f0, match: 0x01200070, class: Breakpoint},
	{mask: 0x0f900090, match: 0x01000080, class: SignedHalfwordMultiply},
	{mask: 0x0fc000f0, match: 0x00000090, class: Multiply},
	{mask: 0x0f8000f0, match: 0x00800090, class: MultiplyLong},
	{mask: 0x0fb00ff0, match: 0x01000090, class: Swap},
	{mask: 0x0e000090, match: 0x00000090, class: HalfwordTransfer},
	{mask: 0x0fbf0fff, match: 0x010f0000, class: StatusRead},
	{mask: 0x0fb0fff0, match: 0x0120f000, class: StatusWriteRegister},
	{mask: 0x0fb0f000, match: 0x0320f000, class: StatusWriteImmediate},
	{mask: 0x0c000000, match: 0x00000000, class: DataProcessing},
	{mask: 0x0e000010, match: 0x06000010, class: Undefined},
	{mask: 0x0c000000, match: 0x04000000, class: SingleTransfer},
	{mask: 0x0e000000, match: 0x08000000, class: BlockTransfer},
	{mask: 0x0e000000, match: 0x0a000000, class: Branch},
	{mask: 0x0e000000, match: 0x0c000000, class: CoprocessorTransfer},
	{mask: 0x0f000010, match: 0x0e000000, class: CoprocessorDataOperation},
	{mask: 0x0f000010, match: 0x0e000010, class: CoprocessorRegisterTransfer},
	{mask: 0x0f000000, match: 0x0f000000, class: SoftwareInterrupt},
}

// instructions with the never condition code
var armUnconditionalPatterns = []pattern{
	{mask: 0xfe000000, match: 0xfa000000, class: BranchLinkExchangeImmediate},
	{mask: 0xfd70f000, match: 0xf550f000, class: Preload},
}

var thumbPatterns = []pattern{
	{mask: 0xf800, match: 0x1800, class: ThumbAddSubtract},
	{mask: 0xe000, match: 0x0000, class: ThumbMoveShifted},
	{mask: 0xe000, match: 0x2000, class: ThumbImmediate},
	{mask: 0xfc00, match: 0x4000, class: ThumbALU},
	{mask: 0xfc00, match: 0x4400, class: ThumbHiRegister},
	{mask: 0xf800, match: 0x4800, class: ThumbPCRelativeLoad},
	{mask: 0xf200, match: 0x5000, class: ThumbRegisterOffset},
	{mask: 0xf200, match: 0x5200, class: ThumbSignExtended},
	{mask: 0xe000, match: 0x6000, class: ThumbImmediateOffset},
	{mask: 0xf000, match: 0x8000, class: ThumbHalfword},
	{mask: 0xf000, match: 0x9000, class: ThumbSPRelative},
	{mask: 0xf000, match: 0xa000, class: ThumbLoadAddress},
	{mask: 0xff00, match: 0xb000, class: ThumbAddSP},
	{mask: 0xf600, match: 0xb400, class: ThumbPushPop},
	{mask: 0xff00, match: 0xbe00, class: ThumbBreakpoint},
	{mask: 0xf000, match: 0xc000, class: ThumbBlockTransfer},
	{mask: 0xff00, match: 0xdf00, class: ThumbSoftwareInterrupt},
	{mask: 0xff00, match: 0xde00, class: ThumbUndefined},
	{mask: 0xf000, match: 0xd000, class: ThumbConditionalBranch},
	{mask: 0xf800, match: 0xe000, class: ThumbBranch},
	{mask: 0xf800, match: 0xe800, class: ThumbBranchLinkExchangeSuffix},
	{mask: 0xf800, match: 0xf000, class: ThumbBranchLinkPrefix},
	{mask: 0xf800, match: 0xf800, class: ThumbBranchLinkSuffix},
}

func match(patterns []pattern, opcode uint32) (Class, bool) {
	for _, p := range patterns {
		if opcode&p.mask == p.match {
			return p.class, true
		}
	}
	return Undefined, false
}

// Decode returns the instruction class of the opcode. The width argument
// selects the instruction set: bus.Word for ARM and bus.Halfword for Thumb.
//
// Every opcode decodes to exactly one class. Opcodes that match no entry in
// the decoding table are Undefined (or ThumbUndefined).
func Decode(opcode uint32, width bus.Width) Class {
	switch width {
	case bus.Word:
		if opcode>>28 == 0xf {
			if c, ok := match(armUnconditionalPatterns, opcode); ok {
				return c
			}
			return Undefined
		}
		c, _ := match(armPatterns, opcode)
		return c

	case bus.Halfword:
		if c, ok := match(thumbPatterns, opcode&0xffff); ok {
			return c
		}
		return ThumbUndefined
	}

	panic("arm: cannot decode instruction of width " + width.String())
}
