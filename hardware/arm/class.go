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

import "fmt"

// Class is the instruction class of an opcode as determined by Decode().
type Class int

// List of valid Class values.
const (
	Undefined Class = iota

	// 32bit ARM instructions
	BranchExchange
	BranchLinkExchangeRegister
	CountLeadingZeros
	SaturatingArithmetic
	Breakpoint
	SignedHalfwordMultiply
	Multiply
	MultiplyLong
	Swap
	HalfwordTransfer
	StatusRead
	StatusWriteRegister
	StatusWriteImmediate
	DataProcessing
	SingleTransfer
	BlockTransfer
	Branch
	CoprocessorTransfer
	CoprocessorDataOperation
	CoprocessorRegisterTransfer
	SoftwareInterrupt

	// unconditional ARMv5 instructions. encoded with the never condition
	BranchLinkExchangeImmediate
	Preload

	// 16bit Thumb instructions
	ThumbMoveShifted
	ThumbAddSubtract
	ThumbImmediate
	ThumbALU
	ThumbHiRegister
	ThumbPCRelativeLoad
	ThumbRegisterOffset
	ThumbSignExtended
	ThumbImmediateOffset
	ThumbHalfword
	ThumbSPRelative
	ThumbLoadAddress
	ThumbAddSP
	ThumbPushPop
	ThumbBreakpoint
	ThumbBlockTransfer
	ThumbSoftwareInterrupt
	ThumbUndefined
	ThumbConditionalBranch
	ThumbBranch
	ThumbBranchLinkExchangeSuffix
	ThumbBranchLinkPrefix
	ThumbBranchLinkSuffix

	NumClasses
)

var classNames = [NumClasses]string{
	Undefined:                     "undefined",
	BranchExchange:                "branch and exchange",
	BranchLinkExchangeRegister:    "branch link and exchange (register)",
	CountLeadingZeros:             "count leading zeros",
	SaturatingArithmetic:          "saturating arithmetic",
	Breakpoint:                    "breakpoint",
	SignedHalfwordMultiply:        "signed halfword multiply",
	Multiply:                      "multiply",
	MultiplyLong:                  "multiply long",
	Swap:                          "swap",
	HalfwordTransfer:              "halfword transfer",
	StatusRead:                    "status read",
	StatusWriteRegister:           "status write (register)",
	StatusWriteImmediate:          "status write (immediate)",
	DataProcessing:                "data processing",
	SingleTransfer:                "single transfer",
	BlockTransfer:                 "block transfer",
	Branch:                        "branch",
	CoprocessorTransfer:           "coprocessor transfer",
	CoprocessorDataOperation:      "coprocessor data operation",
	CoprocessorRegisterTransfer:   "coprocessor register transfer",
	SoftwareInterrupt:             "software interrupt",
	BranchLinkExchangeImmediate:   "branch link and exchange (immediate)",
	Preload:                       "preload",
	ThumbMoveShifted:              "thumb move shifted register",
	ThumbAddSubtract:              "thumb add/subtract",
	ThumbImmediate:                "thumb move/compare/add/subtract immediate",
	ThumbALU:                      "thumb ALU operation",
	ThumbHiRegister:               "thumb hi register operation",
	ThumbPCRelativeLoad:           "thumb PC relative load",
	ThumbRegisterOffset:           "thumb load/store register offset",
	ThumbSignExtended:             "thumb load/store sign extended",
	ThumbImmediateOffset:          "thumb load/store immediate offset",
	ThumbHalfword:                 "thumb load/store halfword",
	ThumbSPRelative:               "thumb SP relative load/store",
	ThumbLoadAddress:              "thumb load address",
	ThumbAddSP:                    "thumb add offset to SP",
	ThumbPushPop:                  "thumb push/pop",
	ThumbBreakpoint:               "thumb breakpoint",
	ThumbBlockTransfer:            "thumb block transfer",
	ThumbSoftwareInterrupt:        "thumb software interrupt",
	ThumbUndefined:                "thumb undefined",
	ThumbConditionalBranch:        "thumb conditional branch",
	ThumbBranch:                   "thumb branch",
	ThumbBranchLinkExchangeSuffix: "thumb branch link and exchange (suffix)",
	ThumbBranchLinkPrefix:         "thumb branch link (prefix)",
	ThumbBranchLinkSuffix:         "thumb branch link (suffix)",
}

func (c Class) String() string {
	if c < 0 || c >= NumClasses {
		return fmt.Sprintf("unknown class (%d)", int(c))
	}
	return classNames[c]
}

// Thumb returns true if the class is a Thumb instruction class.
func (c Class) Thumb() bool {
	return c >= ThumbMoveShifted && c < NumClasses
}

// requiresV5 returns true if the class is only available on ARMv5 cores. on
// earlier cores the instruction is executed as an undefined instruction.
func (c Class) requiresV5() bool {
	switch c {
	case BranchLinkExchangeRegister, CountLeadingZeros, SaturatingArithmetic,
		Breakpoint, SignedHalfwordMultiply, BranchLinkExchangeImmediate, Preload,
		ThumbBreakpoint, ThumbBranchLinkExchangeSuffix:
		return true
	}
	return false
}
