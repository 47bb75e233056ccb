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

// executeFunction is the execution function for a single instruction class.
// the return value is ExceptionNone for normal completion or the exception
// that the instruction raises.
//
// R15 has been advanced by the pipeline offset before the function is called.
// functions that change the flow of control do so by calling writePC(),
// interwork() or loadRegister().
type executeFunction func(arm *ARM, opcode uint32) Exception

// every instruction class has exactly one execution function.
var executors = [NumClasses]executeFunction{
	Undefined:                   executeUndefined,
	BranchExchange:              executeBranchExchange,
	BranchLinkExchangeRegister:  executeBranchLinkExchangeRegister,
	CountLeadingZeros:           executeCountLeadingZeros,
	SaturatingArithmetic:        executeSaturatingArithmetic,
	Breakpoint:                  executeBreakpoint,
	SignedHalfwordMultiply:      executeSignedHalfwordMultiply,
	Multiply:                    executeMultiply,
	MultiplyLong:                executeMultiplyLong,
	Swap:                        executeSwap,
	HalfwordTransfer:            executeHalfwordTransfer,
	StatusRead:                  executeStatusRead,
	StatusWriteRegister:         executeStatusWrite,
	StatusWriteImmediate:        executeStatusWrite,
	DataProcessing:              executeDataProcessing,
	SingleTransfer:              executeSingleTransfer,
	BlockTransfer:               executeBlockTransfer,
	Branch:                      executeBranch,
	CoprocessorTransfer:         executeCoprocessorUnsupported,
	CoprocessorDataOperation:    executeCoprocessorUnsupported,
	CoprocessorRegisterTransfer: executeCoprocessorRegisterTransfer,
	SoftwareInterrupt:           executeSoftwareInterrupt,
	BranchLinkExchangeImmediate: executeBranchLinkExchangeImmediate,
	Preload:                     executePreload,

	ThumbMoveShifted:              executeThumbMoveShifted,
	ThumbAddSubtract:              executeThumbAddSubtract,
	ThumbImmediate:                executeThumbImmediate,
	ThumbALU:                      executeThumbALU,
	ThumbHiRegister:               executeThumbHiRegister,
	ThumbPCRelativeLoad:           executeThumbPCRelativeLoad,
	ThumbRegisterOffset:           executeThumbRegisterOffset,
	ThumbSignExtended:             executeThumbSignExtended,
	ThumbImmediateOffset:          executeThumbImmediateOffset,
	ThumbHalfword:                 executeThumbHalfword,
	ThumbSPRelative:               executeThumbSPRelative,
	ThumbLoadAddress:              executeThumbLoadAddress,
	ThumbAddSP:                    executeThumbAddSP,
	ThumbPushPop:                  executeThumbPushPop,
	ThumbBreakpoint:               executeThumbBreakpoint,
	ThumbBlockTransfer:            executeThumbBlockTransfer,
	ThumbSoftwareInterrupt:        executeThumbSoftwareInterrupt,
	ThumbUndefined:                executeThumbUndefined,
	ThumbConditionalBranch:        executeThumbConditionalBranch,
	ThumbBranch:                   executeThumbBranch,
	ThumbBranchLinkExchangeSuffix: executeThumbBranchLinkSuffix,
	ThumbBranchLinkPrefix:         executeThumbBranchLinkPrefix,
	ThumbBranchLinkSuffix:         executeThumbBranchLinkSuffix,
}
