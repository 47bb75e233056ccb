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
	"math/bits"

	"github.com/jetsetilly/gopherds/hardware/arm/bitfield"
)

func executeBranch(arm *ARM, opcode uint32) Exception {
	st := arm.state

	offset := bitfield.SignExtend32(opcode&0x00ffffff, 24) << 2
	target := st.Registers[rPC] + offset

	if opcode&0x01000000 != 0 {
		arm.disasmf("BL"+arm.cond(), "%08x", target)
		st.Registers[rLR] = arm.instructionPC + 4
	} else {
		arm.disasmf("B"+arm.cond(), "%08x", target)
	}

	arm.writePC(target)

	return ExceptionNone
}

func executeBranchLinkExchangeImmediate(arm *ARM, opcode uint32) Exception {
	st := arm.state

	// the H bit provides bit 1 of the target address
	offset := bitfield.SignExtend32(opcode&0x00ffffff, 24)<<2 | (opcode>>23)&0x02
	target := st.Registers[rPC] + offset

	arm.disasmf("BLX", "%08x", target)

	st.Registers[rLR] = arm.instructionPC + 4
	st.CPSR.setThumb(true)
	arm.writePC(target)

	return ExceptionNone
}

func executeBranchExchange(arm *ARM, opcode uint32) Exception {
	rm := int(opcode & 0x0f)
	arm.disasmf("BX"+arm.cond(), "%s", reg(rm))
	arm.interwork(arm.state.Registers[rm])
	return ExceptionNone
}

func executeBranchLinkExchangeRegister(arm *ARM, opcode uint32) Exception {
	st := arm.state

	rm := int(opcode & 0x0f)
	arm.disasmf("BLX"+arm.cond(), "%s", reg(rm))

	// target is read before the link register is written in case rm is LR
	target := st.Registers[rm]
	st.Registers[rLR] = arm.instructionPC + 4
	arm.interwork(target)

	return ExceptionNone
}

func executeCountLeadingZeros(arm *ARM, opcode uint32) Exception {
	st := arm.state

	rd := int((opcode >> 12) & 0x0f)
	rm := int(opcode & 0x0f)
	arm.disasmf("CLZ"+arm.cond(), "%s, %s", reg(rd), reg(rm))

	st.Registers[rd] = uint32(bits.LeadingZeros32(st.Registers[rm]))

	return ExceptionNone
}

func executeSoftwareInterrupt(arm *ARM, opcode uint32) Exception {
	arm.disasmf("SWI"+arm.cond(), "#%06x", opcode&0x00ffffff)
	return ExceptionSWI
}

func executeBreakpoint(arm *ARM, opcode uint32) Exception {
	arm.disasmf("BKPT", "#%04x", (opcode>>4)&0xfff0|opcode&0x0f)
	return ExceptionPrefetchAbort
}

func executeUndefined(arm *ARM, opcode uint32) Exception {
	arm.disasmf("UND", "%08x", opcode)
	return ExceptionUndefined
}

func executePreload(arm *ARM, opcode uint32) Exception {
	// there is no cache to preload. the instruction has no architectural
	// effect
	arm.disasmf("PLD", "[%s]", reg((opcode>>16)&0x0f))
	return ExceptionNone
}
