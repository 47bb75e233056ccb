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

	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// blockTransfer describes a load/store multiple operation. the same
// description is used for the ARM LDM/STM instructions and the Thumb
// LDMIA/STMIA/PUSH/POP instructions.
type blockTransfer struct {
	base      int
	list      uint32
	before    bool
	up        bool
	userBank  bool
	writeback bool
	load      bool

	// Thumb LDMIA never writes back when the base is in the list
	thumb bool
}

var blockTransferSuffix = [4]string{"DA", "IA", "DB", "IB"}

func executeBlockTransfer(arm *ARM, opcode uint32) Exception {
	t := blockTransfer{
		base:      int((opcode >> 16) & 0x0f),
		list:      opcode & 0xffff,
		before:    opcode&0x01000000 != 0,
		up:        opcode&0x00800000 != 0,
		userBank:  opcode&0x00400000 != 0,
		writeback: opcode&0x00200000 != 0,
		load:      opcode&0x00100000 != 0,
	}

	if arm.disasm != nil {
		mnemonic := "STM"
		if t.load {
			mnemonic = "LDM"
		}
		wb := ""
		if t.writeback {
			wb = "!"
		}
		caret := ""
		if t.userBank {
			caret = "^"
		}
		arm.disasmf(mnemonic+arm.cond()+blockTransferSuffix[(opcode>>23)&0x03], "%s%s, %s%s", reg(t.base), wb, regList(t.list), caret)
	}

	return arm.transferBlock(t)
}

// transferBlock performs the block transfer. the rules for the value of the
// base register when it is in the register list are:
//
//	STM ARMv4: the original base is stored if the base is the lowest register
//	           in the list or if there is no write back, otherwise the
//	           written back base is stored
//	STM ARMv5: the original base is always stored
//	LDM ARMv4: no write back
//	LDM ARMv5: write back if the base is the only register in the list or if
//	           it is not the last register in the list
//
// an empty list transfers R15 on ARMv4 and nothing on ARMv5. in both cases the
// base is adjusted by 0x40.
func (arm *ARM) transferBlock(t blockTransfer) Exception {
	st := arm.state
	v5 := arm.mmap.IsV5()

	list := t.list
	size := uint32(bits.OnesCount32(list)) * 4
	if list == 0 {
		size = 0x40
		if !v5 {
			list = 1 << rPC
		}
	}

	base := st.Registers[t.base]

	var addr, final uint32
	if t.up {
		final = base + size
		addr = base
		if t.before {
			addr += 4
		}
	} else {
		final = base - size
		addr = final
		if !t.before {
			addr += 4
		}
	}

	baseInList := list&(1<<t.base) != 0

	// the S bit with a load that includes the PC restores the CPSR, otherwise
	// it selects the user bank registers
	restore := t.userBank && t.load && list&(1<<rPC) != 0
	userBank := t.userBank && !restore

	if !t.load {
		for r := 0; r < NumRegisters; r++ {
			if list&(1<<r) == 0 {
				continue
			}

			var v uint32
			switch {
			case r == t.base:
				if v5 || !t.writeback || list&((1<<r)-1) == 0 {
					v = base
				} else {
					v = final
				}
			case r == rPC:
				v = arm.storeValue(rPC)
			case userBank:
				v = arm.userRegister(r)
			default:
				v = st.Registers[r]
			}

			if !arm.write(addr, bus.Word, v) {
				return ExceptionDataAbort
			}
			addr += 4
		}

		if t.writeback {
			st.Registers[t.base] = final
		}

		return ExceptionNone
	}

	// all values are read before any register is changed so that an abort
	// leaves the registers untouched
	var values [NumRegisters]uint32
	for r := 0; r < NumRegisters; r++ {
		if list&(1<<r) == 0 {
			continue
		}
		v, ok := arm.read(addr, bus.Word)
		if !ok {
			return ExceptionDataAbort
		}
		values[r] = v
		addr += 4
	}

	if t.writeback && !baseInList {
		st.Registers[t.base] = final
	}

	for r := 0; r < rPC; r++ {
		if list&(1<<r) == 0 {
			continue
		}
		if userBank {
			arm.setUserRegister(r, values[r])
		} else {
			st.Registers[r] = values[r]
		}
	}

	if t.writeback && baseInList && v5 && !t.thumb {
		only := list == 1<<t.base
		last := list>>(t.base+1) == 0
		if only || !last {
			st.Registers[t.base] = final
		}
	}

	if list&(1<<rPC) != 0 {
		if restore {
			arm.restoreCPSR()
			arm.writePC(values[rPC])
		} else {
			arm.loadRegister(rPC, values[rPC])
		}
	}

	return ExceptionNone
}
