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

// CP15 control register bits.
const (
	controlMPU          = 0x00000001
	controlDCache       = 0x00000004
	controlICache       = 0x00001000
	controlHighVectors  = 0x00002000
	controlDTCMEnable   = 0x00010000
	controlDTCMLoadMode = 0x00020000
	controlITCMEnable   = 0x00040000
	controlITCMLoadMode = 0x00080000

	// bits 3 to 6 always read as one
	controlFixed = 0x00000078

	// bits that can be changed by the program
	controlWritable = 0x000ff085
)

// CP15 is the state of the system control coprocessor of the ARM9.
type CP15 struct {
	Control uint32

	// c2 and c3
	DataCacheable        uint32
	InstructionCacheable uint32
	WriteBuffer          uint32

	// c5. the extended form of the access permission registers. four bits
	// per region
	DataPermissions        uint32
	InstructionPermissions uint32

	// c6. the protection regions
	Regions [8]uint32

	// c9
	DataLockdown        uint32
	InstructionLockdown uint32
	DTCMRegion          uint32
	ITCMRegion          uint32

	// c13
	ProcessID uint32
}

func (cp *CP15) reset(highVectors bool) {
	*cp = CP15{}
	cp.Control = controlFixed
	if highVectors {
		cp.Control |= controlHighVectors
	}
}

// directBoot leaves the TCMs in the state the boot code leaves them. The
// data TCM is at 0x027c0000 with a virtual size of 16KB and both TCMs are
// enabled.
func (cp *CP15) directBoot() {
	cp.DTCMRegion = 0x027c0000 | 5<<1
	cp.ITCMRegion = 0x00000000 | 16<<1
	cp.Control |= controlDTCMEnable | controlITCMEnable
}

func (cp *CP15) highVectors() bool {
	return cp.Control&controlHighVectors != 0
}

// MPUEnabled returns true if the memory protection unit is enabled.
func (cp *CP15) MPUEnabled() bool {
	return cp.Control&controlMPU != 0
}

// region returns the base and size of protection region n. the size is zero
// if the region is disabled.
func (cp *CP15) region(n int) (uint32, uint64) {
	r := cp.Regions[n]
	if r&0x01 == 0 {
		return 0, 0
	}
	sizeField := (r >> 1) & 0x1f
	if sizeField < 11 {
		// sizes smaller than 4KB are unpredictable. treat as 4KB
		sizeField = 11
	}
	size := uint64(2) << sizeField
	base := r &^ 0xfff &^ uint32(size-1)
	return base, size
}

// permitted returns true if the address is covered by an enabled protection
// region. all addresses are permitted when the MPU is disabled.
func (cp *CP15) permitted(addr uint32) bool {
	if !cp.MPUEnabled() {
		return true
	}
	for n := range cp.Regions {
		base, size := cp.region(n)
		if size > 0 && uint64(addr) >= uint64(base) && uint64(addr) < uint64(base)+size {
			return true
		}
	}
	return false
}

// tcmSize converts the virtual size field of a TCM region register into bytes.
func tcmSize(r uint32) uint32 {
	return 512 << ((r >> 1) & 0x1f)
}

// TCMConfig returns the current configuration of the tightly coupled memories.
func (cp *CP15) TCMConfig() TCMConfig {
	return TCMConfig{
		ITCMEnabled:  cp.Control&controlITCMEnable != 0,
		ITCMLoadMode: cp.Control&controlITCMLoadMode != 0,
		ITCMSize:     tcmSize(cp.ITCMRegion),
		DTCMEnabled:  cp.Control&controlDTCMEnable != 0,
		DTCMLoadMode: cp.Control&controlDTCMLoadMode != 0,
		DTCMBase:     cp.DTCMRegion &^ 0xfff,
		DTCMSize:     tcmSize(cp.DTCMRegion),
	}
}

func (arm *ARM) pushTCM() {
	if arm.tcm == nil || !arm.mmap.HasCP15 {
		return
	}
	arm.tcm.ConfigureTCM(arm.state.CP15.TCMConfig())
}

// simplePermissions converts between the simple (two bits per region) and
// extended (four bits per region) forms of the access permission registers.
func simplePermissions(extended uint32) uint32 {
	var s uint32
	for i := 0; i < 8; i++ {
		s |= ((extended >> (i * 4)) & 0x03) << (i * 2)
	}
	return s
}

func extendedPermissions(simple uint32) uint32 {
	var e uint32
	for i := 0; i < 8; i++ {
		e |= ((simple >> (i * 2)) & 0x03) << (i * 4)
	}
	return e
}

// cp15 register identifier. the four fields of an MCR/MRC instruction that
// select the register.
type cp15Register struct {
	crn  uint32
	opc1 uint32
	crm  uint32
	opc2 uint32
}

func (r cp15Register) String() string {
	return fmt.Sprintf("p15, %d, c%d, c%d, %d", r.opc1, r.crn, r.crm, r.opc2)
}

// mrc reads a CP15 register.
func (arm *ARM) mrc(r cp15Register) uint32 {
	cp := &arm.state.CP15

	switch r.crn {
	case 0:
		switch r.opc2 {
		case 1:
			return arm.mmap.CacheType
		case 2:
			return arm.mmap.TCMSize
		}
		return arm.mmap.ProcessorID
	case 1:
		return cp.Control
	case 2:
		if r.opc2 == 1 {
			return cp.InstructionCacheable
		}
		return cp.DataCacheable
	case 3:
		return cp.WriteBuffer
	case 5:
		switch r.opc2 {
		case 0:
			return simplePermissions(cp.DataPermissions)
		case 1:
			return simplePermissions(cp.InstructionPermissions)
		case 2:
			return cp.DataPermissions
		case 3:
			return cp.InstructionPermissions
		}
	case 6:
		return cp.Regions[r.crm&0x07]
	case 9:
		switch {
		case r.crm == 0 && r.opc2 == 0:
			return cp.DataLockdown
		case r.crm == 0 && r.opc2 == 1:
			return cp.InstructionLockdown
		case r.crm == 1 && r.opc2 == 0:
			return cp.DTCMRegion
		case r.crm == 1 && r.opc2 == 1:
			return cp.ITCMRegion
		}
	case 13:
		return cp.ProcessID
	}

	arm.log("unsupported CP15 read (%s)", r)
	return 0
}

// mcr writes to a CP15 register.
func (arm *ARM) mcr(r cp15Register, value uint32) {
	cp := &arm.state.CP15

	switch r.crn {
	case 1:
		cp.Control = (cp.Control &^ controlWritable) | (value & controlWritable) | controlFixed
		arm.pushTCM()
		return
	case 2:
		if r.opc2 == 1 {
			cp.InstructionCacheable = value
		} else {
			cp.DataCacheable = value
		}
		return
	case 3:
		cp.WriteBuffer = value
		return
	case 5:
		switch r.opc2 {
		case 0:
			cp.DataPermissions = extendedPermissions(value)
			return
		case 1:
			cp.InstructionPermissions = extendedPermissions(value)
			return
		case 2:
			cp.DataPermissions = value
			return
		case 3:
			cp.InstructionPermissions = value
			return
		}
	case 6:
		cp.Regions[r.crm&0x07] = value
		return
	case 7:
		// cache operations have no effect because there is no cache. the wait
		// for interrupt operation halts the processor
		if (r.crm == 0 && r.opc2 == 4) || (r.crm == 8 && r.opc2 == 2) {
			arm.Halt()
		}
		return
	case 9:
		switch {
		case r.crm == 0 && r.opc2 == 0:
			cp.DataLockdown = value
			return
		case r.crm == 0 && r.opc2 == 1:
			cp.InstructionLockdown = value
			return
		case r.crm == 1 && r.opc2 == 0:
			cp.DTCMRegion = value
			arm.pushTCM()
			return
		case r.crm == 1 && r.opc2 == 1:
			cp.ITCMRegion = value
			arm.pushTCM()
			return
		}
	case 13:
		cp.ProcessID = value
		return
	}

	arm.log("unsupported CP15 write (%s)", r)
}

func executeCoprocessorRegisterTransfer(arm *ARM, opcode uint32) Exception {
	st := arm.state

	load := opcode&0x00100000 != 0
	cpNum := (opcode >> 8) & 0x0f
	rd := int((opcode >> 12) & 0x0f)
	r := cp15Register{
		opc1: (opcode >> 21) & 0x07,
		crn:  (opcode >> 16) & 0x0f,
		crm:  opcode & 0x0f,
		opc2: (opcode >> 5) & 0x07,
	}

	if cpNum != 15 || !arm.mmap.HasCP15 {
		arm.disasmf("UND", "coprocessor %d", cpNum)
		return ExceptionUndefined
	}

	// CP15 is not accessible in user mode
	if !st.CPSR.Mode().Privileged() {
		arm.disasmf("UND", "CP15 access in user mode")
		return ExceptionUndefined
	}

	if load {
		arm.disasmf("MRC"+arm.cond(), "%s, %s", r, reg(rd))
		v := arm.mrc(r)
		if rd == rPC {
			// the top four bits of the value are copied to the flags
			st.CPSR = (st.CPSR &^ 0xf0000000) | Status(v&0xf0000000)
		} else {
			st.Registers[rd] = v
		}
		return ExceptionNone
	}

	arm.disasmf("MCR"+arm.cond(), "%s, %s", r, reg(rd))
	arm.mcr(r, arm.storeValue(rd))

	return ExceptionNone
}

// coprocessor data operations and coprocessor load/store are not supported by
// any coprocessor in the system.
func executeCoprocessorUnsupported(arm *ARM, opcode uint32) Exception {
	arm.disasmf("UND", "coprocessor %d", (opcode>>8)&0x0f)
	return ExceptionUndefined
}
