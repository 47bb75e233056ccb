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

// Package architecture defines the Map type that is used to specify the
// differences between the two ARM cores in the console.
package architecture

// Core identifies one of the two processors.
type Core string

// List of valid Core values.
const (
	ARM9 Core = "ARM9"
	ARM7 Core = "ARM7"
)

// ARMArchitecture defines the instruction set features of the ARM core.
type ARMArchitecture string

// List of valid ARMArchitecture values.
const (
	ARMv4T  ARMArchitecture = "ARMv4T"
	ARMv5TE ARMArchitecture = "ARMv5TE"
)

// Map of the differences between the two cores.
type Map struct {
	Core            Core
	ARMArchitecture ARMArchitecture

	// whether the system control coprocessor is present
	HasCP15 bool

	// the base address of the exception vectors. for the ARM9 this is the low
	// vector base and is replaced by HighVectorBase when the high vector bit
	// of the CP15 control register is set
	VectorBase     uint32
	HighVectorBase uint32

	// value of the program counter on reset
	ResetPC uint32

	// stack pointer values when the BIOS boot sequence is skipped
	BootStackSystem     uint32
	BootStackIRQ        uint32
	BootStackSupervisor uint32

	// the processor ID returned by the CP15 identification registers
	ProcessorID uint32
	CacheType   uint32
	TCMSize     uint32
}

// NewMap is the preferred method of initialisation for the Map type.
func NewMap(core Core) Map {
	mmap := Map{
		Core: core,
	}

	switch mmap.Core {
	case ARM9:
		mmap.ARMArchitecture = ARMv5TE
		mmap.HasCP15 = true
		mmap.VectorBase = 0x00000000
		mmap.HighVectorBase = 0xffff0000
		mmap.ResetPC = 0xffff0000
		mmap.BootStackSystem = 0x03002f7c
		mmap.BootStackIRQ = 0x03003f80
		mmap.BootStackSupervisor = 0x03003fc0

		// ARM946E-S values as seen on hardware
		mmap.ProcessorID = 0x41059461
		mmap.CacheType = 0x0f0d2112
		mmap.TCMSize = 0x00140180

	case ARM7:
		mmap.ARMArchitecture = ARMv4T
		mmap.HasCP15 = false
		mmap.VectorBase = 0x00000000
		mmap.HighVectorBase = 0x00000000
		mmap.ResetPC = 0x00000000
		mmap.BootStackSystem = 0x0380fd80
		mmap.BootStackIRQ = 0x0380ff80
		mmap.BootStackSupervisor = 0x0380ffc0

	default:
		panic("architecture: unknown core: " + string(core))
	}

	return mmap
}

// IsV5 returns true if the core implements the ARMv5TE instructions.
func (mmap Map) IsV5() bool {
	return mmap.ARMArchitecture == ARMv5TE
}
