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

package savestate

import (
	"github.com/jetsetilly/gopherds/hardware/arm"
)

// Version of the document. Documents with a different version are rejected.
const Version = 1

// Document is the root of the JSON document.
type Document struct {
	Version int       `json:"version"`
	Cycles  uint64    `json:"cycles"`
	ARM9    Processor `json:"arm9"`
	ARM7    Processor `json:"arm7"`
	Maths   Maths     `json:"maths"`
	Video   Video     `json:"video"`
	Memory  Memory    `json:"memory"`
}

// Processor is the state of one processor and the peripherals that belong to
// it.
type Processor struct {
	Registers  []uint32   `json:"registers"`
	CPSR       uint32     `json:"cpsr"`
	Banks      []Bank     `json:"banks"`
	FIQHigh    []uint32   `json:"fiqHigh"`
	UserHigh   []uint32   `json:"userHigh"`
	Controller Controller `json:"controller"`
	Halted     bool       `json:"halted"`
	Cycles     uint64     `json:"cycles"`
	CP15       *CP15      `json:"cp15,omitempty"`

	Interrupts    Interrupts    `json:"interrupts"`
	IPC           IPC           `json:"ipc"`
	DisplayStatus DisplayStatus `json:"displayStatus"`
}

// Bank is the banked registers of a processor mode.
type Bank struct {
	SP   uint32 `json:"sp"`
	LR   uint32 `json:"lr"`
	SPSR uint32 `json:"spsr"`
}

// Controller is the state of the exception controller.
type Controller struct {
	State   int    `json:"state"`
	Kind    int    `json:"kind"`
	Address uint32 `json:"address"`
}

// CP15 is the state of the system control coprocessor.
type CP15 struct {
	Control                uint32   `json:"control"`
	DataCacheable          uint32   `json:"dataCacheable"`
	InstructionCacheable   uint32   `json:"instructionCacheable"`
	WriteBuffer            uint32   `json:"writeBuffer"`
	DataPermissions        uint32   `json:"dataPermissions"`
	InstructionPermissions uint32   `json:"instructionPermissions"`
	Regions                []uint32 `json:"regions"`
	DataLockdown           uint32   `json:"dataLockdown"`
	InstructionLockdown    uint32   `json:"instructionLockdown"`
	DTCMRegion             uint32   `json:"dtcmRegion"`
	ITCMRegion             uint32   `json:"itcmRegion"`
	ProcessID              uint32   `json:"processID"`
}

// Interrupts is the state of the interrupt registers of a processor.
type Interrupts struct {
	IME uint32 `json:"ime"`
	IE  uint32 `json:"ie"`
	IF  uint32 `json:"if"`
}

// IPC is the state of the IPC registers of a processor. Send is the content of
// the send FIFO with the oldest word first.
type IPC struct {
	SyncOutput      uint8    `json:"syncOutput"`
	SyncIRQEnable   bool     `json:"syncIRQEnable"`
	SendEmptyIRQ    bool     `json:"sendEmptyIRQ"`
	RecvNotEmptyIRQ bool     `json:"recvNotEmptyIRQ"`
	Error           bool     `json:"error"`
	Enabled         bool     `json:"enabled"`
	LastRecv        uint32   `json:"lastRecv"`
	Send            []uint32 `json:"send"`
}

// DisplayStatus is the DISPSTAT register of a processor.
type DisplayStatus struct {
	VBlankIRQ     bool   `json:"vblankIRQ"`
	HBlankIRQ     bool   `json:"hblankIRQ"`
	VCountIRQ     bool   `json:"vcountIRQ"`
	VCountSetting uint16 `json:"vcountSetting"`
}

// Maths is the state of the division and square root units.
type Maths struct {
	DivMode    uint8  `json:"divMode"`
	DivByZero  bool   `json:"divByZero"`
	Numer      uint64 `json:"numer"`
	Denom      uint64 `json:"denom"`
	Result     uint64 `json:"result"`
	Remainder  uint64 `json:"remainder"`
	Sqrt64     bool   `json:"sqrt64"`
	SqrtParam  uint64 `json:"sqrtParam"`
	SqrtResult uint32 `json:"sqrtResult"`
}

// Video is the state of the display registers.
type Video struct {
	Frame        int      `json:"frame"`
	Scanline     int      `json:"scanline"`
	Clock        int      `json:"clock"`
	Engines      []Engine `json:"engines"`
	PowerControl uint32   `json:"powerControl"`
}

// Engine is the register state of a 2D engine.
type Engine struct {
	Control   uint32 `json:"control"`
	Registers []byte `json:"registers"`
}

// Memory is the content of every memory area and the configuration of the
// memory fabric.
type Memory struct {
	Areas     map[string][]byte `json:"areas"`
	VRAM      []VRAMBank        `json:"vram"`
	WRAMCNT   uint8             `json:"wramcnt"`
	EXMEMCNT  uint16            `json:"exmemcnt"`
	EXMEMSTAT uint16            `json:"exmemstat"`
	POSTFLG9  uint8             `json:"postflg9"`
	POSTFLG7  uint8             `json:"postflg7"`
	KEYCNT    uint16            `json:"keycnt"`
	TCM       TCM               `json:"tcm"`
}

// VRAMBank is the control register and content of a VRAM bank.
type VRAMBank struct {
	ID      string `json:"id"`
	Control uint8  `json:"control"`
	Data    []byte `json:"data"`
}

// TCM is the configuration of the tightly coupled memories.
type TCM struct {
	ITCMEnabled  bool   `json:"itcmEnabled"`
	ITCMLoadMode bool   `json:"itcmLoadMode"`
	ITCMSize     uint32 `json:"itcmSize"`
	DTCMEnabled  bool   `json:"dtcmEnabled"`
	DTCMLoadMode bool   `json:"dtcmLoadMode"`
	DTCMBase     uint32 `json:"dtcmBase"`
	DTCMSize     uint32 `json:"dtcmSize"`
}

func (t TCM) config() arm.TCMConfig {
	return arm.TCMConfig{
		ITCMEnabled:  t.ITCMEnabled,
		ITCMLoadMode: t.ITCMLoadMode,
		ITCMSize:     t.ITCMSize,
		DTCMEnabled:  t.DTCMEnabled,
		DTCMLoadMode: t.DTCMLoadMode,
		DTCMBase:     t.DTCMBase,
		DTCMSize:     t.DTCMSize,
	}
}

func newTCM(c arm.TCMConfig) TCM {
	return TCM{
		ITCMEnabled:  c.ITCMEnabled,
		ITCMLoadMode: c.ITCMLoadMode,
		ITCMSize:     c.ITCMSize,
		DTCMEnabled:  c.DTCMEnabled,
		DTCMLoadMode: c.DTCMLoadMode,
		DTCMBase:     c.DTCMBase,
		DTCMSize:     c.DTCMSize,
	}
}
