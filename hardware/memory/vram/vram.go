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

package vram

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
)

// BankID identifies a bank. Banks are stored in an array indexed by BankID.
type BankID int

// List of valid BankID values.
const (
	BankA BankID = iota
	BankB
	BankC
	BankD
	BankE
	BankF
	BankG
	BankH
	BankI
	NumBanks
)

func (id BankID) String() string {
	if id < 0 || id >= NumBanks {
		return fmt.Sprintf("unknown bank (%d)", int(id))
	}
	return string(rune('A' + id))
}

const kb = 1024

// the size of each bank in bytes.
var bankSize = [NumBanks]uint32{
	128 * kb, 128 * kb, 128 * kb, 128 * kb,
	64 * kb, 16 * kb, 16 * kb, 32 * kb, 16 * kb,
}

// the offset of each bank in the LCDC window.
var lcdcOffset = [NumBanks]uint32{
	0x00000, 0x20000, 0x40000, 0x60000,
	0x80000, 0x90000, 0x94000, 0x98000, 0xa0000,
}

// Bank is a single video memory bank.
type Bank struct {
	ID BankID

	// the value last written to the VRAMCNT register of the bank
	Control uint8

	// decoded from the control register
	Enabled bool
	Target  Target
	Start   uint32

	Data []uint8
}

// Size returns the size of the bank in bytes.
func (b *Bank) Size() uint32 {
	return uint32(len(b.Data))
}

// covers returns true if the bank contributes to the offset in the target
// window.
func (b *Bank) covers(target Target, offset uint32) bool {
	return b.Enabled && b.Target == target && offset >= b.Start && offset-b.Start < b.Size()
}

func (b *Bank) String() string {
	if !b.Enabled {
		return fmt.Sprintf("%s: disabled", b.ID)
	}
	return fmt.Sprintf("%s: %s @ %05x-%05x", b.ID, b.Target, b.Start, b.Start+b.Size()-1)
}

// VRAM is the collection of video memory banks.
type VRAM struct {
	env   *environment.Environment
	Banks [NumBanks]Bank
}

// NewVRAM is the preferred method of initialisation for the VRAM type.
func NewVRAM(env *environment.Environment) *VRAM {
	v := &VRAM{env: env}
	for i := range v.Banks {
		v.Banks[i] = Bank{
			ID:   BankID(i),
			Data: make([]uint8, bankSize[i]),
		}
	}
	return v
}

func (v *VRAM) String() string {
	s := strings.Builder{}
	for i := range v.Banks {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(v.Banks[i].String())
	}
	return s.String()
}

// Reset all banks to the disabled state and clear their contents.
func (v *VRAM) Reset() {
	for i := range v.Banks {
		b := &v.Banks[i]
		b.Control = 0
		b.Enabled = false
		b.Target = TargetNone
		b.Start = 0
		clear(b.Data)
	}
}

// Read the value at the offset in the target window. The value is the
// bitwise OR of every enabled bank that covers the address. Returns false if
// no bank covers any part of the access.
func (v *VRAM) Read(target Target, offset uint32, width bus.Width) (uint32, bool) {
	offset = width.Align(offset)

	var value uint32
	var found bool

	for i := range v.Banks {
		b := &v.Banks[i]
		for n := uint32(0); n < uint32(width); n++ {
			if b.covers(target, offset+n) {
				value |= uint32(b.Data[offset+n-b.Start]) << (n * 8)
				found = true
			}
		}
	}

	return value, found
}

// Write the value to every enabled bank that covers the offset in the target
// window. Returns false if no bank covers any part of the access.
func (v *VRAM) Write(target Target, offset uint32, width bus.Width, value uint32) bool {
	offset = width.Align(offset)

	var found bool

	for i := range v.Banks {
		b := &v.Banks[i]
		for n := uint32(0); n < uint32(width); n++ {
			if b.covers(target, offset+n) {
				b.Data[offset+n-b.Start] = uint8(value >> (n * 8))
				found = true
			}
		}
	}

	return found
}

// MappedToARM7 returns the value of the VRAMSTAT register. Bits 0 and 1 are
// set if bank C and bank D respectively are mapped as ARM7 work memory.
func (v *VRAM) MappedToARM7() uint8 {
	var stat uint8
	if v.Banks[BankC].Enabled && v.Banks[BankC].Target == TargetARM7 {
		stat |= 0x01
	}
	if v.Banks[BankD].Enabled && v.Banks[BankD].Target == TargetARM7 {
		stat |= 0x02
	}
	return stat
}
