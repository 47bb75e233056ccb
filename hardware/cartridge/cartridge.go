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

package cartridge

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/curated"
)

// Sentinal error patterns returned by NewCartridge().
const (
	EmptyROM      = "cartridge: ROM is empty"
	InvalidBinary = "cartridge: %s binary: %v"
)

// the largest binary that can be copied into memory by direct boot. the size
// of main RAM less the area used by the system
const maxBinarySize = 0x3bfe00

// the value read beyond the end of the ROM image
const openROM = 0xff

// Binary describes the location of one of the program binaries. ROMOffset is
// the offset of the binary in the ROM image and Load is the address in memory
// that it is copied to. Entry is the address execution begins at.
type Binary struct {
	ROMOffset uint32
	Entry     uint32
	Load      uint32
	Size      uint32
}

func (b Binary) String() string {
	return fmt.Sprintf("rom %08x  entry %08x  load %08x  size %08x", b.ROMOffset, b.Entry, b.Load, b.Size)
}

func (b Binary) validate(romSize int) error {
	if b.Size > maxBinarySize {
		return fmt.Errorf("size %#x is too large", b.Size)
	}
	if uint64(b.ROMOffset)+uint64(b.Size) > uint64(romSize) {
		return fmt.Errorf("extends beyond the end of the ROM (%#x+%#x)", b.ROMOffset, b.Size)
	}
	if b.Entry&0x03 != 0 {
		return fmt.Errorf("entry address %08x is not word aligned", b.Entry)
	}
	if b.Entry < b.Load || uint64(b.Entry) >= uint64(b.Load)+uint64(b.Size) {
		return fmt.Errorf("entry address %08x is outside the binary", b.Entry)
	}
	return nil
}

// Cartridge is the ROM image and the location of the two binaries.
type Cartridge struct {
	// the hash of the image as calculated by the loader. may be empty
	Hash string

	ARM9 Binary
	ARM7 Binary

	data []uint8
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type. The data is copied and the location of the binaries is checked
// against the size of the image.
func NewCartridge(data []uint8, arm9 Binary, arm7 Binary) (*Cartridge, error) {
	if len(data) == 0 {
		return nil, curated.Errorf(EmptyROM)
	}
	if err := arm9.validate(len(data)); err != nil {
		return nil, curated.Errorf(InvalidBinary, "ARM9", err)
	}
	if err := arm7.validate(len(data)); err != nil {
		return nil, curated.Errorf(InvalidBinary, "ARM7", err)
	}

	cart := &Cartridge{
		ARM9: arm9,
		ARM7: arm7,
		data: make([]uint8, len(data)),
	}
	copy(cart.data, data)

	return cart, nil
}

func (cart *Cartridge) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d bytes", len(cart.data)))
	if cart.Hash != "" {
		s.WriteString(fmt.Sprintf(" (%s)", cart.Hash))
	}
	s.WriteString(fmt.Sprintf("\nARM9: %s\nARM7: %s", cart.ARM9, cart.ARM7))
	return s.String()
}

// Size returns the size of the ROM image in bytes.
func (cart *Cartridge) Size() int {
	return len(cart.data)
}

// ReadROM returns a copy of length bytes from the offset. Bytes beyond the end
// of the image read as 0xff.
func (cart *Cartridge) ReadROM(offset uint32, length int) []uint8 {
	b := make([]uint8, length)
	n := 0
	if uint64(offset) < uint64(len(cart.data)) {
		n = copy(b, cart.data[offset:])
	}
	for i := n; i < length; i++ {
		b[i] = openROM
	}
	return b
}

// Binary returns the bytes of the binary.
func (cart *Cartridge) Binary(b Binary) []uint8 {
	return cart.ReadROM(b.ROMOffset, int(b.Size))
}
