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

package video

import "fmt"

// timing of the display in ARM7 cycles
const (
	ClksScanline   = 2130
	ClksHBlank     = 1536
	Scanlines      = 263
	VisibleLines   = 192
	lastVBlankLine = Scanlines - 1
)

// Coords represent the position of the display. The Clock field counts ARM7
// cycles from the start of the scanline.
type Coords struct {
	Frame    int
	Scanline int
	Clock    int
}

func (c Coords) String() string {
	return fmt.Sprintf("Frame: %d  Scanline: %03d  Clock: %04d", c.Frame, c.Scanline, c.Clock)
}

// InVBlank returns true if the scanline is in the vertical blanking period.
// The flag is clear on the last scanline of the frame.
func (c Coords) InVBlank() bool {
	return c.Scanline >= VisibleLines && c.Scanline < lastVBlankLine
}

// InHBlank returns true if the clock is in the horizontal blanking period.
func (c Coords) InHBlank() bool {
	return c.Clock >= ClksHBlank
}
