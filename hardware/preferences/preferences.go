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

// Package preferences contains the preference values used by the emulated
// hardware. Preferences can be loaded from and saved to a prefs file and
// individual values overridden from the command line.
package preferences

import (
	"github.com/jetsetilly/gopherds/prefs"
)

// DefaultPrefsFile is the default filename of the hardware preferences file
const DefaultPrefsFile = "preferences"

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// the number of ARM9 instructions executed for every ARM7 instruction
	ClockRatio prefs.Int

	// the number of ARM7 cycles each processor runs for before the other
	// processor is given a turn. a value of 1 gives the finest interleaving
	Slice prefs.Int

	// the value returned by reads from unmapped addresses
	OpenBusValue prefs.Int

	// whether accesses to unmapped addresses should be logged
	LogIllegalAccess prefs.Bool

	// the reset state of the CP15 high-vector bit on the ARM9. real hardware
	// resets with the bit set
	HighVectors prefs.Bool

	// start the processors at the entry points given by the cartridge rather
	// than the BIOS reset vectors
	DirectBoot prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. An empty path means the preferences are never loaded from or saved to
// disk.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.clockRatio", &p.ClockRatio)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.slice", &p.Slice)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.openBusValue", &p.OpenBusValue)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.logIllegalAccess", &p.LogIllegalAccess)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.arm9.highVectors", &p.HighVectors)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.directBoot", &p.DirectBoot)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.ClockRatio.Set(2)
	p.Slice.Set(1)
	p.OpenBusValue.Set(0)
	p.LogIllegalAccess.Set(false)
	p.HighVectors.Set(true)
	p.DirectBoot.Set(true)
}

// Override preference values with a string of the form "key::value; key::value".
func (p *Preferences) Override(s string) error {
	return p.dsk.Override(s)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
