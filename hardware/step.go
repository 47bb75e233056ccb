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

package hardware

// Step the emulation by one slice. The ARM9 is run first, for the number of
// cycles given by the ClockRatio and Slice preferences, followed by the ARM7,
// for the number of cycles given by the Slice preference. Returns the number
// of ARM7 cycles consumed.
func (nds *NDS) Step() int {
	nds.crit.Lock()
	defer nds.crit.Unlock()
	return nds.step()
}

func (nds *NDS) step() int {
	slice := nds.Env.Prefs.Slice.Get().(int)
	if slice < 1 {
		slice = 1
	}
	ratio := nds.Env.Prefs.ClockRatio.Get().(int)
	if ratio < 1 {
		ratio = 1
	}

	nds.ARM9.Run(slice * ratio)
	n := nds.ARM7.Run(slice)
	nds.Video.Step(n)
	nds.cycles += uint64(n)

	return n
}
