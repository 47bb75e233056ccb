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

import "context"

// PerformanceBrake is the number of steps between checks of the context in
// the Run() function. Checking the context is expensive compared to a single
// step.
const PerformanceBrake = 100

// Run the emulation for at least the number of ARM7 cycles in the budget.
// Returns the number of cycles actually consumed. The emulation stops early
// if the context is cancelled, in which case the error of the context is
// returned.
//
// The NDS mutex is released between each step so other goroutines can take
// snapshots while the emulation is running.
func (nds *NDS) Run(ctx context.Context, budget int) (int, error) {
	var n int
	var brake int

	for n < budget {
		brake++
		if brake >= PerformanceBrake {
			brake = 0
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		n += nds.Step()
	}

	return n, nil
}
