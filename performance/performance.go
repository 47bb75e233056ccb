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

package performance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherds/hardware"
)

// ARM7Clock is the clock rate of the ARM7 in the real hardware.
const ARM7Clock = 33513982

// the number of cycles given to each call to Run() by Check()
const runBudget = hardware.PerformanceBrake * 100

// Result of a call to Check().
type Result struct {
	Cycles   uint64
	Duration time.Duration
}

// PerSecond returns the number of ARM7 cycles per second.
func (r Result) PerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Cycles) / r.Duration.Seconds()
}

// Accuracy returns the speed of the emulation as a percentage of the real
// hardware.
func (r Result) Accuracy() float64 {
	return 100 * r.PerSecond() / ARM7Clock
}

func (r Result) String() string {
	return fmt.Sprintf("%.0f cycles/sec (%d cycles in %.2f seconds) %.1f%%",
		r.PerSecond(), r.Cycles, r.Duration.Seconds(), r.Accuracy())
}

// Check the performance of the emulation. The emulation runs for the duration
// or until the context is cancelled. Profiles are created as defined by the
// profile argument.
func Check(ctx context.Context, output io.Writer, nds *hardware.NDS, profile Profile, duration time.Duration) (Result, error) {
	if duration <= 0 {
		return Result{}, fmt.Errorf("performance: duration must be positive")
	}

	var res Result

	runner := func() error {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()

		startCycles := nds.Cycles()
		startTime := time.Now()

		var err error
		for err == nil {
			_, err = nds.Run(ctx, runBudget)
		}

		res.Duration = time.Since(startTime)
		res.Cycles = nds.Cycles() - startCycles

		if errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return res, fmt.Errorf("performance: %w", err)
	}

	fmt.Fprintln(output, res)

	return res, nil
}
