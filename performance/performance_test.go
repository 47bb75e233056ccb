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

package performance_test

import (
	"context"
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
	"github.com/jetsetilly/gopherds/performance"
	"github.com/jetsetilly/gopherds/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("cpu, Trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem|performance.ProfileTrace)

	_, err = performance.ParseProfileString("cpu,gpu")
	test.ExpectFailure(t, err)
}

func TestResult(t *testing.T) {
	r := performance.Result{Cycles: performance.ARM7Clock, Duration: 2 * time.Second}
	test.ExpectEquality(t, r.PerSecond(), float64(performance.ARM7Clock)/2)
	test.ExpectEquality(t, r.Accuracy(), 50.0)
	test.ExpectEquality(t, performance.Result{}.PerSecond(), 0.0)
}

func TestCheck(t *testing.T) {
	rom := make([]uint8, 0x300)
	binary.LittleEndian.PutUint32(rom[0x200:], 0xe2800001) // ADD R0, R0, #1
	binary.LittleEndian.PutUint32(rom[0x204:], 0xeafffffd) // B -4

	cart, err := cartridge.NewCartridge(rom,
		cartridge.Binary{ROMOffset: 0x200, Entry: 0x02000000, Load: 0x02000000, Size: 8},
		cartridge.Binary{ROMOffset: 0x200, Entry: 0x02380000, Load: 0x02380000, Size: 8},
	)
	test.ExpectSuccess(t, err)

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.ExpectSuccess(t, err)
	nds, err := hardware.NewNDS(env)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, nds.Attach(cart))

	var out strings.Builder
	res, err := performance.Check(context.Background(), &out, nds, performance.ProfileNone, 50*time.Millisecond)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, res.Cycles > 0)
	test.ExpectEquality(t, res.Cycles, nds.Cycles())
	test.ExpectSuccess(t, strings.Contains(out.String(), "cycles/sec"))

	_, err = performance.Check(context.Background(), &out, nds, performance.ProfileNone, 0)
	test.ExpectFailure(t, err)
}
