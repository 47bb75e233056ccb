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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Launch starts the stats server in its own goroutine and reports where the
// charts can be found. The server samples the Go runtime only and never
// touches emulation state, so it is safe to run beside the emulation
// goroutine.
func Launch(output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address), viewer.WithTheme(viewer.ThemeWesteros))
	go statsview.New().Start()

	fmt.Fprintf(output, "runtime charts at http://%s/debug/statsview\n", Address)
	fmt.Fprintf(output, "pprof index at http://%s/debug/pprof/\n", Address)
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
