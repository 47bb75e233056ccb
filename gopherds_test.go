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

package main

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherds/test"
)

// change to a temporary directory so that resource files are not created in
// the source tree
func tempDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	test.ExpectSuccess(t, err)
	dir := t.TempDir()
	test.ExpectSuccess(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	return dir
}

// writes an image where both processors execute an endless loop
func writeImage(t *testing.T, dir string) string {
	t.Helper()

	img := make([]byte, 0x400)
	put := func(offset int, v ...uint32) {
		for i, w := range v {
			binary.LittleEndian.PutUint32(img[offset+i*4:], w)
		}
	}
	put(0x20, 0x200, 0x02000000, 0x02000000, 8)
	put(0x30, 0x200, 0x02380000, 0x02380000, 8)
	put(0x200, 0xe2800001, 0xeafffffd)

	fn := filepath.Join(dir, "loop.nds")
	test.ExpectSuccess(t, os.WriteFile(fn, img, 0600))
	return fn
}

func TestVersion(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"version"}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "GopherDS "))
}

func TestArguments(t *testing.T) {
	tempDir(t)

	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"-nosuchflag"}, &out), exitArguments)

	out.Reset()
	test.ExpectEquality(t, launch(context.Background(), []string{"run"}, &out), exitMode)
	test.ExpectSuccess(t, strings.Contains(out.String(), "cartridge required"))

	out.Reset()
	test.ExpectEquality(t, launch(context.Background(), []string{"run", "a.nds", "b.nds"}, &out), exitMode)
}

func TestRunMode(t *testing.T) {
	dir := tempDir(t)
	img := writeImage(t, dir)
	state := filepath.Join(dir, "state.json")

	var out strings.Builder
	args := []string{"run", "-cycles", "100", "-fields", "arm7.r0", "-save", state, img}
	test.ExpectEquality(t, launch(context.Background(), args, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "100 cycles"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "arm7.r0: "))

	_, err := os.Stat(state)
	test.ExpectSuccess(t, err)

	// continue from the savestate
	out.Reset()
	args = []string{"run", "-cycles", "50", "-state", state, img}
	test.ExpectEquality(t, launch(context.Background(), args, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "150 cycles"))
}

func TestGraphMode(t *testing.T) {
	dir := tempDir(t)
	img := writeImage(t, dir)

	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"graph", "-cycles", "10", img}, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "digraph"))
}

func TestPerformanceMode(t *testing.T) {
	dir := tempDir(t)
	img := writeImage(t, dir)

	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"performance", "-duration", "20ms", img}, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "cycles/sec"))

	out.Reset()
	test.ExpectEquality(t, launch(context.Background(), []string{"performance", "-profile", "gpu", img}, &out), exitMode)
}
