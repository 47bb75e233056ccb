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

package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/gopherds/test"
)

func TestResourcePath(t *testing.T) {
	wd, err := os.Getwd()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	pth, err := ResourcePath("states", "foo")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherds", "states", "foo"))

	// the sub-directory now exists
	_, err = os.Stat(filepath.Join(".gopherds", "states"))
	test.ExpectSuccess(t, err)

	pth, err = ResourcePath("", "preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".gopherds", "preferences"))

	pth, err = ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".gopherds")
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, time.March, 5, 9, 8, 7, 0, time.UTC)
	test.ExpectEquality(t, uniqueFilename("state", "game", n), "state_game_20240305_090807")
	test.ExpectEquality(t, uniqueFilename("state", "  ", n), "state_20240305_090807")
}
