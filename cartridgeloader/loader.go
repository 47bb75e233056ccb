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

package cartridgeloader

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
)

// Sentinal error patterns returned by the cartridgeloader package.
const (
	LoadError     = "cartridgeloader: %v"
	NotLoaded     = "cartridgeloader: image has not been loaded"
	ImageTooShort = "cartridgeloader: image is too short (%d bytes)"
)

// location of the binary descriptors in the image. each descriptor is four
// little-endian words: ROM offset, entry address, load address and size
const (
	arm9Descriptor = 0x20
	arm7Descriptor = 0x30
	descriptorEnd  = 0x40
)

// Loader is used to specify the ROM image to use when attaching to the
// console.
type Loader struct {
	// filename of the image to load. can be a URL
	Filename string

	// expected hash of the loaded image. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() leave the data
	// unchanged
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	shortName := path.Base(cl.Filename)
	shortName = strings.TrimSuffix(shortName, path.Ext(cl.Filename))
	return shortName
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the image data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoadError, fmt.Sprintf("unexpected HTTP status (%s)", resp.Status))
		}

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	case "file":
		fallthrough

	case "":
		cl.Data, err = os.ReadFile(cl.Filename)
		if err != nil {
			return curated.Errorf(LoadError, err)
		}

	default:
		return curated.Errorf(LoadError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	// check for hash consistency
	if cl.Hash != "" && cl.Hash != hash {
		cl.Data = nil
		return curated.Errorf(LoadError, "unexpected hash value")
	}

	cl.Hash = hash

	return nil
}

func descriptor(data []byte, offset int) cartridge.Binary {
	return cartridge.Binary{
		ROMOffset: binary.LittleEndian.Uint32(data[offset:]),
		Entry:     binary.LittleEndian.Uint32(data[offset+4:]),
		Load:      binary.LittleEndian.Uint32(data[offset+8:]),
		Size:      binary.LittleEndian.Uint32(data[offset+12:]),
	}
}

// Cartridge creates a cartridge from the loaded data. The locations of the
// ARM9 and ARM7 binaries are read from the binary descriptors. No other part
// of the header is interpreted.
func (cl Loader) Cartridge() (*cartridge.Cartridge, error) {
	if !cl.HasLoaded() {
		return nil, curated.Errorf(NotLoaded)
	}
	if len(cl.Data) < descriptorEnd {
		return nil, curated.Errorf(ImageTooShort, len(cl.Data))
	}

	cart, err := cartridge.NewCartridge(cl.Data,
		descriptor(cl.Data, arm9Descriptor),
		descriptor(cl.Data, arm7Descriptor))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	cart.Hash = cl.Hash

	return cart, nil
}
