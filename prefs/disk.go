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

package prefs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// WarningBoilerPlate is the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the separator between key and value in the prefs file.
const keySep = " :: "

// Disk represents preference values as stored on disk. If the path given to
// NewDisk() is empty then Load() and Save() do nothing.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from disk.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if strings.Contains(key, keySep) || strings.ContainsAny(key, ";\n") {
		return fmt.Errorf("prefs: illegal key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %q already added", key)
	}
	dsk.entries[key] = p

	return nil
}

// keys in sorted order. critical section should be held by caller.
func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save current preference values to disk. Entries in the existing file that
// are not known to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	if dsk.path == "" {
		return nil
	}

	unknown, err := dsk.read()
	if err != nil {
		return err
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, v := range dsk.entries {
		unknown[k] = v.String()
	}

	keys := make([]string, 0, len(unknown))
	for k := range unknown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, keySep, unknown[k])
	}

	return w.Flush()
}

// Load preference values from disk. A missing file is not an error.
func (dsk *Disk) Load() error {
	if dsk.path == "" {
		return nil
	}

	values, err := dsk.read()
	if err != nil {
		return err
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, v := range values {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

// read all key/value pairs from the prefs file.
func (dsk *Disk) read() (map[string]string, error) {
	values := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	return values, parse(f, values)
}

func parse(r io.Reader, values map[string]string) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == WarningBoilerPlate || strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, keySep)
		if !ok {
			continue
		}
		values[k] = v
	}
	return scanner.Err()
}

// Override applies values from a string of the form "key::value; key::value".
// Keys that are not known to the Disk are ignored. Overridden values are not
// saved unless Save() is called explicitly.
func (dsk *Disk) Override(s string) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for _, kv := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(kv, "::")
		if !ok {
			continue
		}
		if p, ok := dsk.entries[strings.TrimSpace(k)]; ok {
			if err := p.Set(strings.TrimSpace(v)); err != nil {
				return fmt.Errorf("prefs: %s: %w", strings.TrimSpace(k), err)
			}
		}
	}

	return nil
}
