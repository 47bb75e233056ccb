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

// Package environment provides the context in which an emulation runs. Every
// hardware component is given a reference to an Environment and uses it to
// find its preferences and to create log entries.
package environment

import (
	"github.com/jetsetilly/gopherds/hardware/preferences"
	"github.com/jetsetilly/gopherds/logger"
)

// Label is used to name the environment
type Label string

// MainEmulation is the label used for the main emulation
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Particularly useful
// when using multiple emulations
type Environment struct {
	Label Label

	// the log for the emulation. every component logs through this instance
	// rather than any global log
	Log *logger.Logger

	// the emulation preferences
	Prefs *preferences.Preferences

	// logging can be silenced for an environment without replacing the log
	Quiet bool
}

// the default number of entries kept by a log created by NewEnvironment()
const defaultLogEntries = 1000

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// Both the log and prefs arguments can be nil, in which case new instances will
// be created. Providing a non-nil value allows the preferences (or log) of more
// than one emulation to be shared.
func NewEnvironment(label Label, log *logger.Logger, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
		Log:   log,
		Prefs: prefs,
	}

	if env.Log == nil {
		env.Log = logger.NewLogger(defaultLogEntries)
	}

	if env.Prefs == nil {
		var err error
		env.Prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// testing where the initial state must be the same for every run of the test.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}
