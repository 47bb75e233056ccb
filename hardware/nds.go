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

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/arm/architecture"
	"github.com/jetsetilly/gopherds/hardware/cartridge"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/hardware/maths"
	"github.com/jetsetilly/gopherds/hardware/memory"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/hardware/video"
)

// Sentinal error patterns returned by the hardware package.
const (
	NoCartridge = "hardware: no cartridge attached"
	BootError   = "hardware: direct boot: %v"
)

// the boot code leaves a copy of the cartridge header at the top of main RAM
const (
	headerCopyAddress = 0x027ffe00
	headerCopySize    = 0x170
)

// NDS is the main container for the emulated components of the console.
type NDS struct {
	crit sync.Mutex

	Env *environment.Environment

	ARM9 *arm.ARM
	ARM7 *arm.ARM

	Mem     *memory.Memory
	ARM9IRQ *interrupts.Interrupts
	ARM7IRQ *interrupts.Interrupts
	IPC     *ipc.IPC
	Maths   *maths.Maths
	Video   *video.Video

	// the attached cartridge. can be nil
	Cart *cartridge.Cartridge

	// the number of ARM7 cycles since reset
	cycles uint64
}

// NewNDS creates a new NDS and everything associated with the hardware.
func NewNDS(env *environment.Environment) (*NDS, error) {
	if env == nil {
		var err error
		env, err = environment.NewEnvironment(environment.MainEmulation, nil, nil)
		if err != nil {
			return nil, err
		}
	}

	nds := &NDS{
		Env:     env,
		Mem:     memory.NewMemory(env),
		ARM9IRQ: interrupts.NewInterrupts(),
		ARM7IRQ: interrupts.NewInterrupts(),
		Maths:   maths.NewMaths(),
	}

	nds.IPC = ipc.NewIPC(env, nds.ARM9IRQ, nds.ARM7IRQ)
	nds.Video = video.NewVideo(env, nds.ARM9IRQ, nds.ARM7IRQ)

	nds.Mem.ARM9IO.Attach(nds.ARM9IRQ, nds.IPC.Port(ipc.ARM9), nds.Maths, nds.Video.Port(video.ARM9))
	nds.Mem.ARM7IO.Attach(nds.ARM7IRQ, nds.IPC.Port(ipc.ARM7), nds.Video.Port(video.ARM7))

	nds.ARM9 = arm.NewARM(env, architecture.NewMap(architecture.ARM9), nds.Mem.ARM9(), nds.ARM9IRQ)
	nds.ARM9.SetTCM(nds.Mem)

	nds.ARM7 = arm.NewARM(env, architecture.NewMap(architecture.ARM7), nds.Mem.ARM7(), nds.ARM7IRQ)
	nds.Mem.SetARM7Halter(nds.ARM7)

	return nds, nil
}

func (nds *NDS) String() string {
	nds.crit.Lock()
	defer nds.crit.Unlock()

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("ARM9\n%s\n%s\n", nds.ARM9, nds.ARM9IRQ))
	s.WriteString(fmt.Sprintf("ARM7\n%s\n%s\n", nds.ARM7, nds.ARM7IRQ))
	s.WriteString(nds.Video.Coords.String())
	return s.String()
}

// Critical runs the function while holding the NDS mutex. The function must
// not call any other exported function of the NDS type.
func (nds *NDS) Critical(f func()) {
	nds.crit.Lock()
	defer nds.crit.Unlock()
	f()
}

// Cycles returns the number of ARM7 cycles since reset.
func (nds *NDS) Cycles() uint64 {
	nds.crit.Lock()
	defer nds.crit.Unlock()
	return nds.cycles
}

// Attach a cartridge. The console is reset and, if the DirectBoot preference
// is set, the cartridge is booted. A nil cartridge detaches the current
// cartridge.
func (nds *NDS) Attach(cart *cartridge.Cartridge) error {
	nds.crit.Lock()
	defer nds.crit.Unlock()

	nds.Cart = cart
	return nds.reset()
}

// Reset the console to its power on state. If a cartridge is attached and the
// DirectBoot preference is set, the cartridge is booted.
func (nds *NDS) Reset() error {
	nds.crit.Lock()
	defer nds.crit.Unlock()
	return nds.reset()
}

func (nds *NDS) reset() error {
	nds.cycles = 0
	nds.Mem.Reset()
	nds.ARM9IRQ.Reset()
	nds.ARM7IRQ.Reset()
	nds.IPC.Reset()
	nds.Maths.Reset()
	nds.Video.Reset()
	nds.ARM9.Reset()
	nds.ARM7.Reset()

	if nds.Cart != nil && nds.Env.Prefs.DirectBoot.Get().(bool) {
		return nds.directBoot()
	}

	return nil
}

// DirectBoot resets the console and starts the cartridge without running the
// boot code. The binaries are copied to their load addresses and the
// processors are left at their entry points.
func (nds *NDS) DirectBoot() error {
	nds.crit.Lock()
	defer nds.crit.Unlock()

	if nds.Cart == nil {
		return curated.Errorf(NoCartridge)
	}

	// reset() will have booted the cartridge if the preference is set
	if err := nds.reset(); err != nil {
		return err
	}
	if nds.Env.Prefs.DirectBoot.Get().(bool) {
		return nil
	}
	return nds.directBoot()
}

func (nds *NDS) directBoot() error {
	cart := nds.Cart

	// the shared WRAM belongs to the ARM7 after the boot code has run. this
	// must happen before the ARM7 binary is copied
	nds.Mem.DirectBoot()

	// the ARM9 binary is copied before the TCMs are enabled
	if err := load(nds.Mem.ARM9(), cart.ARM9.Load, cart.Binary(cart.ARM9)); err != nil {
		return curated.Errorf(BootError, err)
	}
	if err := load(nds.Mem.ARM7(), cart.ARM7.Load, cart.Binary(cart.ARM7)); err != nil {
		return curated.Errorf(BootError, err)
	}
	if err := load(nds.Mem.ARM7(), headerCopyAddress, cart.ReadROM(0, headerCopySize)); err != nil {
		return curated.Errorf(BootError, err)
	}

	nds.ARM9.DirectBoot(cart.ARM9.Entry)
	nds.ARM7.DirectBoot(cart.ARM7.Entry)

	nds.Env.Log.Logf(nds.Env, "hardware", "direct boot: ARM9 %08x ARM7 %08x", cart.ARM9.Entry, cart.ARM7.Entry)

	return nil
}

// load data into memory through the debug bus of a processor
func load(mem bus.DebugBus, address uint32, data []uint8) error {
	for i, d := range data {
		if err := mem.Poke(address+uint32(i), d); err != nil {
			return err
		}
	}
	return nil
}
