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

package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/hardware/memory/vram"
	"github.com/jetsetilly/gopherds/hardware/video"
)

// Sentinal error returned by Lookup().
const (
	UnknownField = "inspect: unknown field (%s)"
)

// Hex32 is a field value that is best displayed as a hexadecimal number.
type Hex32 uint32

func (h Hex32) String() string {
	return fmt.Sprintf("%08x", uint32(h))
}

// Hex8 is a field value that is best displayed as a hexadecimal number.
type Hex8 uint8

func (h Hex8) String() string {
	return fmt.Sprintf("%02x", uint8(h))
}

// Getter returns the value of a field. It must not change the state of the
// emulation.
type Getter func(nds *hardware.NDS) interface{}

// Inspector resolves field names to values.
type Inspector struct {
	nds    *hardware.NDS
	fields map[string]Getter
	names  []string
}

// NewInspector is the preferred method of initialisation for the Inspector
// type.
func NewInspector(nds *hardware.NDS) *Inspector {
	ins := &Inspector{
		nds:    nds,
		fields: make(map[string]Getter),
	}

	ins.addProcessor("arm9", func(nds *hardware.NDS) *arm.ARM { return nds.ARM9 },
		func(nds *hardware.NDS) *interrupts.Interrupts { return nds.ARM9IRQ }, ipc.ARM9, video.ARM9)
	ins.addProcessor("arm7", func(nds *hardware.NDS) *arm.ARM { return nds.ARM7 },
		func(nds *hardware.NDS) *interrupts.Interrupts { return nds.ARM7IRQ }, ipc.ARM7, video.ARM7)
	ins.addCP15()
	ins.addVRAM()
	ins.addVideo()
	ins.addMisc()

	for n := range ins.fields {
		ins.names = append(ins.names, n)
	}
	sort.Strings(ins.names)

	return ins
}

func (ins *Inspector) add(name string, get Getter) {
	if _, ok := ins.fields[name]; ok {
		panic(fmt.Sprintf("inspect: duplicate field (%s)", name))
	}
	ins.fields[name] = get
}

// Fields returns the name of every field in alphabetical order.
func (ins *Inspector) Fields() []string {
	return append([]string(nil), ins.names...)
}

// Lookup returns the value of the named field. The value will be one of the
// types bool, int, uint64, string, Hex8 or Hex32.
func (ins *Inspector) Lookup(name string) (interface{}, error) {
	get, ok := ins.fields[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, curated.Errorf(UnknownField, name)
	}

	var v interface{}
	ins.nds.Critical(func() {
		v = get(ins.nds)
	})
	return v, nil
}

// Match returns the names of every field that begins with the prefix.
func (ins *Inspector) Match(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var m []string
	for _, n := range ins.names {
		if strings.HasPrefix(n, prefix) {
			m = append(m, n)
		}
	}
	return m
}

func (ins *Inspector) addProcessor(label string, cpu func(*hardware.NDS) *arm.ARM,
	irq func(*hardware.NDS) *interrupts.Interrupts, side ipc.Side, display video.CPU) {

	for r := 0; r < arm.NumRegisters; r++ {
		r := r
		ins.add(fmt.Sprintf("%s.r%d", label, r), func(nds *hardware.NDS) interface{} {
			return Hex32(cpu(nds).Register(r))
		})
	}
	ins.add(label+".sp", func(nds *hardware.NDS) interface{} {
		return Hex32(cpu(nds).Register(13))
	})
	ins.add(label+".lr", func(nds *hardware.NDS) interface{} {
		return Hex32(cpu(nds).Register(14))
	})
	ins.add(label+".pc", func(nds *hardware.NDS) interface{} {
		return Hex32(cpu(nds).Register(15))
	})
	ins.add(label+".cpsr", func(nds *hardware.NDS) interface{} {
		return Hex32(cpu(nds).CPSR())
	})
	ins.add(label+".mode", func(nds *hardware.NDS) interface{} {
		return cpu(nds).CPSR().Mode().String()
	})
	ins.add(label+".thumb", func(nds *hardware.NDS) interface{} {
		return cpu(nds).CPSR().Thumb()
	})
	ins.add(label+".spsr", func(nds *hardware.NDS) interface{} {
		spsr, err := cpu(nds).SPSR()
		if err != nil {
			return "none"
		}
		return Hex32(spsr)
	})
	ins.add(label+".halted", func(nds *hardware.NDS) interface{} {
		return cpu(nds).Halted()
	})
	ins.add(label+".cycles", func(nds *hardware.NDS) interface{} {
		return cpu(nds).Cycles()
	})
	ins.add(label+".exception", func(nds *hardware.NDS) interface{} {
		return cpu(nds).Controller().String()
	})
	ins.add(label+".vectors", func(nds *hardware.NDS) interface{} {
		return Hex32(cpu(nds).VectorBase())
	})

	ins.add(label+".ime", func(nds *hardware.NDS) interface{} {
		return irq(nds).IME&0x01 == 0x01
	})
	ins.add(label+".ie", func(nds *hardware.NDS) interface{} {
		return Hex32(irq(nds).IE)
	})
	ins.add(label+".if", func(nds *hardware.NDS) interface{} {
		return Hex32(irq(nds).IF)
	})

	ins.add(label+".ipc.sync", func(nds *hardware.NDS) interface{} {
		return Hex8(nds.IPC.Sides[side].SyncOutput)
	})
	ins.add(label+".ipc.fifo", func(nds *hardware.NDS) interface{} {
		return nds.IPC.Sides[side].Send.Count
	})
	ins.add(label+".ipc.error", func(nds *hardware.NDS) interface{} {
		return nds.IPC.Sides[side].Error
	})

	ins.add(label+".dispstat", func(nds *hardware.NDS) interface{} {
		v, _ := nds.Video.Port(display).ReadRegister(0x04000004)
		return Hex32(v & 0xffff)
	})
}

func (ins *Inspector) addCP15() {
	ins.add("arm9.cp15.control", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.ARM9.CP15().Control)
	})
	ins.add("arm9.cp15.mpu", func(nds *hardware.NDS) interface{} {
		cp := nds.ARM9.CP15()
		return cp.MPUEnabled()
	})
	ins.add("arm9.cp15.dtcm", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.ARM9.CP15().DTCMRegion)
	})
	ins.add("arm9.cp15.itcm", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.ARM9.CP15().ITCMRegion)
	})
	for r := 0; r < 8; r++ {
		r := r
		ins.add(fmt.Sprintf("arm9.cp15.region%d", r), func(nds *hardware.NDS) interface{} {
			return Hex32(nds.ARM9.CP15().Regions[r])
		})
	}
}

func (ins *Inspector) addVRAM() {
	for i := vram.BankA; i < vram.NumBanks; i++ {
		id := i
		name := fmt.Sprintf("vram.%s", strings.ToLower(id.String()))
		ins.add(name+".cnt", func(nds *hardware.NDS) interface{} {
			return Hex8(nds.Mem.VRAM.Control(id))
		})
		ins.add(name+".enable", func(nds *hardware.NDS) interface{} {
			return nds.Mem.VRAM.Banks[id].Enabled
		})
		ins.add(name+".target", func(nds *hardware.NDS) interface{} {
			return nds.Mem.VRAM.Banks[id].Target.String()
		})
		ins.add(name+".start", func(nds *hardware.NDS) interface{} {
			return Hex32(nds.Mem.VRAM.Banks[id].Start)
		})
	}
	ins.add("vram.stat", func(nds *hardware.NDS) interface{} {
		return Hex8(nds.Mem.VRAM.MappedToARM7())
	})
}

func (ins *Inspector) addVideo() {
	ins.add("video.frame", func(nds *hardware.NDS) interface{} {
		return nds.Video.Coords.Frame
	})
	ins.add("video.scanline", func(nds *hardware.NDS) interface{} {
		return nds.Video.Coords.Scanline
	})
	ins.add("video.clock", func(nds *hardware.NDS) interface{} {
		return nds.Video.Coords.Clock
	})
	ins.add("video.a.dispcnt", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.Video.Engines[0].Control)
	})
	ins.add("video.b.dispcnt", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.Video.Engines[1].Control)
	})
	ins.add("video.powcnt1", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.Video.PowerControl)
	})
}

func (ins *Inspector) addMisc() {
	ins.add("maths.div.mode", func(nds *hardware.NDS) interface{} {
		return nds.Maths.DivMode.String()
	})
	ins.add("maths.div.result", func(nds *hardware.NDS) interface{} {
		return nds.Maths.Result
	})
	ins.add("maths.div.remainder", func(nds *hardware.NDS) interface{} {
		return nds.Maths.Remainder
	})
	ins.add("maths.div.zero", func(nds *hardware.NDS) interface{} {
		return nds.Maths.DivByZero
	})
	ins.add("maths.sqrt.result", func(nds *hardware.NDS) interface{} {
		return Hex32(nds.Maths.SqrtResult)
	})
	ins.add("mem.wramcnt", func(nds *hardware.NDS) interface{} {
		return Hex8(nds.Mem.WRAMCNT)
	})
	ins.add("mem.postflg", func(nds *hardware.NDS) interface{} {
		return Hex8(nds.Mem.POSTFLG9)
	})
}
