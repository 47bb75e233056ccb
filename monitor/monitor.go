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

package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherds/cartridgeloader"
	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/arm"
	"github.com/jetsetilly/gopherds/hardware/inspect"
	"github.com/jetsetilly/gopherds/hardware/memory/bus"
	"github.com/jetsetilly/gopherds/paths"
	"github.com/jetsetilly/gopherds/savestate"
)

// Sentinal error patterns.
const (
	UnknownCommand   = "monitor: unknown command (%s)"
	AmbiguousCommand = "monitor: ambiguous command (%s could be %s)"
	BadArguments     = "monitor: %s: %v"
)

// the largest number of bytes that can be displayed by a single peek command
const maxPeek = 256

// Monitor processes commands for an emulation.
type Monitor struct {
	nds    *hardware.NDS
	ins    *inspect.Inspector
	loader cartridgeloader.Loader
	out    io.Writer

	// the context used for the run command. a cancelled context interrupts
	// a long running command without ending the monitor
	ctx context.Context

	commands map[string]command
	names    []string
}

type command struct {
	name  string
	usage string
	help  string
	fn    func(args []string) (bool, error)
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The loader is used to name savestate files and can be the zero value.
func NewMonitor(nds *hardware.NDS, loader cartridgeloader.Loader, out io.Writer) *Monitor {
	mon := &Monitor{
		nds:    nds,
		ins:    inspect.NewInspector(nds),
		loader: loader,
		out:    out,
		ctx:    context.Background(),
	}

	mon.commands = map[string]command{
		"step":   {usage: "STEP [n]", help: "advance the emulation by n slices", fn: mon.step},
		"run":    {usage: "RUN cycles", help: "run the emulation for a number of ARM7 cycles", fn: mon.run},
		"regs":   {usage: "REGS [ARM9|ARM7]", help: "display the registers of the processors", fn: mon.regs},
		"peek":   {usage: "PEEK ARM9|ARM7 address [length]", help: "display memory without side effects", fn: mon.peek},
		"field":  {usage: "FIELD name", help: "display the value of a named field", fn: mon.field},
		"fields": {usage: "FIELDS [prefix]", help: "list the names of fields", fn: mon.fields},
		"save":   {usage: "SAVE [file]", help: "save the emulation state", fn: mon.save},
		"load":   {usage: "LOAD file", help: "load an emulation state", fn: mon.load},
		"graph":  {usage: "GRAPH file", help: "write the emulation structure as a graphviz file", fn: mon.graph},
		"reset":  {usage: "RESET", help: "reset the emulation", fn: mon.reset},
		"script": {usage: "SCRIPT file", help: "run a Lua script", fn: mon.script},
		"log":    {usage: "LOG [n]", help: "display the most recent log entries", fn: mon.log},
		"help":   {usage: "HELP", help: "list the commands", fn: mon.help},
		"quit":   {usage: "QUIT", help: "leave the monitor", fn: mon.quit},
	}

	for n, c := range mon.commands {
		c.name = n
		mon.commands[n] = c
		mon.names = append(mon.names, n)
	}
	sort.Strings(mon.names)

	return mon
}

// Process a single line of input. Returns true if the monitor should quit.
// An empty line is not an error.
func (mon *Monitor) Process(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	cmd, err := mon.match(args[0])
	if err != nil {
		return false, err
	}

	prev := mon.ctx
	mon.ctx = ctx
	defer func() {
		mon.ctx = prev
	}()

	return cmd.fn(args[1:])
}

// Complete returns the command names that begin with the line. For use as a
// liner completer.
func (mon *Monitor) Complete(line string) []string {
	args := strings.Fields(line)

	switch len(args) {
	case 0:
		return mon.names
	case 1:
		if strings.HasSuffix(line, " ") {
			break
		}
		var c []string
		for _, n := range mon.names {
			if strings.HasPrefix(n, strings.ToLower(args[0])) {
				c = append(c, n)
			}
		}
		return c
	}

	// complete field names for the field command
	if cmd, _ := mon.match(args[0]); cmd.name == "field" && len(args) <= 2 {
		var prefix string
		if len(args) == 2 {
			prefix = args[1]
		}
		var c []string
		for _, f := range mon.ins.Match(prefix) {
			c = append(c, fmt.Sprintf("%s %s", args[0], f))
		}
		return c
	}

	return nil
}

func (mon *Monitor) match(name string) (command, error) {
	name = strings.ToLower(name)
	if cmd, ok := mon.commands[name]; ok {
		return cmd, nil
	}

	var m []string
	for _, n := range mon.names {
		if strings.HasPrefix(n, name) {
			m = append(m, n)
		}
	}

	switch len(m) {
	case 0:
		return command{}, curated.Errorf(UnknownCommand, name)
	case 1:
		return mon.commands[m[0]], nil
	}
	return command{}, curated.Errorf(AmbiguousCommand, name, strings.Join(m, " or "))
}

func (mon *Monitor) printf(format string, args ...interface{}) {
	fmt.Fprintf(mon.out, format, args...)
}

func parseNumber(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "$")
	return strconv.ParseUint(s, 0, 32)
}

func (mon *Monitor) step(args []string) (bool, error) {
	n := uint64(1)
	if len(args) > 0 {
		var err error
		n, err = strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return false, curated.Errorf(BadArguments, "step", err)
		}
	}

	var cycles int
	for i := uint64(0); i < n; i++ {
		cycles += mon.nds.Step()
	}
	mon.printf("%d cycles (total %d)\n", cycles, mon.nds.Cycles())

	return false, nil
}

func (mon *Monitor) run(args []string) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(BadArguments, "run", "a number of cycles is required")
	}

	budget, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return false, curated.Errorf(BadArguments, "run", err)
	}

	n, err := mon.nds.Run(mon.ctx, int(budget))
	mon.printf("%d cycles (total %d)\n", n, mon.nds.Cycles())
	if err != nil {
		return false, err
	}

	return false, nil
}

func (mon *Monitor) processor(name string) (*arm.ARM, bus.DebugBus, error) {
	switch strings.ToUpper(name) {
	case "ARM9", "9":
		return mon.nds.ARM9, mon.nds.Mem.ARM9(), nil
	case "ARM7", "7":
		return mon.nds.ARM7, mon.nds.Mem.ARM7(), nil
	}
	return nil, nil, fmt.Errorf("unknown processor (%s)", name)
}

func (mon *Monitor) regs(args []string) (bool, error) {
	cpus := []string{"ARM9", "ARM7"}
	if len(args) > 0 {
		cpus = args[:1]
	}

	for _, c := range cpus {
		cpu, _, err := mon.processor(c)
		if err != nil {
			return false, curated.Errorf(BadArguments, "regs", err)
		}

		mon.nds.Critical(func() {
			mon.printf("%s\n", cpu)
			for r := 0; r < arm.NumRegisters; r++ {
				mon.printf("R%-2d %08x", r, cpu.Register(r))
				if r%4 == 3 {
					mon.printf("\n")
				} else {
					mon.printf("  ")
				}
			}
			mon.printf("CPSR %s\n", cpu.CPSR())
			if spsr, err := cpu.SPSR(); err == nil {
				mon.printf("SPSR %s\n", spsr)
			}
		})
	}

	return false, nil
}

func (mon *Monitor) peek(args []string) (bool, error) {
	if len(args) < 2 {
		return false, curated.Errorf(BadArguments, "peek", "a processor and address are required")
	}

	_, dbg, err := mon.processor(args[0])
	if err != nil {
		return false, curated.Errorf(BadArguments, "peek", err)
	}

	address, err := parseNumber(args[1])
	if err != nil {
		return false, curated.Errorf(BadArguments, "peek", err)
	}

	length := uint64(16)
	if len(args) > 2 {
		length, err = parseNumber(args[2])
		if err != nil {
			return false, curated.Errorf(BadArguments, "peek", err)
		}
		if length == 0 || length > maxPeek {
			return false, curated.Errorf(BadArguments, "peek", fmt.Sprintf("length must be between 1 and %d", maxPeek))
		}
	}

	var peekErr error
	mon.nds.Critical(func() {
		var s strings.Builder
		for i := uint64(0); i < length; i++ {
			a := uint32(address + i)
			if i%16 == 0 {
				if i > 0 {
					s.WriteString("\n")
				}
				fmt.Fprintf(&s, "%08x:", a)
			}

			v, err := dbg.Peek(a)
			if err != nil {
				peekErr = err
				break // for loop
			}
			fmt.Fprintf(&s, " %02x", v)
		}
		mon.printf("%s\n", s.String())
	})

	return false, peekErr
}

func (mon *Monitor) field(args []string) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(BadArguments, "field", "a field name is required")
	}

	v, err := mon.ins.Lookup(args[0])
	if err != nil {
		return false, err
	}
	mon.printf("%s: %v\n", strings.ToLower(args[0]), v)

	return false, nil
}

func (mon *Monitor) fields(args []string) (bool, error) {
	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}
	for _, f := range mon.ins.Match(prefix) {
		mon.printf("%s\n", f)
	}
	return false, nil
}

func (mon *Monitor) save(args []string) (bool, error) {
	var fn string

	if len(args) > 0 {
		fn = args[0]
	} else {
		var err error
		fn, err = paths.ResourcePath("states", paths.UniqueFilename("state", mon.loader.ShortName())+".json")
		if err != nil {
			return false, curated.Errorf(BadArguments, "save", err)
		}
	}

	f, err := os.Create(fn)
	if err != nil {
		return false, curated.Errorf(BadArguments, "save", err)
	}
	defer f.Close()

	if err := savestate.Save(f, mon.nds); err != nil {
		return false, err
	}
	mon.printf("saved to %s\n", fn)

	return false, nil
}

func (mon *Monitor) load(args []string) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(BadArguments, "load", "a filename is required")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return false, curated.Errorf(BadArguments, "load", err)
	}
	defer f.Close()

	if err := savestate.Load(f, mon.nds); err != nil {
		return false, err
	}
	mon.printf("loaded %s\n", args[0])

	return false, nil
}

func (mon *Monitor) graph(args []string) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(BadArguments, "graph", "a filename is required")
	}

	f, err := os.Create(args[0])
	if err != nil {
		return false, curated.Errorf(BadArguments, "graph", err)
	}
	defer f.Close()

	mon.ins.Graph(f)
	mon.printf("graph written to %s\n", args[0])

	return false, nil
}

func (mon *Monitor) reset(_ []string) (bool, error) {
	if err := mon.nds.Reset(); err != nil {
		return false, err
	}
	mon.printf("emulation reset\n")
	return false, nil
}

func (mon *Monitor) log(args []string) (bool, error) {
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return false, curated.Errorf(BadArguments, "log", "the number of entries must be a positive number")
		}
		n = v
	}
	mon.nds.Env.Log.Tail(mon.out, n)
	return false, nil
}

func (mon *Monitor) help(_ []string) (bool, error) {
	for _, n := range mon.names {
		c := mon.commands[n]
		mon.printf("%-32s %s\n", c.usage, c.help)
	}
	return false, nil
}

func (mon *Monitor) quit(_ []string) (bool, error) {
	return true, nil
}
