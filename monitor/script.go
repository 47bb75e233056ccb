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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/inspect"
	lua "github.com/yuin/gopher-lua"
)

// ScriptError is returned when a script fails.
const ScriptError = "monitor: script: %v"

// script runs a Lua file. The emulation is available to the script through
// the following functions:
//
//	step([n])          advance by n slices and return the number of cycles
//	run(cycles)        run for a number of ARM7 cycles
//	peek(cpu, address) return the byte at the address as seen by "arm9" or "arm7"
//	field(name)        return the value of an inspection field
//	command(line)      process a monitor command. returns true for QUIT
//
// The print function writes to the output of the monitor.
func (mon *Monitor) script(args []string) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(BadArguments, "script", "a filename is required")
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(mon.ctx)

	var quit bool

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		var s []string
		for i := 1; i <= L.GetTop(); i++ {
			s = append(s, L.ToStringMeta(L.Get(i)).String())
		}
		mon.printf("%s\n", strings.Join(s, "\t"))
		return 0
	}))

	L.SetGlobal("step", L.NewFunction(func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		var cycles int
		for i := 0; i < n; i++ {
			cycles += mon.nds.Step()
		}
		L.Push(lua.LNumber(cycles))
		return 1
	}))

	L.SetGlobal("run", L.NewFunction(func(L *lua.LState) int {
		n, err := mon.nds.Run(mon.ctx, L.CheckInt(1))
		if err != nil {
			L.RaiseError("%v", err)
		}
		L.Push(lua.LNumber(n))
		return 1
	}))

	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		_, dbg, err := mon.processor(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
		}

		address := uint32(L.CheckNumber(2))

		var v uint8
		mon.nds.Critical(func() {
			v, err = dbg.Peek(address)
		})
		if err != nil {
			L.RaiseError("%v", err)
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	L.SetGlobal("field", L.NewFunction(func(L *lua.LState) int {
		v, err := mon.ins.Lookup(L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
		}
		L.Push(toLua(v))
		return 1
	}))

	L.SetGlobal("command", L.NewFunction(func(L *lua.LState) int {
		q, err := mon.Process(mon.ctx, L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
		}
		quit = quit || q
		L.Push(lua.LBool(q))
		return 1
	}))

	if err := L.DoFile(args[0]); err != nil {
		return false, curated.Errorf(ScriptError, err)
	}

	return quit, nil
}

// convert an inspection value to a Lua value. numbers are exact up to 2^53,
// which is enough for any register and for the cycle counts of a long session
func toLua(v interface{}) lua.LValue {
	switch v := v.(type) {
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case uint64:
		return lua.LNumber(v)
	case inspect.Hex32:
		return lua.LNumber(v)
	case inspect.Hex8:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case fmt.Stringer:
		return lua.LString(v.String())
	}
	return lua.LString(fmt.Sprintf("%v", v))
}
