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
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jetsetilly/gopherds/cartridgeloader"
	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/inspect"
	"github.com/jetsetilly/gopherds/hardware/preferences"
	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/modalflag"
	"github.com/jetsetilly/gopherds/monitor"
	"github.com/jetsetilly/gopherds/paths"
	"github.com/jetsetilly/gopherds/performance"
	"github.com/jetsetilly/gopherds/savestate"
	"github.com/jetsetilly/gopherds/statsview"
	"github.com/jetsetilly/gopherds/version"
	"golang.org/x/term"
)

// exit values
const (
	exitOK        = 0
	exitArguments = 10
	exitMode      = 20
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. returns the value to
// be used with os.Exit()
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE", "GRAPH", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArguments
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)
	case "MONITOR":
		err = monitorMode(ctx, md)
	case "PERFORMANCE":
		err = perform(ctx, md)
	case "GRAPH":
		err = graph(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return exitOK
}

// the flags common to every mode that creates an emulation
type emulationFlags struct {
	prefs     *string
	log       *bool
	statsview *bool
}

func addEmulationFlags(md *modalflag.Modes) emulationFlags {
	f := emulationFlags{
		prefs: md.AddString("prefs", "", "override preferences (eg. 'hardware.clockRatio::2; hardware.slice::4')"),
		log:   md.AddBool("log", false, "echo log entries to the output"),
	}
	if statsview.Available() {
		f.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return f
}

// create a new emulation with the cartridge named by the first remaining
// argument. the cartridge is optional if required is false
func newEmulation(md *modalflag.Modes, f emulationFlags, required bool) (*hardware.NDS, cartridgeloader.Loader, error) {
	var loader cartridgeloader.Loader

	switch len(md.RemainingArgs()) {
	case 0:
		if required {
			return nil, loader, fmt.Errorf("cartridge required for %s mode", md)
		}
	case 1:
		loader = cartridgeloader.NewLoader(md.GetArg(0))
	default:
		return nil, loader, fmt.Errorf("too many arguments for %s mode", md)
	}

	pth, err := paths.ResourcePath("", preferences.DefaultPrefsFile)
	if err != nil {
		return nil, loader, err
	}
	prefs, err := preferences.NewPreferences(pth)
	if err != nil {
		return nil, loader, err
	}
	if *f.prefs != "" {
		if err := prefs.Override(*f.prefs); err != nil {
			return nil, loader, err
		}
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, nil, prefs)
	if err != nil {
		return nil, loader, err
	}

	if *f.log {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			env.Log.SetEcho(logger.NewColorizer(md.Output), true)
		} else {
			env.Log.SetEcho(md.Output, true)
		}
	}

	if f.statsview != nil && *f.statsview {
		statsview.Launch(md.Output)
	}

	nds, err := hardware.NewNDS(env)
	if err != nil {
		return nil, loader, err
	}

	if loader.Filename != "" {
		if err := loader.Load(); err != nil {
			return nil, loader, err
		}
		cart, err := loader.Cartridge()
		if err != nil {
			return nil, loader, err
		}
		if err := nds.Attach(cart); err != nil {
			return nil, loader, err
		}
	}

	return nds, loader, nil
}

func restore(nds *hardware.NDS, filename string) error {
	if filename == "" {
		return nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return savestate.Load(f, nds)
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	f := addEmulationFlags(md)
	cycles := md.AddInt("cycles", 0, "number of ARM7 cycles to run for (0 runs until interrupted)")
	state := md.AddString("state", "", "savestate to load before running")
	save := md.AddString("save", "", "savestate file to write when the run ends")
	fields := md.AddString("fields", "arm9.pc arm7.pc", "fields to display when the run ends")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	nds, _, err := newEmulation(md, f, true)
	if err != nil {
		return err
	}

	if err := restore(nds, *state); err != nil {
		return err
	}

	// an unlimited run stops when the context is cancelled
	budget := *cycles
	if budget <= 0 {
		for err == nil {
			_, err = nds.Run(ctx, hardware.PerformanceBrake*1000)
		}
	} else {
		_, err = nds.Run(ctx, budget)
	}
	if err != nil && err != context.Canceled {
		return err
	}

	fmt.Fprintf(md.Output, "%d cycles\n", nds.Cycles())

	ins := inspect.NewInspector(nds)
	for _, n := range strings.Fields(*fields) {
		v, err := ins.Lookup(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%s: %v\n", n, v)
	}

	if *save != "" {
		out, err := os.Create(*save)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := savestate.Save(out, nds); err != nil {
			return err
		}
	}

	return nil
}

func monitorMode(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	f := addEmulationFlags(md)
	state := md.AddString("state", "", "savestate to load before starting the monitor")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	nds, loader, err := newEmulation(md, f, false)
	if err != nil {
		return err
	}

	if err := restore(nds, *state); err != nil {
		return err
	}

	mon := monitor.NewMonitor(nds, loader, md.Output)
	fmt.Fprintf(md.Output, "%s monitor. type HELP for a list of commands\n", version.ApplicationName)

	err = mon.Start(ctx, os.Stdin)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func perform(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()

	f := addEmulationFlags(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "NONE", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	nds, _, err := newEmulation(md, f, true)
	if err != nil {
		return err
	}

	_, err = performance.Check(ctx, md.Output, nds, prf, *duration)
	return err
}

func graph(md *modalflag.Modes) error {
	md.NewMode()

	f := addEmulationFlags(md)
	cycles := md.AddInt("cycles", 0, "number of ARM7 cycles to run before graphing")
	output := md.AddString("o", "", "output file (default is stdout)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	nds, _, err := newEmulation(md, f, false)
	if err != nil {
		return err
	}

	if *cycles > 0 {
		if _, err := nds.Run(context.Background(), *cycles); err != nil {
			return err
		}
	}

	w := md.Output
	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}

	inspect.NewInspector(nds).Graph(w)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintln(md.Output, version.String())
	if *revision {
		_, r, _ := version.Version()
		fmt.Fprintln(md.Output, r)
	}

	return nil
}
