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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const prompt = "> "

// Start reading commands from the input until the quit command is processed,
// the input ends or the context is cancelled. An interrupt signal during a
// command stops that command but not the monitor.
func (mon *Monitor) Start(ctx context.Context, input *os.File) error {
	if term.IsTerminal(int(input.Fd())) {
		return mon.startLiner(ctx)
	}
	return mon.startPlain(ctx, input)
}

func (mon *Monitor) startLiner(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(mon.Complete)

	for ctx.Err() == nil {
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if mon.command(ctx, input) {
			return nil
		}
	}

	return ctx.Err()
}

func (mon *Monitor) startPlain(ctx context.Context, input *os.File) error {
	scanner := bufio.NewScanner(input)

	for ctx.Err() == nil && scanner.Scan() {
		if mon.command(ctx, scanner.Text()) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

// run a single command with its own interrupt handler. returns true if the
// monitor should quit.
func (mon *Monitor) command(ctx context.Context, input string) bool {
	cmdCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	quit, err := mon.Process(cmdCtx, input)
	if err != nil {
		if curated.IsAny(err) {
			fmt.Fprintf(mon.out, "* %v\n", err)
		} else {
			fmt.Fprintf(mon.out, "* error: %v\n", err)
		}
	}

	return quit
}
