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

package ipc_test

import (
	"testing"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
	"github.com/jetsetilly/gopherds/hardware/ipc"
	"github.com/jetsetilly/gopherds/test"
)

const (
	sync     = 0x04000180
	fifoCnt  = 0x04000184
	fifoSend = 0x04000188
	fifoRecv = 0x04100000
)

func newIPC(t *testing.T) (*ipc.IPC, *interrupts.Interrupts, *interrupts.Interrupts) {
	t.Helper()
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.ExpectSuccess(t, err)
	arm9 := interrupts.NewInterrupts()
	arm7 := interrupts.NewInterrupts()
	return ipc.NewIPC(env, arm9, arm7), arm9, arm7
}

func read(t *testing.T, p ipc.Port, address uint32) uint32 {
	t.Helper()
	v, ok := p.ReadRegister(address)
	test.ExpectSuccess(t, ok)
	return v
}

func TestSync(t *testing.T) {
	c, arm9irq, arm7irq := newIPC(t)
	arm9 := c.Port(ipc.ARM9)
	arm7 := c.Port(ipc.ARM7)

	// ARM9 output appears as ARM7 input
	test.ExpectSuccess(t, arm9.WriteRegister(sync, 0x0000050f, 0x0000ffff))
	test.ExpectEquality(t, read(t, arm9, sync), uint32(0x0500))
	test.ExpectEquality(t, read(t, arm7, sync), uint32(0x0005))

	// the input bits are read only
	test.ExpectEquality(t, read(t, arm9, sync)&0x0f, uint32(0))

	// a sync request with the remote interrupt disabled does nothing
	test.ExpectSuccess(t, arm9.WriteRegister(sync, 0x2000, 0x0000ff00))
	test.ExpectEquality(t, arm7irq.IF, uint32(0))

	// enable the interrupt on the ARM7 and request again
	test.ExpectSuccess(t, arm7.WriteRegister(sync, 0x4000, 0x0000ff00))
	test.ExpectEquality(t, read(t, arm7, sync)&0x4000, uint32(0x4000))
	test.ExpectSuccess(t, arm9.WriteRegister(sync, 0x2000, 0x0000ff00))
	test.ExpectEquality(t, arm7irq.IF, uint32(interrupts.IPCSync))
	test.ExpectEquality(t, arm9irq.IF, uint32(0))
}

func TestFIFO(t *testing.T) {
	c, _, _ := newIPC(t)
	arm9 := c.Port(ipc.ARM9)
	arm7 := c.Port(ipc.ARM7)

	// both FIFOs empty
	test.ExpectEquality(t, read(t, arm9, fifoCnt), uint32(0x0101))

	// sending is ignored while the FIFO is disabled
	test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, 0x12345678, 0xffffffff))
	test.ExpectEquality(t, c.Sides[ipc.ARM9].Send.Count, 0)

	test.ExpectSuccess(t, arm9.WriteRegister(fifoCnt, 0x8000, 0xffff))
	test.ExpectSuccess(t, arm7.WriteRegister(fifoCnt, 0x8000, 0xffff))

	test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, 0x11111111, 0xffffffff))
	test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, 0x22222222, 0xffffffff))
	test.ExpectEquality(t, read(t, arm9, fifoCnt), uint32(0x8100))
	test.ExpectEquality(t, read(t, arm7, fifoCnt), uint32(0x8001))

	// words are received in the order they were sent
	test.ExpectEquality(t, read(t, arm7, fifoRecv), uint32(0x11111111))
	test.ExpectEquality(t, read(t, arm7, fifoRecv), uint32(0x22222222))
	test.ExpectEquality(t, read(t, arm7, fifoCnt), uint32(0x8101))

	// reading an empty FIFO sets the error flag and returns the last word
	test.ExpectEquality(t, read(t, arm7, fifoRecv), uint32(0x22222222))
	test.ExpectEquality(t, read(t, arm7, fifoCnt), uint32(0xc101))

	// the error flag is acknowledged by writing a one
	test.ExpectSuccess(t, arm7.WriteRegister(fifoCnt, 0xc000, 0xffff))
	test.ExpectEquality(t, read(t, arm7, fifoCnt), uint32(0x8101))
}

func TestFIFOFull(t *testing.T) {
	c, _, _ := newIPC(t)
	arm9 := c.Port(ipc.ARM9)

	test.ExpectSuccess(t, arm9.WriteRegister(fifoCnt, 0x8000, 0xffff))
	for i := 0; i < 16; i++ {
		test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, uint32(i), 0xffffffff))
	}
	test.ExpectEquality(t, read(t, arm9, fifoCnt), uint32(0x8102))

	// a write to a full FIFO is lost and sets the error flag
	test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, 0xff, 0xffffffff))
	test.ExpectEquality(t, c.Sides[ipc.ARM9].Send.Count, 16)
	test.ExpectEquality(t, read(t, arm9, fifoCnt), uint32(0xc102))

	// clear the send FIFO
	test.ExpectSuccess(t, arm9.WriteRegister(fifoCnt, 0xc008, 0xffff))
	test.ExpectEquality(t, read(t, arm9, fifoCnt), uint32(0x8101))
}

func TestFIFOInterrupts(t *testing.T) {
	c, arm9irq, arm7irq := newIPC(t)
	arm9 := c.Port(ipc.ARM9)
	arm7 := c.Port(ipc.ARM7)

	// enabling the send empty interrupt while the FIFO is empty raises the
	// interrupt immediately
	test.ExpectSuccess(t, arm9.WriteRegister(fifoCnt, 0x8004, 0xffff))
	test.ExpectEquality(t, arm9irq.IF, uint32(interrupts.IPCSendEmpty))
	arm9irq.IF = 0

	test.ExpectSuccess(t, arm7.WriteRegister(fifoCnt, 0x8400, 0xffff))
	test.ExpectEquality(t, arm7irq.IF, uint32(0))

	// sending to an empty FIFO raises the receive interrupt on the remote
	test.ExpectSuccess(t, arm9.WriteRegister(fifoSend, 0xabcd, 0xffffffff))
	test.ExpectEquality(t, arm7irq.IF, uint32(interrupts.IPCRecvNotEmpty))

	// emptying the FIFO raises the send empty interrupt on the sender
	test.ExpectEquality(t, read(t, arm7, fifoRecv), uint32(0xabcd))
	test.ExpectEquality(t, arm9irq.IF, uint32(interrupts.IPCSendEmpty))
}

func TestUnmapped(t *testing.T) {
	c, _, _ := newIPC(t)
	p := c.Port(ipc.ARM7)
	_, ok := p.ReadRegister(0x0400018c)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, p.WriteRegister(0x04000190, 0, 0xffffffff))
}
