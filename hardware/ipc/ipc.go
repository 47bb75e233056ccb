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

package ipc

import (
	"fmt"

	"github.com/jetsetilly/gopherds/environment"
	"github.com/jetsetilly/gopherds/hardware/interrupts"
)

// Side identifies one of the two processors.
type Side int

// List of valid Side values.
const (
	ARM9 Side = iota
	ARM7
)

func (s Side) String() string {
	if s == ARM9 {
		return "ARM9"
	}
	return "ARM7"
}

func (s Side) remote() Side {
	return 1 - s
}

// Requester is implemented by the interrupt registers of a processor.
type Requester interface {
	Request(bits uint32)
}

// register addresses
const (
	addrSync     = 0x04000180
	addrFIFOCnt  = 0x04000184
	addrFIFOSend = 0x04000188
	addrFIFORecv = 0x04100000
)

// the depth of each FIFO in words
const fifoDepth = 16

// FIFO is a queue of words sent from one processor to the other.
type FIFO struct {
	Words [fifoDepth]uint32
	Head  int
	Count int
}

func (f *FIFO) empty() bool {
	return f.Count == 0
}

func (f *FIFO) full() bool {
	return f.Count == fifoDepth
}

func (f *FIFO) push(v uint32) {
	f.Words[(f.Head+f.Count)%fifoDepth] = v
	f.Count++
}

func (f *FIFO) front() uint32 {
	return f.Words[f.Head]
}

func (f *FIFO) pop() uint32 {
	v := f.Words[f.Head]
	f.Head = (f.Head + 1) % fifoDepth
	f.Count--
	return v
}

func (f *FIFO) clear() {
	*f = FIFO{}
}

// Registers is the state of the IPC registers of one processor. The FIFO is
// the send FIFO of the processor, which is the receive FIFO of the remote
// processor.
type Registers struct {
	// bits 0-3 of IPCSYNC as seen by the remote processor
	SyncOutput uint8

	// IPCSYNC bit 14
	SyncIRQEnable bool

	// IPCFIFOCNT bits 2, 10, 14 and 15
	SendEmptyIRQ    bool
	RecvNotEmptyIRQ bool
	Error           bool
	Enabled         bool

	// the most recent word taken from the receive FIFO
	LastRecv uint32

	Send FIFO
}

// IPC is the state of the IPC registers of both processors.
type IPC struct {
	env   *environment.Environment
	irq   [2]Requester
	Sides [2]Registers
}

// NewIPC is the preferred method of initialisation for the IPC type. The
// requesters are the interrupt registers of the ARM9 and ARM7.
func NewIPC(env *environment.Environment, arm9 Requester, arm7 Requester) *IPC {
	return &IPC{
		env: env,
		irq: [2]Requester{arm9, arm7},
	}
}

// Reset the IPC registers of both processors.
func (ipc *IPC) Reset() {
	ipc.Sides = [2]Registers{}
}

func (ipc *IPC) String() string {
	return fmt.Sprintf("ARM9: sync %x fifo %d  ARM7: sync %x fifo %d",
		ipc.Sides[ARM9].SyncOutput, ipc.Sides[ARM9].Send.Count,
		ipc.Sides[ARM7].SyncOutput, ipc.Sides[ARM7].Send.Count)
}

// Snapshot makes a copy of the IPC state.
func (ipc *IPC) Snapshot() *IPC {
	n := *ipc
	return &n
}

// Plumb the register state from an earlier snapshot. The snapshot may have
// come from a different emulation.
func (ipc *IPC) Plumb(state *IPC) {
	ipc.Sides = state.Sides
}

// Port returns the view of the IPC registers for one of the processors.
func (ipc *IPC) Port(side Side) Port {
	return Port{ipc: ipc, side: side}
}

func (ipc *IPC) request(side Side, bits uint32) {
	if ipc.irq[side] != nil {
		ipc.irq[side].Request(bits)
	}
}

// Port is the view of the IPC registers seen by a single processor.
type Port struct {
	ipc  *IPC
	side Side
}

func (p Port) local() *Registers {
	return &p.ipc.Sides[p.side]
}

func (p Port) remote() *Registers {
	return &p.ipc.Sides[p.side.remote()]
}

func (p Port) sync() uint32 {
	l := p.local()
	v := uint32(p.remote().SyncOutput&0x0f) | uint32(l.SyncOutput&0x0f)<<8
	if l.SyncIRQEnable {
		v |= 0x4000
	}
	return v
}

func (p Port) fifoControl() uint32 {
	l := p.local()
	send := &l.Send
	recv := &p.remote().Send

	var v uint32
	if send.empty() {
		v |= 0x0001
	}
	if send.full() {
		v |= 0x0002
	}
	if l.SendEmptyIRQ {
		v |= 0x0004
	}
	if recv.empty() {
		v |= 0x0100
	}
	if recv.full() {
		v |= 0x0200
	}
	if l.RecvNotEmptyIRQ {
		v |= 0x0400
	}
	if l.Error {
		v |= 0x4000
	}
	if l.Enabled {
		v |= 0x8000
	}
	return v
}

// ReadRegister reads the IPC registers. The address is word aligned. Reading
// the receive FIFO removes a word from the FIFO.
func (p Port) ReadRegister(address uint32) (uint32, bool) {
	switch address {
	case addrSync:
		return p.sync(), true
	case addrFIFOCnt:
		return p.fifoControl(), true
	case addrFIFOSend:
		// write only
		return 0, true
	case addrFIFORecv:
		return p.receive(), true
	}
	return 0, false
}

func (p Port) receive() uint32 {
	l := p.local()
	recv := &p.remote().Send

	if !l.Enabled {
		return recv.front()
	}

	if recv.empty() {
		l.Error = true
		return l.LastRecv
	}

	l.LastRecv = recv.pop()

	// the remote processor's send FIFO is now empty
	if recv.empty() && p.remote().SendEmptyIRQ {
		p.ipc.request(p.side.remote(), interrupts.IPCSendEmpty)
	}

	return l.LastRecv
}

// WriteRegister writes the IPC registers. The address is word aligned and the
// mask selects which bytes are written.
func (p Port) WriteRegister(address uint32, value uint32, mask uint32) bool {
	l := p.local()

	switch address {
	case addrSync:
		if mask&0x0000ff00 != 0 {
			l.SyncOutput = uint8(value>>8) & 0x0f
			l.SyncIRQEnable = value&0x4000 != 0
			if value&0x2000 != 0 && p.remote().SyncIRQEnable {
				p.ipc.request(p.side.remote(), interrupts.IPCSync)
			}
		}

	case addrFIFOCnt:
		p.writeFIFOControl(value, mask)

	case addrFIFOSend:
		p.send(value)

	case addrFIFORecv:
		// read only

	default:
		return false
	}

	return true
}

func (p Port) writeFIFOControl(value uint32, mask uint32) {
	l := p.local()
	recv := &p.remote().Send

	if mask&0x000000ff != 0 {
		enable := value&0x0004 != 0
		if enable && !l.SendEmptyIRQ && l.Send.empty() {
			p.ipc.request(p.side, interrupts.IPCSendEmpty)
		}
		l.SendEmptyIRQ = enable

		if value&0x0008 != 0 {
			l.Send.clear()
		}
	}

	if mask&0x0000ff00 != 0 {
		enable := value&0x0400 != 0
		if enable && !l.RecvNotEmptyIRQ && !recv.empty() {
			p.ipc.request(p.side, interrupts.IPCRecvNotEmpty)
		}
		l.RecvNotEmptyIRQ = enable

		// the error flag is acknowledged by writing a one
		if value&0x4000 != 0 {
			l.Error = false
		}
		l.Enabled = value&0x8000 != 0
	}
}

func (p Port) send(value uint32) {
	l := p.local()
	if !l.Enabled {
		return
	}

	if l.Send.full() {
		l.Error = true
		p.ipc.env.Log.Logf(p.ipc.env, "ipc", "%s: send FIFO full", p.side)
		return
	}

	wasEmpty := l.Send.empty()
	l.Send.push(value)

	if wasEmpty && p.remote().RecvNotEmptyIRQ {
		p.ipc.request(p.side.remote(), interrupts.IPCRecvNotEmpty)
	}
}
