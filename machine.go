// machine.go - bus host (computer) for the Jupiter core

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

A modern reimagining of a phased, bus-coupled 32-bit home computer.
License: GPLv3 or later
*/

/*
machine.go - Computer: the bus host that drives the processor

On each Tick, Computer relays the CPU's current transfer request to
Memory and captures the result as the data signal for the processor's
next Tick. Four ticks make one Cycle; after the fourth, the disk,
keyboard and mouse controllers each run exactly once, in that fixed
order. Between cycles the CPU's
pending transaction type is always NoTransfer - this module never
reaches into CPU internals to check that; it falls out naturally from
the phase machine in cpu.go.

The keyboard and mouse controllers poll the host (blocking OS calls
that may take a variable amount of wall-clock time) concurrently via
golang.org/x/sync/errgroup, but neither is allowed to write its mailbox
until both polls have returned - so the guest-visible mailbox write
order is always disk, then keyboard, then mouse, regardless of which
host poll happens to finish first.
*/

package main

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Computer is the bus host: Memory, CPU, and the three peripheral
// controllers, wired together into one cycle-driven machine.
type Computer struct {
	mem *Memory
	cpu *CPU

	disk     *DiskController
	keyboard *KeyboardController
	mouse    *MouseController

	dataBus uint32
}

// NewComputer wires a CPU and Memory to the three peripheral
// controllers. Any controller may be nil, in which case its mailbox is
// simply never serviced (useful for tests that only exercise the CPU).
func NewComputer(mem *Memory, cpu *CPU, disk *DiskController, keyboard *KeyboardController, mouse *MouseController) *Computer {
	return &Computer{mem: mem, cpu: cpu, disk: disk, keyboard: keyboard, mouse: mouse}
}

func (c *Computer) tick() {
	typ, addr, data := c.cpu.Tick(c.dataBus)
	switch typ {
	case NoTransfer:
		// nothing to do
	case ReadByte, ReadByteUnsigned:
		c.dataBus = uint32(c.mem.ReadByte(addr))
	case ReadHalf, ReadHalfUnsigned:
		c.dataBus = uint32(c.mem.ReadHalf(addr))
	case ReadWord:
		c.dataBus = c.mem.ReadWord(addr)
	case WriteByte:
		c.mem.WriteByte(addr, uint8(data))
	case WriteHalf:
		c.mem.WriteHalf(addr, uint16(data))
	case WriteWord:
		c.mem.WriteWord(addr, data)
	}
}

// Cycle runs exactly four ticks (one instruction's worth of work) and
// then services each peripheral controller once, in fixed order.
func (c *Computer) Cycle() {
	c.tick() // FETCH
	c.tick() // DECODE_EXECUTE
	c.tick() // MEMORY
	c.tick() // WRITEBACK

	c.servicePeripherals()
}

func (c *Computer) servicePeripherals() {
	if c.disk != nil {
		c.disk.Service(c.mem)
	}

	if c.keyboard == nil && c.mouse == nil {
		return
	}

	var g errgroup.Group
	var pressedKeys []int
	var mouseX, mouseY uint32
	var mouseLMB, mouseRMB bool

	if c.keyboard != nil {
		g.Go(func() error {
			pressedKeys = c.keyboard.Poll()
			return nil
		})
	}
	if c.mouse != nil {
		g.Go(func() error {
			mouseX, mouseY, mouseLMB, mouseRMB = c.mouse.Poll()
			return nil
		})
	}
	_ = g.Wait() // pollers never return an error

	if c.keyboard != nil {
		c.keyboard.Apply(c.mem, pressedKeys)
	}
	if c.mouse != nil {
		c.mouse.Apply(c.mem, mouseX, mouseY, mouseLMB, mouseRMB)
	}
}

// Run drives Cycle in a loop, pumping cyclesPerTick cycles between
// each call to onTick (a presentation/poll callback), until ctx is
// cancelled or a FatalFault is raised. onTick may be nil.
func (c *Computer) Run(ctx context.Context, cyclesPerTick int, onTick func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ff, ok := r.(FatalFault); ok {
				err = ff
				return
			}
			panic(r)
		}
	}()

	if cyclesPerTick <= 0 {
		cyclesPerTick = 1
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		for i := 0; i < cyclesPerTick; i++ {
			c.Cycle()
		}

		if onTick != nil {
			onTick()
		}
	}
}

// Dump writes a full snapshot of CPU and memory-region state, used by
// fatal-fault reporting and the debug monitor.
func (c *Computer) Dump(w io.Writer) {
	c.cpu.Dump(w)
	c.mem.Dump(w)
	fmt.Fprintf(w, "bus: data=%#08x\n", c.dataBus)
}

// VRAM returns a copy of the current video memory, suitable for a
// presentation backend to hand to its renderer.
func (c *Computer) VRAM() []byte { return c.mem.VRAMSnapshot() }

// Memory and CPU expose the underlying components for tests and the
// debug monitor; production code should prefer Cycle/Run.
func (c *Computer) Memory() *Memory { return c.mem }
func (c *Computer) CPU() *CPU       { return c.cpu }
