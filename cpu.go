// cpu.go - the Jupiter core's phased 32-bit processor

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
cpu.go - Phased 32-bit RISC-style processor for the Jupiter core

This module implements the register file and the four-phase state
machine (FETCH, DECODE_EXECUTE, MEMORY, WRITEBACK). Tick is a pure
function of (cpu state, bus data in)
returning (new state, bus request): there is no hidden multi-tick side
effect anywhere in this file, and the pending transaction / pending
write-back are the only state carried between one phase and the next.

Signal flow per cycle (four calls to Tick):
  1. FETCH            - request ReadWord at PC.
  2. DECODE_EXECUTE    - consume the fetched word, advance PC, decode
                         and execute; arithmetic/logical ops queue a
                         write-back, loads/stores queue a transaction,
                         branches/jumps write PC immediately.
  3. MEMORY           - interpret the bus's response according to the
                         transaction queued in DECODE_EXECUTE (sign or
                         zero extend, or pass the word through), then
                         clear the transaction.
  4. WRITEBACK        - apply the queued write-back, then clear it.

Register numbering. GPRs are 0..31. PC, HI and LO are addressed through
the same virtual register space as 32, 33 and 34 respectively, so every
instruction that produces a result - including branches, which write
PC, and MTHI/MTLO, which write HI/LO - can be dispatched through a
single WriteReg call.
*/

package main

import (
	"fmt"
	"io"
)

// Phase is one of the four micro-steps comprising a cycle.
type Phase uint8

const (
	PhaseFetch Phase = iota
	PhaseDecodeExecute
	PhaseMemory
	PhaseWriteback
)

func (p Phase) String() string {
	switch p {
	case PhaseFetch:
		return "FETCH"
	case PhaseDecodeExecute:
		return "DECODE_EXECUTE"
	case PhaseMemory:
		return "MEMORY"
	case PhaseWriteback:
		return "WRITEBACK"
	default:
		return "?"
	}
}

// Virtual register numbers outside the 32 GPRs.
const (
	RegPC uint8 = 32
	RegHI uint8 = 33
	RegLO uint8 = 34
)

// transaction is the (type, address, data) triple a phase hands to the
// bus host. It is cleared to NoTransfer in MEMORY, so the pending
// transaction is always observable as NoTransfer at every cycle
// boundary.
type transaction struct {
	typ  TransferType
	addr uint32
	data uint32
}

// writeback is the deferred register update completed in WRITEBACK.
// hasTarget makes "no write-back this cycle" an explicit case rather
// than overloading register 0 (which is itself a legal, if useless,
// write target) to mean absence.
type writeback struct {
	hasTarget bool
	target    uint8
	value     int32
}

// CPU is the Jupiter core's register file plus its phase state
// machine. Every field here is part of the state Tick advances one
// phase at a time; nothing else is kept.
type CPU struct {
	reg [32]int32
	fp  [32]float32 // reserved for future use; never read or written here
	hi  int32
	lo  int32
	pc  uint32

	phase Phase
	instr uint32

	pendingTx transaction
	pendingWB writeback
}

// NewCPU returns a CPU with PC and all registers zeroed, phase FETCH.
func NewCPU() *CPU {
	return &CPU{phase: PhaseFetch}
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// Reg returns the value of GPR n (0..31). Register 0 always reads 0.
func (c *CPU) Reg(n uint8) int32 {
	if n == 0 {
		return 0
	}
	return c.reg[n]
}

// HI and LO return the special multiply/divide registers.
func (c *CPU) HI() int32 { return c.hi }
func (c *CPU) LO() int32 { return c.lo }

// FP returns FP slot n (0..31); always zero, never written.
func (c *CPU) FP(n uint8) float32 { return c.fp[n] }

// WriteReg dispatches a write through the virtual register namespace.
// Writes to register 0 are silently discarded. A write to PC with a
// value not divisible by 4 is a fatal fault.
func (c *CPU) WriteReg(n uint8, value int32) {
	switch {
	case n == 0:
		return
	case n == RegPC:
		if uint32(value)%4 != 0 {
			fault("cpu: jump/branch target %#x is not 4-byte aligned", uint32(value))
		}
		c.pc = uint32(value)
	case n == RegHI:
		c.hi = value
	case n == RegLO:
		c.lo = value
	default:
		c.reg[n] = value
	}
}

func (c *CPU) nextPhase() {
	switch c.phase {
	case PhaseFetch:
		c.phase = PhaseDecodeExecute
	case PhaseDecodeExecute:
		c.phase = PhaseMemory
	case PhaseMemory:
		c.phase = PhaseWriteback
	case PhaseWriteback:
		c.phase = PhaseFetch
	}
}

// Tick advances the processor by one phase. dataIn is the bus's
// response to the request returned by the *previous* Tick call; the
// returned triple is the request for the bus host to execute next.
func (c *CPU) Tick(dataIn uint32) (TransferType, uint32, uint32) {
	switch c.phase {
	case PhaseFetch:
		c.fetch()
	case PhaseDecodeExecute:
		c.decodeExecute(dataIn)
	case PhaseMemory:
		c.memory(dataIn)
	case PhaseWriteback:
		c.writeback()
	}
	c.nextPhase()
	return c.pendingTx.typ, c.pendingTx.addr, c.pendingTx.data
}

func (c *CPU) fetch() {
	c.pendingTx = transaction{typ: ReadWord, addr: c.pc}
}

func (c *CPU) decodeExecute(word uint32) {
	c.instr = word
	c.pc += 4
	c.pendingTx = transaction{}
	c.pendingWB = writeback{}
	c.execute(decode(word))
}

func (c *CPU) memory(data uint32) {
	if c.pendingWB.hasTarget {
		switch c.pendingTx.typ {
		case ReadByte:
			c.pendingWB.value = int32(int8(uint8(data)))
		case ReadHalf:
			c.pendingWB.value = int32(int16(uint16(data)))
		case ReadByteUnsigned:
			c.pendingWB.value = int32(uint8(data))
		case ReadHalfUnsigned:
			c.pendingWB.value = int32(uint16(data))
		case ReadWord:
			c.pendingWB.value = int32(data)
		}
	}
	c.pendingTx = transaction{}
}

func (c *CPU) writeback() {
	if c.pendingWB.hasTarget {
		c.WriteReg(c.pendingWB.target, c.pendingWB.value)
	}
	c.pendingWB = writeback{}
}

// setWB queues a write-back for the current cycle; target 0 is legal
// (it is simply discarded in WRITEBACK) but still marks hasTarget so
// "wrote to r0" stays distinct from "no write-back issued".
func (c *CPU) setWB(target uint8, value int32) {
	c.pendingWB = writeback{hasTarget: true, target: target, value: value}
}

// Dump writes a full register-file snapshot, including the unused FP
// slots, for fatal-fault reporting and the debug monitor.
func (c *CPU) Dump(w io.Writer) {
	fmt.Fprintf(w, "cpu: phase=%s pc=%#08x hi=%d lo=%d\n", c.phase, c.pc, c.hi, c.lo)
	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(w, "  r%-2d=%-12d r%-2d=%-12d r%-2d=%-12d r%-2d=%-12d\n",
			i, c.reg[i], i+1, c.reg[i+1], i+2, c.reg[i+2], i+3, c.reg[i+3])
	}
	fmt.Fprintf(w, "  fp0..fp31 reserved, all zero: %v\n", c.fp == [32]float32{})
}
