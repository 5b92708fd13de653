// memory.go - flat byte-addressable memory for the Jupiter core

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
memory.go - Memory for the Jupiter core

Implements the flat byte array of the machine: a ROM
prefix, three fixed-size peripheral mailboxes (disk, keyboard, mouse),
a VRAM window and a general RAM tail that also holds the loaded program
image. Region boundaries are computed once at construction and never
move. All multi-byte accesses are big-endian on the wire, matching the
bus; unaligned half/word access is permitted and simply touches
consecutive bytes.

Thread safety: Memory is NOT internally synchronised. A single bus
master (the Computer's cycle loop) and peripheral controllers that run
strictly between cycles guarantee no concurrent access to the
underlying byte slice is ever possible; a mutex here would just be dead
weight on the hottest path in the system.
*/

package main

import (
	"fmt"
	"io"
	"os"
)

const (
	diskMailboxSize    = 1 + 8 + 4 // tag + sector(hi,lo) + data
	diskTagOffset      = 0
	diskSectorHiOffset = 1
	diskSectorLoOffset = 5
	diskDataOffset     = 9

	keyboardBufferSize = 96

	mouseBufferSize = 4 + 4 + 1 + 1 // x, y, lmb, rmb
	mouseXOffset    = 0
	mouseYOffset    = 4
	mouseLMBOffset  = 8
	mouseRMBOffset  = 9
)

// region names a contiguous, half-open byte range [start, end).
type region struct {
	start, end uint32
}

func (r region) size() uint32 { return r.end - r.start }

// Memory is the flat, region-partitioned address space the processor
// and peripheral controllers share.
type Memory struct {
	data []byte
	size uint32

	rom      region
	disk     region
	keyboard region
	mouse    region
	vram     region
	ram      region
}

// NewMemory lays out ROM, the three mailboxes, VRAM and general RAM (in
// that order, contiguous, no gaps) and zero-pads to memorySize. rom and
// program may both be nil, meaning "no file supplied".
func NewMemory(rom, program []byte, memorySize, vramSize uint32) (*Memory, error) {
	if vramSize%3 != 0 {
		return nil, fmt.Errorf("memory: vram size %d is not a multiple of 3", vramSize)
	}

	romRegion := region{0, uint32(len(rom))}
	if romRegion.size() > memorySize {
		return nil, fmt.Errorf("memory: rom of %d bytes does not fit in %d bytes of memory", romRegion.size(), memorySize)
	}

	diskRegion := region{romRegion.end, romRegion.end + diskMailboxSize}
	keyboardRegion := region{diskRegion.end, diskRegion.end + keyboardBufferSize}
	mouseRegion := region{keyboardRegion.end, keyboardRegion.end + mouseBufferSize}
	vramRegion := region{mouseRegion.end, mouseRegion.end + vramSize}
	programEnd := vramRegion.end + uint32(len(program))

	if programEnd > memorySize {
		return nil, fmt.Errorf("memory: rom+mailboxes+vram+program (%d bytes) exceeds memory size %d", programEnd, memorySize)
	}

	data := make([]byte, memorySize)
	copy(data[romRegion.start:romRegion.end], rom)
	copy(data[vramRegion.end:programEnd], program)

	return &Memory{
		data:     data,
		size:     memorySize,
		rom:      romRegion,
		disk:     diskRegion,
		keyboard: keyboardRegion,
		mouse:    mouseRegion,
		vram:     vramRegion,
		ram:      region{vramRegion.end, memorySize},
	}, nil
}

// --- region accessors -------------------------------------------------

func (m *Memory) ROMEnd() uint32 { return m.rom.end }

func (m *Memory) DiskMailboxStart() uint32 { return m.disk.start }
func (m *Memory) DiskMailboxEnd() uint32   { return m.disk.end }
func (m *Memory) DiskTagAddr() uint32      { return m.disk.start + diskTagOffset }
func (m *Memory) DiskSectorHiAddr() uint32 { return m.disk.start + diskSectorHiOffset }
func (m *Memory) DiskSectorLoAddr() uint32 { return m.disk.start + diskSectorLoOffset }
func (m *Memory) DiskDataAddr() uint32     { return m.disk.start + diskDataOffset }

func (m *Memory) KeyboardStart() uint32 { return m.keyboard.start }
func (m *Memory) KeyboardEnd() uint32   { return m.keyboard.end }

func (m *Memory) MouseStart() uint32     { return m.mouse.start }
func (m *Memory) MouseEnd() uint32       { return m.mouse.end }
func (m *Memory) MouseXAddr() uint32     { return m.mouse.start + mouseXOffset }
func (m *Memory) MouseYAddr() uint32     { return m.mouse.start + mouseYOffset }
func (m *Memory) MouseLMBAddr() uint32   { return m.mouse.start + mouseLMBOffset }
func (m *Memory) MouseRMBAddr() uint32   { return m.mouse.start + mouseRMBOffset }

func (m *Memory) VRAMStart() uint32 { return m.vram.start }
func (m *Memory) VRAMEnd() uint32   { return m.vram.end }

// VRAMSnapshot returns a copy of the VRAM window, safe for a
// presentation backend to hold onto after the call returns.
func (m *Memory) VRAMSnapshot() []byte {
	out := make([]byte, m.vram.size())
	copy(out, m.data[m.vram.start:m.vram.end])
	return out
}

// --- bounds & protection checks ---------------------------------------

func fault(format string, args ...interface{}) {
	panic(FatalFault{Msg: fmt.Sprintf(format, args...)})
}

func (m *Memory) checkRead(addr uint32, width uint32) {
	if uint64(addr)+uint64(width) > uint64(m.size) {
		fault("memory: read of %d byte(s) at address %#x exceeds memory size %d", width, addr, m.size)
	}
}

func (m *Memory) checkWrite(addr uint32, width uint32) {
	m.checkRead(addr, width)
	// half-open [rom_start, rom_end): only the first byte of the disk
	// mailbox, not the last ROM byte, is ever incorrectly protected by
	// an inclusive bound - see spec open question on this exact bug.
	if addr < m.rom.end && addr+width > m.rom.start {
		fault("memory: write of %d byte(s) at address %#x falls within read-only ROM [%#x, %#x)", width, addr, m.rom.start, m.rom.end)
	}
}

// --- byte/half/word access ---------------------------------------------

func (m *Memory) ReadByte(addr uint32) uint8 {
	m.checkRead(addr, 1)
	return m.data[addr]
}

func (m *Memory) ReadHalf(addr uint32) uint16 {
	m.checkRead(addr, 2)
	return uint16(m.data[addr])<<8 | uint16(m.data[addr+1])
}

func (m *Memory) ReadWord(addr uint32) uint32 {
	m.checkRead(addr, 4)
	return uint32(m.data[addr])<<24 | uint32(m.data[addr+1])<<16 |
		uint32(m.data[addr+2])<<8 | uint32(m.data[addr+3])
}

func (m *Memory) WriteByte(addr uint32, v uint8) {
	m.checkWrite(addr, 1)
	m.data[addr] = v
}

func (m *Memory) WriteHalf(addr uint32, v uint16) {
	m.checkWrite(addr, 2)
	m.data[addr] = byte(v >> 8)
	m.data[addr+1] = byte(v)
}

func (m *Memory) WriteWord(addr uint32, v uint32) {
	m.checkWrite(addr, 4)
	m.data[addr] = byte(v >> 24)
	m.data[addr+1] = byte(v >> 16)
	m.data[addr+2] = byte(v >> 8)
	m.data[addr+3] = byte(v)
}

// Dump writes a short, human-readable summary of the region layout and
// sizes. Used by the debug monitor and by fatal-fault reporting; never
// on the hot path.
func (m *Memory) Dump(w io.Writer) {
	fmt.Fprintf(w, "memory: %d bytes total\n", m.size)
	fmt.Fprintf(w, "  rom      [%#08x, %#08x)\n", m.rom.start, m.rom.end)
	fmt.Fprintf(w, "  disk     [%#08x, %#08x)\n", m.disk.start, m.disk.end)
	fmt.Fprintf(w, "  keyboard [%#08x, %#08x)\n", m.keyboard.start, m.keyboard.end)
	fmt.Fprintf(w, "  mouse    [%#08x, %#08x)\n", m.mouse.start, m.mouse.end)
	fmt.Fprintf(w, "  vram     [%#08x, %#08x)\n", m.vram.start, m.vram.end)
	fmt.Fprintf(w, "  ram      [%#08x, %#08x)\n", m.ram.start, m.ram.end)
}

// LoadROMFile reads a ROM image from disk, returning nil (no error) if
// path is empty - "no ROM supplied" per the configuration contract.
func LoadROMFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

// LoadProgramFile reads a program image from disk, returning nil (no
// error) if path is empty - "no program supplied".
func LoadProgramFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}
