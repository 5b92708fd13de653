package main

import "testing"

func TestNewMemoryLayout(t *testing.T) {
	rom := []byte{1, 2, 3, 4}
	program := []byte{0xAA, 0xBB}

	mem, err := NewMemory(rom, program, 4096, 12)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	if mem.ROMEnd() != 4 {
		t.Fatalf("rom end = %d, want 4", mem.ROMEnd())
	}
	if got, want := mem.DiskMailboxEnd()-mem.DiskMailboxStart(), uint32(diskMailboxSize); got != want {
		t.Fatalf("disk mailbox size = %d, want %d", got, want)
	}
	if got, want := mem.KeyboardEnd()-mem.KeyboardStart(), uint32(keyboardBufferSize); got != want {
		t.Fatalf("keyboard buffer size = %d, want %d", got, want)
	}
	if got, want := mem.MouseEnd()-mem.MouseStart(), uint32(mouseBufferSize); got != want {
		t.Fatalf("mouse buffer size = %d, want %d", got, want)
	}
	if got, want := mem.VRAMEnd()-mem.VRAMStart(), uint32(12); got != want {
		t.Fatalf("vram size = %d, want %d", got, want)
	}

	if mem.ReadByte(0) != 1 || mem.ReadByte(3) != 4 {
		t.Fatalf("rom contents not laid out at address 0")
	}
	if mem.ReadByte(mem.VRAMEnd()) != 0xAA || mem.ReadByte(mem.VRAMEnd()+1) != 0xBB {
		t.Fatalf("program contents not laid out immediately after vram")
	}
}

func TestNewMemoryRejectsBadVRAMSize(t *testing.T) {
	if _, err := NewMemory(nil, nil, 1024, 10); err == nil {
		t.Fatal("expected error for vram size not divisible by 3")
	}
}

func TestNewMemoryRejectsROMTooBig(t *testing.T) {
	if _, err := NewMemory(make([]byte, 100), nil, 64, 0); err == nil {
		t.Fatal("expected error for rom too large for memory")
	}
}

func TestNewMemoryRejectsOverflow(t *testing.T) {
	if _, err := NewMemory(nil, make([]byte, 100), 64, 0); err == nil {
		t.Fatal("expected error when program overflows memory")
	}
}

func TestReadWriteWordBigEndian(t *testing.T) {
	mem, err := NewMemory(nil, nil, 256, 0)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	addr := mem.ram.start

	mem.WriteWord(addr, 0x01020304)
	if mem.ReadByte(addr) != 0x01 || mem.ReadByte(addr+3) != 0x04 {
		t.Fatalf("WriteWord did not store big-endian bytes")
	}
	if mem.ReadWord(addr) != 0x01020304 {
		t.Fatalf("ReadWord round-trip mismatch")
	}

	mem.WriteHalf(addr, 0xBEEF)
	if mem.ReadHalf(addr) != 0xBEEF {
		t.Fatalf("WriteHalf/ReadHalf round-trip mismatch")
	}
}

func TestReadOutOfBoundsFaults(t *testing.T) {
	mem, err := NewMemory(nil, nil, 128, 0)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a FatalFault panic for out-of-bounds read")
		}
	}()
	mem.ReadWord(126)
}

func TestWriteIntoROMFaults(t *testing.T) {
	mem, err := NewMemory([]byte{1, 2, 3, 4}, nil, 256, 0)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a FatalFault panic for a write into ROM")
		}
	}()
	mem.WriteByte(0, 0xFF)
}

// The first byte of the disk mailbox must remain writable: an
// inclusive upper bound on the ROM-protected region would incorrectly
// reject this write, so the bound is treated as half-open.
func TestWriteAtROMBoundaryIsAllowed(t *testing.T) {
	mem, err := NewMemory([]byte{1, 2, 3, 4}, nil, 256, 0)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	mem.WriteByte(mem.ROMEnd(), 0x7F) // first byte of the disk mailbox
	if mem.ReadByte(mem.ROMEnd()) != 0x7F {
		t.Fatalf("write at the byte immediately after ROM should succeed")
	}
}

func TestLoadFileFunctionsTreatEmptyPathAsNoFile(t *testing.T) {
	rom, err := LoadROMFile("")
	if err != nil || rom != nil {
		t.Fatalf("LoadROMFile(\"\") = %v, %v; want nil, nil", rom, err)
	}
	program, err := LoadProgramFile("")
	if err != nil || program != nil {
		t.Fatalf("LoadProgramFile(\"\") = %v, %v; want nil, nil", program, err)
	}
}
