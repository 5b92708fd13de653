package main

import "testing"

func encodeR(rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | uint32(shamt)<<6 | uint32(funct)
}

func encodeI(opcode, rs, rt uint8, imm int16) uint32 {
	return uint32(opcode)<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(uint16(imm))
}

func encodeJ(opcode uint8, target uint32) uint32 {
	return uint32(opcode)<<26 | (target & 0x03FFFFFF)
}

func TestDecodeRType(t *testing.T) {
	word := encodeR(5, 6, 7, 2, fnADD)
	d := decode(word)
	if d.opcode != opR || d.rs != 5 || d.rt != 6 || d.rd != 7 || d.shamt != 2 || d.funct != fnADD {
		t.Fatalf("decode(%#08x) = %+v, unexpected fields", word, d)
	}
}

func TestDecodeJTypeUsesCanonical26BitField(t *testing.T) {
	word := encodeJ(opJ, 0xFFFFFFFF)
	d := decode(word)
	if d.target != 0x03FFFFFF {
		t.Fatalf("target = %#x, want canonical 26-bit mask 0x03FFFFFF", d.target)
	}
}

func TestWriteRegZeroIsDiscarded(t *testing.T) {
	c := NewCPU()
	c.WriteReg(0, 12345)
	if c.Reg(0) != 0 {
		t.Fatalf("register 0 must always read 0, got %d", c.Reg(0))
	}
}

func TestWriteRegMisalignedPCFaults(t *testing.T) {
	c := NewCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a FatalFault panic for a misaligned PC write")
		}
	}()
	c.WriteReg(RegPC, 6)
}

// driveInstruction runs one full four-phase cycle against a fixed
// instruction word and no memory (no loads/stores/fetch-from-memory
// involved), useful for isolated ALU-style instruction tests.
func driveInstruction(t *testing.T, c *CPU, word uint32) {
	t.Helper()
	typ, _, _ := c.Tick(0) // FETCH: requests ReadWord at PC
	if typ != ReadWord {
		t.Fatalf("FETCH phase requested %v, want ReadWord", typ)
	}
	c.Tick(word) // DECODE_EXECUTE: consumes the fetched word
	c.Tick(0)    // MEMORY
	c.Tick(0)    // WRITEBACK
}

func TestADDIUAddsSignExtendedImmediate(t *testing.T) {
	c := NewCPU()
	c.WriteReg(8, 10)
	driveInstruction(t, c, encodeI(opADDIU, 8, 9, -3))
	if c.Reg(9) != 7 {
		t.Fatalf("r9 = %d, want 7", c.Reg(9))
	}
}

func TestLUIThenORIBuildsConstant(t *testing.T) {
	c := NewCPU()
	driveInstruction(t, c, encodeI(opLUI, 0, 4, 0x1234))
	if c.Reg(4) != int32(0x12340000) {
		t.Fatalf("after LUI r4 = %#x, want 0x12340000", uint32(c.Reg(4)))
	}
	driveInstruction(t, c, encodeI(opORI, 4, 4, 0x5678))
	if c.Reg(4) != int32(0x12345678) {
		t.Fatalf("after ORI r4 = %#x, want 0x12345678", uint32(c.Reg(4)))
	}
}

func TestBranchTakenAddsRawByteOffset(t *testing.T) {
	c := NewCPU()
	c.WriteReg(1, 5)
	c.WriteReg(2, 5)
	startPC := c.PC()
	driveInstruction(t, c, encodeI(opBEQ, 1, 2, 12))
	// PC was already advanced by 4 in DECODE_EXECUTE before the branch
	// adds its raw (unshifted) immediate.
	want := startPC + 4 + 12
	if c.PC() != want {
		t.Fatalf("pc = %#x, want %#x (branch immediate must not be shifted)", c.PC(), want)
	}
}

func TestBranchNotTakenLeavesPCAdvancedOnly(t *testing.T) {
	c := NewCPU()
	c.WriteReg(1, 1)
	c.WriteReg(2, 2)
	startPC := c.PC()
	driveInstruction(t, c, encodeI(opBEQ, 1, 2, 100))
	if c.PC() != startPC+4 {
		t.Fatalf("pc = %#x, want %#x", c.PC(), startPC+4)
	}
}

func TestJALWritesReturnAddressThenJumps(t *testing.T) {
	c := NewCPU()
	startPC := c.PC()
	driveInstruction(t, c, encodeJ(opJAL, 0x100))
	if c.Reg(31) != int32(startPC+4) {
		t.Fatalf("r31 = %#x, want return address %#x", uint32(c.Reg(31)), startPC+4)
	}
	if c.PC() != 0x400 {
		t.Fatalf("pc = %#x, want 0x400 (target<<2)", c.PC())
	}
}

func TestDivisionByZeroSetsLOAndHIToZero(t *testing.T) {
	c := NewCPU()
	c.WriteReg(4, 10)
	c.WriteReg(5, 0)
	driveInstruction(t, c, encodeR(4, 5, 0, 0, fnDIV))
	if c.LO() != 0 || c.HI() != 0 {
		t.Fatalf("LO=%d HI=%d after division by zero, want both 0", c.LO(), c.HI())
	}
}

func TestMULTSplitsSigned64BitProduct(t *testing.T) {
	c := NewCPU()
	c.WriteReg(4, -2)
	c.WriteReg(5, 3)
	driveInstruction(t, c, encodeR(4, 5, 0, 0, fnMULT))
	want := int64(-6)
	got := int64(c.HI())<<32 | int64(uint32(c.LO()))
	if got != want {
		t.Fatalf("HI:LO = %d, want %d", got, want)
	}
}

func TestUnknownOpcodeFaults(t *testing.T) {
	c := NewCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a FatalFault panic for an unrecognized opcode")
		}
	}()
	driveInstruction(t, c, encodeI(63, 0, 0, 0))
}

func TestUnknownFunctFaults(t *testing.T) {
	c := NewCPU()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a FatalFault panic for an unrecognized funct")
		}
	}()
	driveInstruction(t, c, encodeR(0, 0, 0, 0, 0x3F))
}

func TestAddWrapsOnSignedOverflow(t *testing.T) {
	c := NewCPU()
	c.WriteReg(1, 0x7FFFFFFF)
	c.WriteReg(2, 1)
	driveInstruction(t, c, encodeR(1, 2, 3, 0, fnADD))
	if c.Reg(3) != int32(-0x80000000) {
		t.Fatalf("r3 = %d, want wrapped minimum int32", c.Reg(3))
	}
}
