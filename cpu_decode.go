// cpu_decode.go - instruction decode for the Jupiter core

package main

// Opcode field values (bits 31..26). 0 means R-type; sub-dispatch is
// on funct. 2 and 3 are J-type; everything else is I-type.
const (
	opR     = 0
	opJ     = 2
	opJAL   = 3
	opBEQ   = 4
	opBNE   = 5
	opBLEZ  = 6
	opBGTZ  = 7
	opADDI  = 8
	opADDIU = 9
	opSLTI  = 10
	opSLTIU = 11
	opANDI  = 12
	opORI   = 13
	opXORI  = 14
	opLUI   = 15
	opLB    = 32
	opLH    = 33
	opLW    = 34
	opLBU   = 36
	opLHU   = 37
	opSB    = 40
	opSH    = 41
	opSW    = 43
)

// R-type funct field values (bits 5..0).
const (
	fnSLL   = 0
	fnSRL   = 2
	fnSRA   = 3
	fnSLLV  = 4
	fnSRLV  = 6
	fnSRAV  = 7
	fnJR    = 8
	fnJALR  = 9
	fnSYSCALL = 12
	fnMFHI  = 16
	fnMTHI  = 17
	fnMFLO  = 18
	fnMTLO  = 19
	fnMULT  = 24
	fnMULTU = 25
	fnDIV   = 26
	fnDIVU  = 27
	fnADD   = 32
	fnADDU  = 33
	fnSUB   = 34
	fnSUBU  = 35
	fnAND   = 36
	fnOR    = 37
	fnXOR   = 38
	fnNOR   = 39
	fnSLT   = 42
	fnSLTU  = 43
)

// decoded holds every field a 32-bit instruction word might carry,
// extracted once regardless of which shape (R/I/J) the opcode turns
// out to require.
type decoded struct {
	opcode uint8
	rs     uint8
	rt     uint8
	rd     uint8
	shamt  uint8
	funct  uint8
	imm    int16  // sign-extended at use, zero-extended forms reread raw16
	raw16  uint16
	target uint32 // low 26 bits, J-type
}

func decode(word uint32) decoded {
	return decoded{
		opcode: uint8(word >> 26),
		rs:     uint8((word >> 21) & 0x1F),
		rt:     uint8((word >> 16) & 0x1F),
		rd:     uint8((word >> 11) & 0x1F),
		shamt:  uint8((word >> 6) & 0x1F),
		funct:  uint8(word & 0x3F),
		imm:    int16(uint16(word & 0xFFFF)),
		raw16:  uint16(word & 0xFFFF),
		target: word & 0x03FFFFFF, // canonical 26-bit J-type field
	}
}
