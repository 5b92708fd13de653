// faults.go - fatal execution fault type for the Jupiter core

package main

// FatalFault is the panic payload raised by the processor or memory
// for any unrecoverable execution fault: unknown opcode/funct,
// out-of-bounds address, a write into ROM, or a misaligned PC write.
// There is no guest-visible error
// channel for these; Computer.Run recovers exactly one FatalFault,
// reports it, and stops.
type FatalFault struct {
	Msg string
}

func (f FatalFault) Error() string { return f.Msg }
