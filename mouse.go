// mouse.go - mouse mailbox controller for the Jupiter core

/*
mouse.go - MouseController

The guest's mouse buffer holds absolute X/Y (32-bit big-endian each)
and two single-byte button flags. Poll performs the host query (a
blocking OS call in any real backend); Apply writes the result into the
mailbox. Split the same way as KeyboardController so the two host
polls can run concurrently while the mailbox writes themselves stay
strictly ordered.
*/

package main

// HostMouse is the narrow collaborator a presentation backend
// implements to report host cursor position and button state.
type HostMouse interface {
	Position() (x, y uint32)
	Buttons() (left, right bool)
}

// MouseController polls a HostMouse and reflects its state into the
// guest's mouse buffer.
type MouseController struct {
	host HostMouse
}

// NewMouseController wires a HostMouse to the mailbox protocol.
func NewMouseController(host HostMouse) *MouseController {
	return &MouseController{host: host}
}

// Poll performs the (possibly blocking) host query, returning the
// fields Apply will later write. Safe to call concurrently with a
// KeyboardController's Poll.
func (m *MouseController) Poll() (x, y uint32, left, right bool) {
	x, y = m.host.Position()
	left, right = m.host.Buttons()
	return
}

// Apply writes x, y and the two button flags into the guest's mouse
// buffer.
func (m *MouseController) Apply(mem *Memory, x, y uint32, left, right bool) {
	mem.WriteWord(mem.MouseXAddr(), x)
	mem.WriteWord(mem.MouseYAddr(), y)
	mem.WriteByte(mem.MouseLMBAddr(), boolToByte(left))
	mem.WriteByte(mem.MouseRMBAddr(), boolToByte(right))
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
