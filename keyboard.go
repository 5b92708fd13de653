// keyboard.go - keyboard mailbox controller for the Jupiter core

/*
keyboard.go - KeyboardController

The guest's keyboard buffer is a 96-byte bitmap, one byte per key code.
Each cycle the controller polls the host for currently pressed keys and
writes a fresh bitmap - 1 for pressed, 0 for released - leaving no
stale state between polls. The poll itself (PressedKeys) is expected to
be a blocking OS call and is run concurrently with the mouse poll by
Computer.servicePeripherals; Apply is the non-blocking half that
actually touches the mailbox, always called in a fixed
disk/keyboard/mouse order.
*/

package main

// HostKeyboard is the narrow collaborator a presentation backend
// implements to report which of the guest's 96 key codes are currently
// held down.
type HostKeyboard interface {
	PressedKeys() []int
}

// KeyboardController polls a HostKeyboard and reflects its state into
// the guest's keyboard buffer.
type KeyboardController struct {
	host HostKeyboard
}

// NewKeyboardController wires a HostKeyboard to the mailbox protocol.
func NewKeyboardController(host HostKeyboard) *KeyboardController {
	return &KeyboardController{host: host}
}

// Poll performs the (possibly blocking) host query. Safe to call
// concurrently with a MouseController's Poll.
func (k *KeyboardController) Poll() []int {
	return k.host.PressedKeys()
}

// Apply writes the pressed-key bitmap into the guest's keyboard buffer.
// Keys outside the 0..95 code space are silently ignored rather than
// treated as a fault, since the host key set is outside the guest's
// control.
func (k *KeyboardController) Apply(mem *Memory, pressed []int) {
	start, end := mem.KeyboardStart(), mem.KeyboardEnd()
	size := end - start

	for offset := uint32(0); offset < size; offset++ {
		mem.WriteByte(start+offset, 0)
	}
	for _, code := range pressed {
		if code < 0 || uint32(code) >= size {
			continue
		}
		mem.WriteByte(start+uint32(code), 1)
	}
}
