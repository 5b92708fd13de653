// paste.go - clipboard-to-keyboard paste enrichment for the Jupiter core

/*
paste.go - ClipboardPaste

An enrichment beyond the bare mailbox protocol: watching the host
clipboard and injecting its contents as a stream of synthesized
keypresses lets a guest program's line editor receive pasted text
without the guest needing any notion of "paste" at all - each
character just looks like one more key held down for a single poll.

Keeps the normalize-then-cap-then-drip shape of a terminal
paste handler, but targets the guest's 96-code keyboard buffer instead
of a byte-oriented PTY output stream.
*/

package main

import (
	"bytes"
	"sync"

	"golang.design/x/clipboard"
)

// maxPasteBytes bounds a single paste so a guest program can't be
// wedged reading an enormous buffer one synthesized frame at a time.
const maxPasteBytes = 4096

// ClipboardPaste holds a queue of guest key codes drawn from the last
// clipboard read, dispensed one per call to NextInjectedKey.
type ClipboardPaste struct {
	mu    sync.Mutex
	queue []int
}

// NewClipboardPaste returns an empty paste queue. clipboard.Init is
// attempted once; if it fails (no clipboard available on this host,
// e.g. a headless CI runner), TriggerPaste becomes a no-op rather than
// a fatal error, since this feature is an enrichment, not core
// functionality.
func NewClipboardPaste() *ClipboardPaste {
	_ = clipboard.Init()
	return &ClipboardPaste{}
}

// TriggerPaste reads the current clipboard contents, normalizes line
// endings, caps the length, and refills the injection queue. Call this
// from whatever hotkey handling a presentation backend wires up (the
// ebiten backend does not currently bind one; it exposes this so a
// future binding has somewhere to call).
func (c *ClipboardPaste) TriggerPaste() {
	raw := clipboard.Read(clipboard.FmtText)
	if raw == nil {
		return
	}
	text := capPasteText(normalizePasteText(raw), maxPasteBytes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = c.queue[:0]
	for _, r := range string(text) {
		if code, ok := runeToKeyCode(r); ok {
			c.queue = append(c.queue, code)
		}
	}
}

// NextInjectedKey pops the next synthesized key code, if any.
func (c *ClipboardPaste) NextInjectedKey() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return 0, false
	}
	code := c.queue[0]
	c.queue = c.queue[1:]
	return code, true
}

// normalizePasteText collapses CRLF and lone CR into LF, so a paste
// from any host platform looks the same to the guest.
func normalizePasteText(in []byte) []byte {
	in = bytes.ReplaceAll(in, []byte("\r\n"), []byte("\n"))
	in = bytes.ReplaceAll(in, []byte("\r"), []byte("\n"))
	return in
}

// capPasteText truncates to at most max bytes.
func capPasteText(in []byte, max int) []byte {
	if len(in) <= max {
		return in
	}
	return in[:max]
}

// runeToKeyCode maps a pasted rune onto the guest's 96-code keyboard
// buffer. Only letters, digits, space and newline have a code; every
// other rune is dropped rather than treated as an error, since a paste
// buffer can contain arbitrary Unicode the guest keyboard space was
// never meant to carry.
func runeToKeyCode(r rune) (int, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return keyCodeA + int(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return keyCodeA + int(r-'A'), true
	case r >= '0' && r <= '9':
		return keyCode0 + int(r-'0'), true
	case r == ' ':
		return keyCodeSpace, true
	case r == '\n':
		return keyCodeEnter, true
	default:
		return 0, false
	}
}
