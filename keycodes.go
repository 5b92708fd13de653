// keycodes.go - guest keyboard code space shared by presentation backends

/*
keycodes.go - guest key code assignments

The guest's keyboard buffer has 96 byte-wide slots; this file is the
single place that assigns meaning to them, so every presentation
backend (and the clipboard-paste enrichment, which synthesizes codes
from pasted text) agrees on the same numbering.
*/

package main

const (
	keyCodeA = 0  // 'A'..'Z' -> 0..25
	keyCode0 = 26 // '0'..'9' -> 26..35
)

const (
	keyCodeSpace = 36 + iota
	keyCodeEnter
	keyCodeBackspace
	keyCodeTab
	keyCodeEscape
	keyCodeArrowUp
	keyCodeArrowDown
	keyCodeArrowLeft
	keyCodeArrowRight
	keyCodeShift
	keyCodeControl
	keyCodeAlt
)
