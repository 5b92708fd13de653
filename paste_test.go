package main

import "testing"

func TestNormalizePasteTextCollapsesLineEndings(t *testing.T) {
	in := []byte("a\r\nb\rc\n")
	got := string(normalizePasteText(in))
	want := "a\nb\nc\n"
	if got != want {
		t.Fatalf("normalizePasteText(%q) = %q, want %q", in, got, want)
	}
}

func TestCapPasteTextTruncates(t *testing.T) {
	in := make([]byte, 5000)
	got := capPasteText(in, maxPasteBytes)
	if len(got) != maxPasteBytes {
		t.Fatalf("capPasteText length = %d, want %d", len(got), maxPasteBytes)
	}
}

func TestCapPasteTextLeavesShortInputAlone(t *testing.T) {
	in := []byte("hello")
	got := capPasteText(in, maxPasteBytes)
	if string(got) != "hello" {
		t.Fatalf("capPasteText(%q) = %q, want unchanged", in, got)
	}
}

func TestRuneToKeyCodeMapsLettersDigitsAndWhitespace(t *testing.T) {
	if code, ok := runeToKeyCode('a'); !ok || code != keyCodeA {
		t.Fatalf("runeToKeyCode('a') = %d, %v; want %d, true", code, ok, keyCodeA)
	}
	if code, ok := runeToKeyCode('Z'); !ok || code != keyCodeA+25 {
		t.Fatalf("runeToKeyCode('Z') = %d, %v; want %d, true", code, ok, keyCodeA+25)
	}
	if code, ok := runeToKeyCode('7'); !ok || code != keyCode0+7 {
		t.Fatalf("runeToKeyCode('7') = %d, %v; want %d, true", code, ok, keyCode0+7)
	}
	if code, ok := runeToKeyCode('\n'); !ok || code != keyCodeEnter {
		t.Fatalf("runeToKeyCode('\\n') = %d, %v; want %d, true", code, ok, keyCodeEnter)
	}
	if _, ok := runeToKeyCode('€'); ok {
		t.Fatal("expected an unmapped rune to be dropped")
	}
}

func TestClipboardPasteQueueDispensesInOrder(t *testing.T) {
	c := &ClipboardPaste{queue: []int{keyCodeA, keyCode0}}
	first, ok := c.NextInjectedKey()
	if !ok || first != keyCodeA {
		t.Fatalf("first dequeue = %d, %v; want %d, true", first, ok, keyCodeA)
	}
	second, ok := c.NextInjectedKey()
	if !ok || second != keyCode0 {
		t.Fatalf("second dequeue = %d, %v; want %d, true", second, ok, keyCode0)
	}
	if _, ok := c.NextInjectedKey(); ok {
		t.Fatal("expected queue to be empty after two dequeues")
	}
}
