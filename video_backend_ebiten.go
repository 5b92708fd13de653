//go:build !headless && !sdl

// video_backend_ebiten.go - Ebiten presentation backend for the Jupiter core

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
video_backend_ebiten.go - EbitenPresenter

EbitenPresenter runs ebiten's game loop on its own goroutine and
blits whatever VRAM snapshot was last handed to Present, scaled to fill
the window. It also implements HostKeyboard and HostMouse: it reads
ebiten's input state each frame under the same mutex that guards the
frame buffer, so
Poll() (called from the bus host between cycles) always sees a
consistent snapshot of "what ebiten's game loop observed most
recently", never a half-updated one.

The guest's 96-key buffer has no room for every key ebiten reports,
so only the subset below is mapped; anything else is silently
dropped, the same tolerance KeyboardController.Apply already affords
host codes outside the 0..95 range.
*/

package main

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var ebitenKeyCodes = map[ebiten.Key]int{
	ebiten.KeySpace:       keyCodeSpace,
	ebiten.KeyEnter:       keyCodeEnter,
	ebiten.KeyBackspace:   keyCodeBackspace,
	ebiten.KeyTab:         keyCodeTab,
	ebiten.KeyEscape:      keyCodeEscape,
	ebiten.KeyArrowUp:     keyCodeArrowUp,
	ebiten.KeyArrowDown:   keyCodeArrowDown,
	ebiten.KeyArrowLeft:   keyCodeArrowLeft,
	ebiten.KeyArrowRight:  keyCodeArrowRight,
	ebiten.KeyShiftLeft:   keyCodeShift,
	ebiten.KeyShiftRight:  keyCodeShift,
	ebiten.KeyControlLeft: keyCodeControl,
	ebiten.KeyControlRight: keyCodeControl,
	ebiten.KeyAltLeft:     keyCodeAlt,
	ebiten.KeyAltRight:    keyCodeAlt,
}

func init() {
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		ebitenKeyCodes[k] = keyCodeA + int(k-ebiten.KeyA)
	}
	for k := ebiten.Key0; k <= ebiten.Key9; k++ {
		ebitenKeyCodes[k] = keyCode0 + int(k-ebiten.Key0)
	}
}

// ebitenGame adapts EbitenPresenter to ebiten.Game.
type ebitenGame struct {
	p *EbitenPresenter
}

func (g *ebitenGame) Update() error {
	g.p.pollInput()
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	g.p.mu.RLock()
	defer g.p.mu.RUnlock()
	if g.p.img != nil {
		screen.DrawImage(g.p.img, nil)
	}
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.p.width), int(g.p.height)
}

// EbitenPresenter renders VRAM through an ebiten window and doubles as
// the HostKeyboard/HostMouse collaborator for EbitenPresenter-backed
// runs, since all three share one underlying input-polling loop.
type EbitenPresenter struct {
	mu sync.RWMutex

	width, height uint32
	img           *ebiten.Image

	pressedKeys []int
	mouseX      uint32
	mouseY      uint32
	mouseLMB    bool
	mouseRMB    bool

	paste *ClipboardPaste

	started bool
	done    chan struct{}
}

// NewEbitenPresenter opens a window of the given guest resolution.
// paste may be nil to disable clipboard-paste injection.
func NewEbitenPresenter(width, height uint32, paste *ClipboardPaste) *EbitenPresenter {
	return &EbitenPresenter{
		width:  width,
		height: height,
		paste:  paste,
		done:   make(chan struct{}),
	}
}

func (p *EbitenPresenter) start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	ebiten.SetWindowSize(int(p.width), int(p.height))
	ebiten.SetWindowTitle("Jupiter")
	ebiten.SetWindowResizable(true)

	go func() {
		defer close(p.done)
		if err := ebiten.RunGame(&ebitenGame{p: p}); err != nil {
			fmt.Printf("jupiter: ebiten presenter stopped: %v\n", err)
		}
	}()
}

// Present converts a 3-byte-per-pixel RGB VRAM snapshot into the image
// ebiten's Draw callback blits on its next frame.
func (p *EbitenPresenter) Present(vram []byte, width, height uint32) error {
	p.start()

	if uint32(len(vram)) != 3*width*height {
		return fmt.Errorf("ebiten presenter: vram length %d does not match %dx%d*3", len(vram), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := uint32(0); i < width*height; i++ {
		r, g, b := vram[3*i], vram[3*i+1], vram[3*i+2]
		img.Set(int(i%width), int(i/width), color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}

	p.mu.Lock()
	p.width, p.height = width, height
	p.img = ebiten.NewImageFromImage(img)
	p.mu.Unlock()
	return nil
}

// Close does nothing and always returns nil. ebiten has no clean
// programmatic shutdown short of the Update callback returning an
// error, so the game loop keeps running until the process exits.
func (p *EbitenPresenter) Close() error { return nil }

func (p *EbitenPresenter) pollInput() {
	keys := ebiten.AppendPressedKeys(nil)
	codes := make([]int, 0, len(keys)+1)
	for _, k := range keys {
		if code, ok := ebitenKeyCodes[k]; ok {
			codes = append(codes, code)
		}
	}
	if p.paste != nil {
		if code, ok := p.paste.NextInjectedKey(); ok {
			codes = append(codes, code)
		}
	}

	x, y := ebiten.CursorPosition()
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	p.mu.Lock()
	p.pressedKeys = codes
	p.mouseX, p.mouseY = uint32(x), uint32(y)
	p.mouseLMB = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.mouseRMB = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	p.mu.Unlock()
}

// PressedKeys implements HostKeyboard.
func (p *EbitenPresenter) PressedKeys() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]int, len(p.pressedKeys))
	copy(out, p.pressedKeys)
	return out
}

// Position implements HostMouse.
func (p *EbitenPresenter) Position() (x, y uint32) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mouseX, p.mouseY
}

// Buttons implements HostMouse.
func (p *EbitenPresenter) Buttons() (left, right bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mouseLMB, p.mouseRMB
}
