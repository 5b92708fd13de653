//go:build sdl

// video_backend_sdl.go - SDL2 presentation backend for the Jupiter core

/*
video_backend_sdl.go - SDLPresenter

Renders VRAM through an SDL2 window, texture and renderer the way
flga-vnes drives its own view: a streaming RGB24 texture updated
wholesale each frame and copied to the whole window by the renderer,
rather than through a manual pixel copy loop. Selected at build time
with `-tags sdl`; the ebiten backend remains the default because it
needs no cgo toolchain.
*/

package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLPresenter renders VRAM via SDL2 and also implements HostKeyboard
// and HostMouse by polling SDL's own input state, so a --backend sdl
// run needs no other input collaborator.
type SDLPresenter struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	width    int32
	height   int32
}

// NewSDLPresenter creates an SDL window sized to the guest's
// resolution and a streaming texture to receive VRAM frames.
func NewSDLPresenter(width, height uint32) (*SDLPresenter, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl presenter: init: %w", err)
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("sdl presenter: create window: %w", err)
	}
	window.SetTitle("Jupiter")

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, fmt.Errorf("sdl presenter: create texture: %w", err)
	}

	return &SDLPresenter{
		window:   window,
		renderer: renderer,
		texture:  texture,
		width:    int32(width),
		height:   int32(height),
	}, nil
}

// Present pumps pending SDL events (so the window stays responsive)
// and uploads the VRAM snapshot into the streaming texture.
func (p *SDLPresenter) Present(vram []byte, width, height uint32) error {
	for sdl.PollEvent() != nil {
		// events are read via Poll*/Buttons; nothing further to do here
	}

	if int32(width) != p.width || int32(height) != p.height {
		return fmt.Errorf("sdl presenter: frame %dx%d does not match texture %dx%d", width, height, p.width, p.height)
	}

	if err := p.texture.Update(nil, vram, int(3*width)); err != nil {
		return fmt.Errorf("sdl presenter: texture update: %w", err)
	}

	p.renderer.Clear()
	p.renderer.Copy(p.texture, nil, nil)
	p.renderer.Present()
	return nil
}

// Close tears down the texture, renderer, window and SDL subsystems.
func (p *SDLPresenter) Close() error {
	p.texture.Destroy()
	p.renderer.Destroy()
	p.window.Destroy()
	sdl.Quit()
	return nil
}

// PressedKeys implements HostKeyboard via SDL's keyboard state array.
func (p *SDLPresenter) PressedKeys() []int {
	state := sdl.GetKeyboardState()
	codes := make([]int, 0, 8)

	appendIfDown := func(scancode sdl.Scancode, code int) {
		if state[scancode] != 0 {
			codes = append(codes, code)
		}
	}

	for k := sdl.SCANCODE_A; k <= sdl.SCANCODE_Z; k++ {
		appendIfDown(k, keyCodeA+int(k-sdl.SCANCODE_A))
	}
	for k := sdl.SCANCODE_1; k <= sdl.SCANCODE_9; k++ {
		appendIfDown(k, keyCode0+1+int(k-sdl.SCANCODE_1))
	}
	appendIfDown(sdl.SCANCODE_0, keyCode0)
	appendIfDown(sdl.SCANCODE_SPACE, keyCodeSpace)
	appendIfDown(sdl.SCANCODE_RETURN, keyCodeEnter)
	appendIfDown(sdl.SCANCODE_BACKSPACE, keyCodeBackspace)
	appendIfDown(sdl.SCANCODE_TAB, keyCodeTab)
	appendIfDown(sdl.SCANCODE_ESCAPE, keyCodeEscape)
	appendIfDown(sdl.SCANCODE_UP, keyCodeArrowUp)
	appendIfDown(sdl.SCANCODE_DOWN, keyCodeArrowDown)
	appendIfDown(sdl.SCANCODE_LEFT, keyCodeArrowLeft)
	appendIfDown(sdl.SCANCODE_RIGHT, keyCodeArrowRight)
	appendIfDown(sdl.SCANCODE_LSHIFT, keyCodeShift)
	appendIfDown(sdl.SCANCODE_RSHIFT, keyCodeShift)
	appendIfDown(sdl.SCANCODE_LCTRL, keyCodeControl)
	appendIfDown(sdl.SCANCODE_RCTRL, keyCodeControl)
	appendIfDown(sdl.SCANCODE_LALT, keyCodeAlt)
	appendIfDown(sdl.SCANCODE_RALT, keyCodeAlt)

	return codes
}

// Position implements HostMouse via SDL's global mouse state.
func (p *SDLPresenter) Position() (x, y uint32) {
	ix, iy, _ := sdl.GetMouseState()
	return uint32(ix), uint32(iy)
}

// Buttons implements HostMouse.
func (p *SDLPresenter) Buttons() (left, right bool) {
	_, _, state := sdl.GetMouseState()
	return state&sdl.ButtonLMask() != 0, state&sdl.ButtonRMask() != 0
}
