//go:build !headless && !sdl

// backend_select_default.go - backend selection for ebiten builds

package main

import "fmt"

// newBackend selects the presentation backend and its accompanying
// keyboard/mouse collaborators per cfg.Backend. This build includes
// the ebiten backend; sdl and headless require their matching build
// tag (-tags sdl, -tags headless).
func newBackend(cfg Config) (Presenter, HostKeyboard, HostMouse, error) {
	switch cfg.Backend {
	case "ebiten":
		p := NewEbitenPresenter(cfg.Width, cfg.Height, NewClipboardPaste())
		return p, p, p, nil
	default:
		return nil, nil, nil, fmt.Errorf("backend %q is not available in this build (try -tags %s)", cfg.Backend, cfg.Backend)
	}
}
