//go:build sdl

// backend_select_sdl.go - backend selection for sdl-tagged builds

package main

import "fmt"

func newBackend(cfg Config) (Presenter, HostKeyboard, HostMouse, error) {
	switch cfg.Backend {
	case "sdl":
		p, err := NewSDLPresenter(cfg.Width, cfg.Height)
		if err != nil {
			return nil, nil, nil, err
		}
		return p, p, p, nil
	default:
		return nil, nil, nil, fmt.Errorf("backend %q is not available in this build", cfg.Backend)
	}
}
