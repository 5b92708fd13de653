//go:build headless

// backend_select_headless.go - backend selection for headless-tagged builds

package main

import "fmt"

func newBackend(cfg Config) (Presenter, HostKeyboard, HostMouse, error) {
	switch cfg.Backend {
	case "headless":
		p := NewHeadlessPresenter()
		return p, HeadlessKeyboard{}, HeadlessMouse{}, nil
	default:
		return nil, nil, nil, fmt.Errorf("backend %q is not available in this build", cfg.Backend)
	}
}
