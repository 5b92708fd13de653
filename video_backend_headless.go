//go:build headless

// video_backend_headless.go - no-op presentation backend for the Jupiter core

/*
video_backend_headless.go - HeadlessPresenter

Discards every frame. Used for tests, CI, and any run where --backend
headless is requested explicitly. Also backs HeadlessKeyboard and
HeadlessMouse, which always report nothing pressed / origin position -
a running guest program sees an always-idle keyboard and mouse, which
is exactly what a display-less environment should look like.
*/

package main

// HeadlessPresenter implements Presenter by doing nothing.
type HeadlessPresenter struct{}

// NewHeadlessPresenter returns a Presenter that discards every frame.
func NewHeadlessPresenter() *HeadlessPresenter { return &HeadlessPresenter{} }

func (HeadlessPresenter) Present(vram []byte, width, height uint32) error { return nil }
func (HeadlessPresenter) Close() error                                   { return nil }

// HeadlessKeyboard implements HostKeyboard with no keys ever pressed.
type HeadlessKeyboard struct{}

func (HeadlessKeyboard) PressedKeys() []int { return nil }

// HeadlessMouse implements HostMouse parked at the origin with no
// buttons held.
type HeadlessMouse struct{}

func (HeadlessMouse) Position() (x, y uint32)    { return 0, 0 }
func (HeadlessMouse) Buttons() (left, right bool) { return false, false }
