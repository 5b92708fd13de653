// config.go - machine configuration for the Jupiter core

/*
config.go - Config

Mirrors the original computer_config crate's parameter set and size
parsing (plain integers or k/m/g/t-suffixed byte counts), extended with
the backend selection and cycles-per-tick knobs the host shell needs.
ROM and program paths of "" (or the case-insensitive literal "none" at
the CLI layer, handled in main.go) mean "no file supplied".
*/

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is the full parameter set needed to build a Computer.
type Config struct {
	ROMPath     string
	ProgramPath string
	DiskPath    string
	DiskSize    uint64
	MemorySize  uint32
	Width       uint32
	Height      uint32
	Backend     string // "ebiten", "sdl", or "headless"

	// CyclesPerTick is how many Cycle()s Computer.Run executes between
	// each host poll/present callback.
	CyclesPerTick int
}

// VRAMSize is 3 bytes per pixel, row-major, no padding.
func (c Config) VRAMSize() uint32 { return 3 * c.Width * c.Height }

// Validate checks the fatal-configuration-error cases: disk size
// divisible by 4, a sane resolution, and a known backend name.
func (c Config) Validate() error {
	if c.DiskSize%4 != 0 {
		return fmt.Errorf("config: disk size %d is not divisible by 4", c.DiskSize)
	}
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("config: resolution %dx%d is invalid", c.Width, c.Height)
	}
	if c.CyclesPerTick <= 0 {
		return fmt.Errorf("config: cycles-per-tick %d must be positive", c.CyclesPerTick)
	}
	switch c.Backend {
	case "ebiten", "sdl", "headless":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}

// parseSize accepts a plain decimal byte count or one suffixed with
// k/K, m/M, g/G or t/T (binary multiples), matching the original
// configuration crate's parser.
func parseSize(input string) (uint64, error) {
	if value, err := strconv.ParseUint(input, 10, 64); err == nil {
		return value, nil
	}

	if len(input) < 2 {
		return 0, fmt.Errorf("config: %q is not a valid size", input)
	}

	suffix := input[len(input)-1:]
	value, err := strconv.ParseUint(input[:len(input)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %q is not a valid size: %w", input, err)
	}

	var multiplier uint64
	switch strings.ToLower(suffix) {
	case "k":
		multiplier = 1 << 10
	case "m":
		multiplier = 1 << 20
	case "g":
		multiplier = 1 << 30
	case "t":
		multiplier = 1 << 40
	default:
		return 0, fmt.Errorf("config: %q has an unrecognized size suffix %q", input, suffix)
	}

	return value * multiplier, nil
}

// normalizeFilePath implements the CLI convention that the
// case-insensitive literal "none" means "no file supplied".
func normalizeFilePath(path string) string {
	if strings.EqualFold(path, "none") {
		return ""
	}
	return path
}
