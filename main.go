// main.go - host shell for the Jupiter core

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
main.go - CLI entry point

Parses flags with cobra/pflag, builds a Config, loads ROM/program/disk
images, wires the chosen presentation backend as both Presenter and
host input collaborator, and runs the machine until the process is
interrupted or a fatal fault aborts it. On fault, dumps a full
CPU/memory snapshot and, if --debug was given, drops into the Lua
monitor console (debug.go) before exiting non-zero.
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	cfg := Config{
		Backend:       "ebiten",
		CyclesPerTick: 1000,
	}
	var debug bool
	var rom, program string

	root := &cobra.Command{
		Use:   "jupiter",
		Short: "Jupiter: a phased, bus-coupled 32-bit home computer core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ROMPath = normalizeFilePath(rom)
			cfg.ProgramPath = normalizeFilePath(program)
			return runMachine(cfg, debug)
		},
	}

	flags := root.Flags()
	flags.StringVar(&rom, "rom", "none", `ROM image path, or "none"`)
	flags.StringVar(&program, "program", "none", `program image path, or "none"`)
	flags.StringVar(&cfg.DiskPath, "disk", "disk.img", "disk image path")
	flags.StringVar(&diskSizeFlag, "disk-size", "1m", "disk image size (bytes, or k/m/g/t suffixed)")
	flags.StringVar(&memorySizeFlag, "memory-size", "16m", "total memory size (bytes, or k/m/g/t suffixed)")
	flags.Uint32Var(&cfg.Width, "width", 320, "display width in pixels")
	flags.Uint32Var(&cfg.Height, "height", 240, "display height in pixels")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "presentation backend: ebiten, sdl, headless")
	flags.IntVar(&cfg.CyclesPerTick, "cycles-per-tick", cfg.CyclesPerTick, "cycles executed between host polls")
	flags.BoolVar(&debug, "debug", false, "drop into the Lua monitor console on a fatal fault")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jupiter:", err)
		os.Exit(1)
	}
}

// diskSizeFlag and memorySizeFlag hold the raw, possibly-suffixed
// strings until parseSize can run inside runMachine; pflag has no
// built-in byte-size type to bind Config's uint64/uint32 fields to
// directly.
var diskSizeFlag, memorySizeFlag string

func runMachine(cfg Config, debug bool) error {
	diskSize, err := parseSize(diskSizeFlag)
	if err != nil {
		return err
	}
	cfg.DiskSize = diskSize

	memorySize, err := parseSize(memorySizeFlag)
	if err != nil {
		return err
	}
	if memorySize >= 1<<32 {
		return fmt.Errorf("jupiter: memory size %d does not fit in 32-bit addressing", memorySize)
	}
	cfg.MemorySize = uint32(memorySize)

	if err := cfg.Validate(); err != nil {
		return err
	}

	romBytes, err := LoadROMFile(cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("jupiter: loading rom: %w", err)
	}
	programBytes, err := LoadProgramFile(cfg.ProgramPath)
	if err != nil {
		return fmt.Errorf("jupiter: loading program: %w", err)
	}

	mem, err := NewMemory(romBytes, programBytes, cfg.MemorySize, cfg.VRAMSize())
	if err != nil {
		return fmt.Errorf("jupiter: %w", err)
	}

	disk, err := OpenDiskFile(cfg.DiskPath, cfg.DiskSize)
	if err != nil {
		return fmt.Errorf("jupiter: %w", err)
	}
	defer disk.Close()

	presenter, keyboard, mouse, err := newBackend(cfg)
	if err != nil {
		return fmt.Errorf("jupiter: %w", err)
	}
	defer presenter.Close()

	computer := NewComputer(mem, NewCPU(), NewDiskController(disk), NewKeyboardController(keyboard), NewMouseController(mouse))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := computer.Run(ctx, cfg.CyclesPerTick, func() {
		_ = presenter.Present(computer.VRAM(), cfg.Width, cfg.Height)
	})
	if runErr == nil {
		return nil
	}

	fmt.Fprintln(os.Stderr, "jupiter: fatal fault:", runErr)
	computer.Dump(os.Stderr)

	if debug {
		RunMonitor(computer, os.Stdin, os.Stdout)
	}
	return runErr
}
