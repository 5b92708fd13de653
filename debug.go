// debug.go - post-fault Lua monitor console for the Jupiter core

/*
debug.go - RunMonitor

A deliberately small console: rather than a live stepping debugger
with breakpoints and backstep, this is a read-only inspector
that activates once a fatal fault has already aborted the run. It
exposes the frozen CPU and memory state to small Lua expressions typed
at a prompt, via gopher-lua, so a user can poke at register and memory
values without recompiling a Go program against this package.

Never reached on the hot path: RunMonitor is called exactly once, after
Computer.Run has already returned a non-nil error.
*/

package main

import (
	"bufio"
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"
)

// RunMonitor starts a read-eval-print loop over in, writing prompts
// and results to out, until in is closed (EOF) or the user types
// "quit".
func RunMonitor(computer *Computer, in io.Reader, out io.Writer) {
	L := lua.NewState()
	defer L.Close()
	registerMonitorGlobals(L, computer)

	// Route Lua's print to out instead of the process's stdout.
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		for i := 1; i <= L.GetTop(); i++ {
			if i > 1 {
				fmt.Fprint(out, "\t")
			}
			fmt.Fprint(out, L.Get(i).String())
		}
		fmt.Fprintln(out)
		return 0
	}))

	fmt.Fprintln(out, "jupiter: entering post-fault monitor (Lua). Type 'quit' to exit.")
	registerDumpGlobal(L, computer, out)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "quit" || line == "exit" {
			return
		}
		if line == "" {
			continue
		}

		if err := L.DoString(line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// registerDumpGlobal exposes dump(), separately from the other
// globals, since it needs the console's own output writer rather than
// returning a Lua value.
func registerDumpGlobal(L *lua.LState, computer *Computer, out io.Writer) {
	L.SetGlobal("dump", L.NewFunction(func(L *lua.LState) int {
		computer.Dump(out)
		return 0
	}))
}

// registerMonitorGlobals exposes the frozen machine state as Lua
// functions: pc(), reg(n), hi(), lo(), membyte(addr), memhalf(addr),
// memword(addr).
func registerMonitorGlobals(L *lua.LState, computer *Computer) {
	cpu := computer.CPU()
	mem := computer.Memory()

	L.SetGlobal("pc", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(cpu.PC()))
		return 1
	}))
	L.SetGlobal("reg", L.NewFunction(func(L *lua.LState) int {
		n := uint8(L.CheckInt(1))
		L.Push(lua.LNumber(cpu.Reg(n)))
		return 1
	}))
	L.SetGlobal("hi", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(cpu.HI()))
		return 1
	}))
	L.SetGlobal("lo", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(cpu.LO()))
		return 1
	}))
	L.SetGlobal("membyte", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt(1))
		L.Push(lua.LNumber(mem.ReadByte(addr)))
		return 1
	}))
	L.SetGlobal("memhalf", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt(1))
		L.Push(lua.LNumber(mem.ReadHalf(addr)))
		return 1
	}))
	L.SetGlobal("memword", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt(1))
		L.Push(lua.LNumber(mem.ReadWord(addr)))
		return 1
	}))
}
