package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunMonitorExposesRegisterAndMemoryReads(t *testing.T) {
	mem, err := NewMemory(nil, nil, 256, 0)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	cpu := NewCPU()
	cpu.WriteReg(4, 42)
	mem.WriteWord(mem.ram.start, 0xCAFEBABE)

	computer := NewComputer(mem, cpu, nil, nil, nil)

	in := strings.NewReader("print(reg(4))\nprint(memword(" + itoa(mem.ram.start) + "))\nquit\n")
	var out bytes.Buffer

	RunMonitor(computer, in, &out)

	got := out.String()
	if !strings.Contains(got, "42") {
		t.Fatalf("monitor output %q does not contain register value 42", got)
	}
}

// itoa avoids importing strconv just for a test helper that formats a
// single uint32 as a base-10 literal embeddable in a Lua script.
func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
