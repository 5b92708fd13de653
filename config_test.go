package main

import "testing"

func TestParseSizePlainDecimal(t *testing.T) {
	got, err := parseSize("4096")
	if err != nil {
		t.Fatalf("parseSize: %v", err)
	}
	if got != 4096 {
		t.Fatalf("parseSize(\"4096\") = %d, want 4096", got)
	}
}

func TestParseSizeSuffixes(t *testing.T) {
	cases := map[string]uint64{
		"1k": 1024,
		"2K": 2 * 1024,
		"1m": 1024 * 1024,
		"1M": 1024 * 1024,
		"1g": 1024 * 1024 * 1024,
		"1t": 1024 * 1024 * 1024 * 1024,
	}
	for input, want := range cases {
		got, err := parseSize(input)
		if err != nil {
			t.Fatalf("parseSize(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("parseSize(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	if _, err := parseSize("not-a-size"); err == nil {
		t.Fatal("expected an error for a non-numeric size")
	}
}

func TestNormalizeFilePathTreatsNoneCaseInsensitively(t *testing.T) {
	for _, in := range []string{"none", "None", "NONE", "nOnE"} {
		if got := normalizeFilePath(in); got != "" {
			t.Fatalf("normalizeFilePath(%q) = %q, want empty string", in, got)
		}
	}
	if got := normalizeFilePath("rom.bin"); got != "rom.bin" {
		t.Fatalf("normalizeFilePath(\"rom.bin\") = %q, want unchanged", got)
	}
}

func TestConfigValidateRejectsOddDiskSize(t *testing.T) {
	cfg := Config{DiskSize: 15, Width: 1, Height: 1, CyclesPerTick: 1, Backend: "headless"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for a disk size not divisible by 4")
	}
}

func TestConfigValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{DiskSize: 4, Width: 1, Height: 1, CyclesPerTick: 1, Backend: "amiga"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestConfigVRAMSize(t *testing.T) {
	cfg := Config{Width: 320, Height: 240}
	if got, want := cfg.VRAMSize(), uint32(3*320*240); got != want {
		t.Fatalf("VRAMSize() = %d, want %d", got, want)
	}
}
