package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bootstrap6502/punch6502/asm"
)

func assembleBytes(t *testing.T, src string) *asm.Assembly {
	t.Helper()
	a, sm, err := asm.Assemble(strings.NewReader(src), "test.asm", false)
	if err != nil {
		t.Fatalf("Assemble(%q): %v (errors: %v)", src, err, a.Errors)
	}
	_ = sm
	return a
}

func TestEmptyProgram(t *testing.T) {
	a := assembleBytes(t, "END")
	if len(a.Code) != 0 {
		t.Errorf("Code = % x, want empty", a.Code)
	}
}

func TestImmediateLoadStoreHalt(t *testing.T) {
	a := assembleBytes(t, "@0200\nLDA# 2A\nSTAZ 80\nBRK\nEND")
	want := []byte{0xa9, 0x2a, 0x85, 0x80, 0x00}
	if a.Origin != 0x0200 {
		t.Errorf("Origin = %#04x, want 0x0200", a.Origin)
	}
	if !bytes.Equal(a.Code, want) {
		t.Errorf("Code = % x, want % x", a.Code, want)
	}
}

func TestCounterWithBackwardBranch(t *testing.T) {
	src := "@0200\n" +
		"LDA# 00\n" +
		"STAZ 80\n" +
		"L:\n" +
		"INCZ 80\n" +
		"LDAZ 80\n" +
		"CMP# 0A\n" +
		"BNE :L\n" +
		"BRK\n" +
		"END"
	a := assembleBytes(t, src)
	want := []byte{0xa9, 0x00, 0x85, 0x80, 0xe6, 0x80, 0xa5, 0x80, 0xc9, 0x0a, 0xd0, 0xf8, 0x00}
	if !bytes.Equal(a.Code, want) {
		t.Errorf("Code = % x, want % x", a.Code, want)
	}
}

func TestRelocation(t *testing.T) {
	src := "!1E00\n@0200\nLDA# 42\nBRK\nEND"
	a := assembleBytes(t, src)
	want := []byte{0xa9, 0x42, 0x00}
	if a.Origin != 0x2000 {
		t.Errorf("Origin = %#04x, want 0x2000", a.Origin)
	}
	if !bytes.Equal(a.Code, want) {
		t.Errorf("Code = % x, want % x", a.Code, want)
	}
}

func TestStringAndHexData(t *testing.T) {
	src := "@0400\n\"HI\"\n#FF\nEND"
	a := assembleBytes(t, src)
	want := []byte{0x48, 0x49, 0xff}
	if a.Origin != 0x0400 {
		t.Errorf("Origin = %#04x, want 0x0400", a.Origin)
	}
	if !bytes.Equal(a.Code, want) {
		t.Errorf("Code = % x, want % x", a.Code, want)
	}
}

func TestEmptyStringLiteral(t *testing.T) {
	a := assembleBytes(t, "@0400\n\"\"\n#AA\nEND")
	want := []byte{0xaa}
	if !bytes.Equal(a.Code, want) {
		t.Errorf("Code = % x, want % x", a.Code, want)
	}
}

func TestBranchOutOfRangeFails(t *testing.T) {
	var pad strings.Builder
	pad.WriteString("@0200\nL:\n")
	for i := 0; i < 70; i++ {
		pad.WriteString("LDA# 00\n")
	}
	pad.WriteString("BNE :L\nBRK\nEND")
	_, _, err := asm.Assemble(strings.NewReader(pad.String()), "range.asm", false)
	if err == nil {
		t.Fatal("expected branch-out-of-range error, got nil")
	}
}

func TestDuplicateLabelFails(t *testing.T) {
	src := "@0200\nL:\nLDA# 00\nL:\nBRK\nEND"
	_, _, err := asm.Assemble(strings.NewReader(src), "dup.asm", false)
	if err == nil {
		t.Fatal("expected duplicate-label error, got nil")
	}
}

func TestUnknownLabelFails(t *testing.T) {
	src := "@0200\nJMP :NOWHERE\nBRK\nEND"
	_, _, err := asm.Assemble(strings.NewReader(src), "unknown.asm", false)
	if err == nil {
		t.Fatal("expected unknown-label error, got nil")
	}
}

func TestExportsCarryLabelAddresses(t *testing.T) {
	src := "@0200\nSTART:\nLDA# 00\nEND"
	_, sm, err := asm.Assemble(strings.NewReader(src), "exports.asm", false)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(sm.Exports) != 1 || sm.Exports[0].Label != "START" || sm.Exports[0].Addr != 0x0200 {
		t.Errorf("Exports = %+v, want [{START 0x0200}]", sm.Exports)
	}
}

func TestAssemblyRoundTripsThroughWriteAndRead(t *testing.T) {
	a := assembleBytes(t, "@0200\nLDA# 2A\nBRK\nEND")
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	var b asm.Assembly
	if _, err := b.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if b.Origin != a.Origin || !bytes.Equal(b.Code, a.Code) {
		t.Errorf("round trip = {%#04x % x}, want {%#04x % x}", b.Origin, b.Code, a.Origin, a.Code)
	}
}
