package catalog_test

import (
	"testing"

	"github.com/bootstrap6502/punch6502/catalog"
)

func TestLookupKnownMnemonics(t *testing.T) {
	cases := []struct {
		mnemonic string
		opcode   byte
		shape    catalog.Shape
	}{
		{"LDA#", 0xa9, catalog.ShapeByte},
		{"STAZ", 0x85, catalog.ShapeByte},
		{"BRK ", 0x00, catalog.ShapeNone},
		{"JMP ", 0x4c, catalog.ShapeWord},
		{"BNE ", 0xd0, catalog.ShapeBranch},
		{"END ", 0xff, catalog.ShapeNone},
		{"PHA ", 0x48, catalog.ShapeNone},
		{"PLA ", 0x68, catalog.ShapeNone},
		{"LDX ", 0xae, catalog.ShapeWord},
		{"LDY ", 0xac, catalog.ShapeWord},
		{"STX ", 0x8e, catalog.ShapeWord},
		{"STY ", 0x8c, catalog.ShapeWord},
		{"STIY", 0x91, catalog.ShapeByte},
		{"LDYA", 0xb9, catalog.ShapeWord},
		{"STAY", 0x99, catalog.ShapeWord},
	}
	for _, c := range cases {
		e, ok := catalog.Lookup(c.mnemonic)
		if !ok {
			t.Fatalf("Lookup(%q): not found", c.mnemonic)
		}
		if e.Opcode != c.opcode {
			t.Errorf("Lookup(%q).Opcode = %#02x, want %#02x", c.mnemonic, e.Opcode, c.opcode)
		}
		if e.Shape != c.shape {
			t.Errorf("Lookup(%q).Shape = %d, want %d", c.mnemonic, e.Shape, c.shape)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := catalog.Lookup("ZZZZ"); ok {
		t.Fatal("Lookup(\"ZZZZ\"): expected not found")
	}
}

func TestPad(t *testing.T) {
	if got := catalog.Pad("RTS"); got != "RTS " {
		t.Errorf("Pad(%q) = %q, want %q", "RTS", got, "RTS ")
	}
	if got := catalog.Pad("LDA#"); got != "LDA#" {
		t.Errorf("Pad(%q) = %q, want %q", "LDA#", got, "LDA#")
	}
}

func TestBytesLayout(t *testing.T) {
	b := catalog.Bytes()
	if len(b) != len(catalog.Table)*catalog.EntrySize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), len(catalog.Table)*catalog.EntrySize)
	}
	first := catalog.Table[0]
	if string(b[0:4]) != first.Mnemonic || b[4] != first.Opcode || catalog.Shape(b[5]) != first.Shape {
		t.Errorf("first laid-out entry does not match Table[0]")
	}
}

func TestEndSentinelIsLast(t *testing.T) {
	last := catalog.Table[len(catalog.Table)-1]
	if last.Mnemonic != catalog.End {
		t.Fatalf("last table entry is %q, want %q", last.Mnemonic, catalog.End)
	}
	if last.Opcode != 0xff {
		t.Errorf("END opcode = %#02x, want 0xff", last.Opcode)
	}
}
