package selfhost_test

import (
	"strings"
	"testing"

	"github.com/bootstrap6502/punch6502/asm"
	"github.com/bootstrap6502/punch6502/catalog"
	"github.com/bootstrap6502/punch6502/cpu"
	"github.com/bootstrap6502/punch6502/selfhost"
)

func TestImageAssemblesWithoutError(t *testing.T) {
	a, err := selfhost.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if a.Origin != selfhost.ProgramBase {
		t.Errorf("Origin = %#04x, want %#04x", a.Origin, selfhost.ProgramBase)
	}
	if len(a.Code) == 0 {
		t.Fatal("Image produced no code")
	}
}

func TestSourceEndsWithEndSentinel(t *testing.T) {
	src := strings.TrimSpace(selfhost.Source())
	if !strings.HasSuffix(src, "END") {
		t.Errorf("Source does not end with an END sentinel: ...%q", src[len(src)-20:])
	}
}

func TestRelocatedSourcePrefixesRelocationDirective(t *testing.T) {
	rs := selfhost.RelocatedSource()
	if !strings.HasPrefix(rs, "!7E00\n") {
		t.Errorf("RelocatedSource does not start with the expected relocation directive: %q", rs[:10])
	}
}

func TestResolvedIsParsableByTheReferenceAssembler(t *testing.T) {
	resolved, err := selfhost.Resolved()
	if err != nil {
		t.Fatalf("Resolved: %v", err)
	}
	if _, err := asm.AssembleResolved(strings.NewReader(resolved)); err != nil {
		t.Fatalf("AssembleResolved(Resolved()): %v", err)
	}
}

func TestUnrecognizedMnemonicHaltsViaBRK(t *testing.T) {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.NMOS, mem)

	start, err := selfhost.LoadProgram(c, "ZZZZ")
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.ResetTo(start)

	result, _ := cpu.Run(c, cpu.RunOptions{MaxCycles: 1_000_000, BreakOnBRK: true})
	if result != cpu.Halted {
		t.Fatalf("RunResult = %v, want %v", result, cpu.Halted)
	}
}

func TestLoadProgramPlacesCatalogueAndCode(t *testing.T) {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.NMOS, mem)

	resolved, err := selfhost.Resolved()
	if err != nil {
		t.Fatalf("Resolved: %v", err)
	}
	start, err := selfhost.LoadProgram(c, resolved)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	if start != selfhost.ProgramBase {
		t.Errorf("start = %#04x, want %#04x", start, selfhost.ProgramBase)
	}

	count := mem.LoadByte(0x13)
	if count != byte(len(catalog.Table)) {
		t.Errorf("entry count at $13 = %d, want %d", count, len(catalog.Table))
	}

	firstMnemonic := make([]byte, 4)
	mem.LoadBytes(selfhost.CatalogBase, firstMnemonic)
	if string(firstMnemonic) != catalog.Table[0].Mnemonic {
		t.Errorf("catalogue at 0x1000 = %q, want %q", firstMnemonic, catalog.Table[0].Mnemonic)
	}
}
