package selfhost

import (
	"strings"

	"github.com/bootstrap6502/punch6502/asm"
	"github.com/bootstrap6502/punch6502/catalog"
	"github.com/bootstrap6502/punch6502/cpu"
)

// Memory regions the loader places the assembler's working pieces in, per
// the conventions suggested in the system overview.
const (
	CatalogBase = 0x1000 // opcode catalogue table
	ProgramBase = 0x0200 // the self-hosting assembler's own machine code
	SourceBase  = 0x2000 // resolved-form input text it assembles
	reloc       = 0x7e00 // relocation delta used by the self-test below
)

// Image reference-assembles the self-hosting assembler's own source,
// producing the machine code the emulator executes at ProgramBase.
func Image() (*asm.Assembly, error) {
	a, _, err := asm.Assemble(strings.NewReader(source), "selfhost", false)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// RelocatedSource prefixes the assembler's own source with a relocation
// directive so that, when fed back to the running assembler as input, it
// reproduces its own machine code starting at ProgramBase+reloc instead of
// overwriting the code that is currently executing it.
func RelocatedSource() string {
	return "!" + hexWord(reloc) + "\n" + source
}

// Resolved returns the resolved form of RelocatedSource, the text the
// self-hosting assembler reads character by character from SourceBase
// when assembling itself.
func Resolved() (string, error) {
	resolved, _, err := asm.Resolve(strings.NewReader(RelocatedSource()), "selfhost")
	return resolved, err
}

// LoadProgram places the opcode catalogue, the assembler's own machine
// code, and the given resolved-form text into a CPU's memory, and returns
// the address execution should start at. The resolved text may be the
// assembler's own (relocated) source, for the bootstrap equivalence test,
// or an arbitrary resolved program, for testing the assembler on other
// input.
func LoadProgram(c *cpu.CPU, resolved string) (start uint16, err error) {
	c.Mem.StoreBytes(CatalogBase, catalog.Bytes())
	c.Mem.StoreByte(0x13, byte(len(catalog.Table)))

	image, err := Image()
	if err != nil {
		return 0, err
	}
	c.Mem.StoreBytes(ProgramBase, image.Code)
	c.Mem.StoreBytes(SourceBase, []byte(resolved))

	return ProgramBase, nil
}

// Load is LoadProgram specialized to the bootstrap case: the assembler
// assembling its own relocated source.
func Load(c *cpu.CPU) (start uint16, err error) {
	resolved, err := Resolved()
	if err != nil {
		return 0, err
	}
	return LoadProgram(c, resolved)
}

func hexWord(v uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[(v>>12)&0xf],
		digits[(v>>8)&0xf],
		digits[(v>>4)&0xf],
		digits[v&0xf],
	})
}
