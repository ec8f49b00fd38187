// Package catalog defines the opcode catalogue for the restricted 4-character
// mnemonic dialect used throughout the bootstrap toolchain. Every mnemonic
// known to the reference assembler and every entry laid out in emulator
// memory for the self-hosting assembler are derived from this one table, so
// the two paths cannot structurally diverge.
package catalog

import "github.com/bootstrap6502/punch6502/cpu"

// Shape identifies the operand-encoding category of a mnemonic.
type Shape byte

const (
	ShapeNone     Shape = 0 // no operand
	ShapeByte     Shape = 1 // one operand byte
	ShapeWord     Shape = 2 // two operand bytes, little-endian
	ShapeBranch   Shape = 3 // one signed operand byte, PC-relative
	entrySize           = 6 // 4 mnemonic bytes + opcode + shape
	mnemonicWidth       = 4
)

// End is the sentinel mnemonic that marks end-of-input to the self-hosting
// assembler.
const End = "END "

// endOpcode is the sentinel opcode value paired with End. It is never
// dispatched by the emulator; the self-hosting assembler recognizes it
// during the catalogue scan, before the instruction would ever execute.
const endOpcode = 0xff

// An Entry is a single opcode-catalogue record: a 4-character mnemonic, the
// 6502 opcode byte it assembles to, and the shape of its operand.
type Entry struct {
	Mnemonic string
	Opcode   byte
	Shape    Shape
}

// binding names the instruction variant a dialect mnemonic stands for, by
// pairing an instruction mnemonic suffix with the cpu addressing mode that
// selects the correct opcode from the NMOS instruction set.
type binding struct {
	mnemonic string
	name     string
	mode     cpu.Mode
}

// bindings lists every mnemonic required by the dialect: the documented
// subset named in the specification (loads/stores, stack, transfers,
// arithmetic, logic, compares, increments/decrements, jumps, branches,
// flags, BRK, NOP), plus the indexed zero-page, absolute-indexed, and
// indirect-indexed-by-Y variants needed to write the self-hosting
// assembler itself.
var bindings = []binding{
	{"LDA#", "LDA", cpu.IMM},
	{"LDAZ", "LDA", cpu.ZPG},
	{"LDAX", "LDA", cpu.ZPX},
	{"LDAY", "LDA", cpu.IDY},
	{"LDYA", "LDA", cpu.ABY},
	{"LDA ", "LDA", cpu.ABS},
	{"STAZ", "STA", cpu.ZPG},
	{"STAX", "STA", cpu.ZPX},
	{"STIY", "STA", cpu.IDY},
	{"STAY", "STA", cpu.ABY},
	{"STA ", "STA", cpu.ABS},
	{"LDX#", "LDX", cpu.IMM},
	{"LDXZ", "LDX", cpu.ZPG},
	{"LDX ", "LDX", cpu.ABS},
	{"STXZ", "STX", cpu.ZPG},
	{"STX ", "STX", cpu.ABS},
	{"LDY#", "LDY", cpu.IMM},
	{"LDYZ", "LDY", cpu.ZPG},
	{"LDY ", "LDY", cpu.ABS},
	{"STYZ", "STY", cpu.ZPG},
	{"STY ", "STY", cpu.ABS},
	{"ADC#", "ADC", cpu.IMM},
	{"ADCZ", "ADC", cpu.ZPG},
	{"SBC#", "SBC", cpu.IMM},
	{"SBCZ", "SBC", cpu.ZPG},
	{"ORA#", "ORA", cpu.IMM},
	{"AND#", "AND", cpu.IMM},
	{"CMP#", "CMP", cpu.IMM},
	{"CMPZ", "CMP", cpu.ZPG},
	{"CPX#", "CPX", cpu.IMM},
	{"CPY#", "CPY", cpu.IMM},
	{"INCZ", "INC", cpu.ZPG},
	{"DECZ", "DEC", cpu.ZPG},
	{"INX ", "INX", cpu.IMP},
	{"INY ", "INY", cpu.IMP},
	{"DEX ", "DEX", cpu.IMP},
	{"DEY ", "DEY", cpu.IMP},
	{"TAX ", "TAX", cpu.IMP},
	{"TAY ", "TAY", cpu.IMP},
	{"TXA ", "TXA", cpu.IMP},
	{"TYA ", "TYA", cpu.IMP},
	{"PHA ", "PHA", cpu.IMP},
	{"PLA ", "PLA", cpu.IMP},
	{"JMP ", "JMP", cpu.ABS},
	{"JSR ", "JSR", cpu.ABS},
	{"RTS ", "RTS", cpu.IMP},
	{"BEQ ", "BEQ", cpu.REL},
	{"BNE ", "BNE", cpu.REL},
	{"BCC ", "BCC", cpu.REL},
	{"BCS ", "BCS", cpu.REL},
	{"CLC ", "CLC", cpu.IMP},
	{"SEC ", "SEC", cpu.IMP},
	{"BRK ", "BRK", cpu.IMP},
	{"NOP ", "NOP", cpu.IMP},
	{"ASL ", "ASL", cpu.ACC},
	{"ORAZ", "ORA", cpu.ZPG},
}

// Table is the ordered opcode catalogue. Order is significant: it is the
// scan order the self-hosting assembler uses, and determines the laid-out
// byte table returned by Bytes.
var Table = buildTable()

var byMnemonic = buildIndex(Table)

func buildTable() []Entry {
	set := cpu.GetInstructionSet(cpu.NMOS)
	entries := make([]Entry, 0, len(bindings)+1)
	for _, b := range bindings {
		var inst *cpu.Instruction
		for _, variant := range set.GetInstructions(b.name) {
			if variant.Mode == b.mode {
				inst = variant
				break
			}
		}
		if inst == nil {
			panic("catalog: no NMOS instruction for " + b.mnemonic)
		}
		entries = append(entries, Entry{
			Mnemonic: b.mnemonic,
			Opcode:   inst.Opcode,
			Shape:    shapeOf(b.mode, inst.Length),
		})
	}
	entries = append(entries, Entry{Mnemonic: End, Opcode: endOpcode, Shape: ShapeNone})
	return entries
}

func shapeOf(mode cpu.Mode, length byte) Shape {
	if mode == cpu.REL {
		return ShapeBranch
	}
	switch length {
	case 1:
		return ShapeNone
	case 2:
		return ShapeByte
	case 3:
		return ShapeWord
	default:
		panic("catalog: unexpected instruction length")
	}
}

func buildIndex(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Mnemonic] = e
	}
	return m
}

// Lookup finds the catalogue entry for a mnemonic. The mnemonic must be
// exactly four bytes, matched case-sensitively including trailing spaces;
// Pad can be used to produce this form from a shorter word.
func Lookup(mnemonic string) (Entry, bool) {
	e, ok := byMnemonic[mnemonic]
	return e, ok
}

// Pad right-pads a mnemonic word to the fixed 4-character width the
// catalogue and the self-hosting assembler's fixed-size reads require.
func Pad(word string) string {
	for len(word) < mnemonicWidth {
		word += " "
	}
	return word
}

// Bytes lays out the catalogue as a byte-for-byte table suitable for
// copying into emulator memory: each entry occupies 6 bytes (4 mnemonic
// bytes, 1 opcode byte, 1 shape byte), in the same order as Table.
func Bytes() []byte {
	b := make([]byte, 0, len(Table)*entrySize)
	for _, e := range Table {
		b = append(b, e.Mnemonic[0], e.Mnemonic[1], e.Mnemonic[2], e.Mnemonic[3], e.Opcode, byte(e.Shape))
	}
	return b
}

// EntrySize is the byte width of a single laid-out catalogue entry.
const EntrySize = entrySize
