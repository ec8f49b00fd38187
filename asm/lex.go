package asm

import (
	"fmt"
	"strings"

	"github.com/bootstrap6502/punch6502/catalog"
)

type unitKind int

const (
	unitReloc unitKind = iota
	unitOrg
	unitByte
	unitString
	unitLabelDef
	unitInstruction
)

// A sourceUnit is one grammar unit of the punch dialect: a relocation or
// origin directive, a byte or string literal, a label definition, or an
// instruction with its operand. Friendly-form source additionally allows
// an instruction operand to reference a label by name instead of carrying
// a numeric value; resolved-form source never does.
type sourceUnit struct {
	kind unitKind
	file string
	line int
	col  int

	word16 uint16 // reloc/org value

	byteVal byte   // byte literal value
	text    string // string literal payload

	label string // label name, for unitLabelDef

	mnemonic     string // 4-byte padded mnemonic, for unitInstruction
	shape        catalog.Shape
	operandHex   string // literal hex digits of the operand, already sized to the shape
	operandLabel string // non-empty if the operand is a ":NAME" reference instead of a literal
}

// shapeLookup resolves a padded 4-byte mnemonic to its catalogue shape.
type shapeLookup func(mnemonic string) (catalog.Shape, bool)

func catalogShape(mnemonic string) (catalog.Shape, bool) {
	e, ok := catalog.Lookup(mnemonic)
	if !ok {
		return 0, false
	}
	return e.Shape, true
}

// parseUnits tokenizes an entire source buffer into its grammar units. It
// accepts the superset grammar used by friendly-form source (labels and
// ":NAME" operand references); resolved-form source is parsed with the
// same function and simply never produces unitLabelDef units or units
// with operandLabel set.
func parseUnits(file, src string, shapeOf shapeLookup) ([]sourceUnit, error) {
	c := newCursor(file, src)
	var units []sourceUnit

	for {
		c.skipSpaceAndComments()
		if c.eof() {
			return units, nil
		}

		line, col := c.position()
		ch := c.peek()

		switch {
		case ch == '!':
			c.advance()
			v, err := readHexWord(c, line, col)
			if err != nil {
				return nil, err
			}
			units = append(units, sourceUnit{kind: unitReloc, file: file, line: line, col: col, word16: v})

		case ch == '@':
			c.advance()
			v, err := readHexWord(c, line, col)
			if err != nil {
				return nil, err
			}
			units = append(units, sourceUnit{kind: unitOrg, file: file, line: line, col: col, word16: v})

		case ch == '#':
			c.advance()
			v, err := readHexByte(c, line, col)
			if err != nil {
				return nil, err
			}
			units = append(units, sourceUnit{kind: unitByte, file: file, line: line, col: col, byteVal: v})

		case ch == '"':
			c.advance()
			var sb strings.Builder
			for {
				if c.eof() {
					return nil, &SyntaxError{File: file, Line: line, Col: col, Msg: "unterminated string"}
				}
				if c.peek() == '"' {
					c.advance()
					break
				}
				sb.WriteByte(c.advance())
			}
			units = append(units, sourceUnit{kind: unitString, file: file, line: line, col: col, text: sb.String()})

		case isLabelStart(ch):
			word := c.takeWhile(isLabelChar)
			if c.peek() == ':' {
				c.advance()
				units = append(units, sourceUnit{kind: unitLabelDef, file: file, line: line, col: col, label: word})
				continue
			}
			if len(word) == 3 && c.peek() == '#' {
				word += string(c.advance())
			}

			mnemonic, err := mnemonicFrom(word, file, line, col)
			if err != nil {
				return nil, err
			}
			shape, ok := shapeOf(mnemonic)
			if !ok {
				return nil, &SyntaxError{File: file, Line: line, Col: col, Msg: fmt.Sprintf("unrecognized mnemonic %q", strings.TrimRight(mnemonic, " "))}
			}

			unit := sourceUnit{kind: unitInstruction, file: file, line: line, col: col, mnemonic: mnemonic, shape: shape}
			if shape != catalog.ShapeNone {
				c.skipSpaceAndComments()
				if c.peek() == ':' {
					c.advance()
					rl, rc := c.position()
					name := c.takeWhile(isLabelChar)
					if name == "" {
						return nil, &SyntaxError{File: file, Line: rl, Col: rc, Msg: "expected label name after ':'"}
					}
					unit.operandLabel = name
				} else {
					digits := 2
					if shape == catalog.ShapeWord {
						digits = 4
					}
					skipHexPrefix(c)
					hex, err := readHexDigits(c, digits, line, col)
					if err != nil {
						return nil, err
					}
					unit.operandHex = hex
				}
			}
			units = append(units, unit)

		default:
			return nil, &SyntaxError{File: file, Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", string(ch))}
		}
	}
}

// mnemonicFrom turns a lexed identifier into a catalogue-ready, 4-byte,
// space-padded, uppercase mnemonic. The identifier is either a bare
// 3-letter instruction name (implying the implicit-operand suffix, a
// trailing space) or a 3-letter name followed by one addressing-mode
// suffix character. Absolute,Y forms reuse the register letters in
// transposed order (LDYA, STAY) rather than a fifth suffix character,
// since X/Y/Z/# are already claimed by other modes; isModeSuffix accepts
// the trailing 'A' these transposed forms end in.
func mnemonicFrom(word string, file string, line, col int) (string, error) {
	if len(word) != 3 && len(word) != 4 {
		return "", &SyntaxError{File: file, Line: line, Col: col, Msg: fmt.Sprintf("unrecognized mnemonic %q", word)}
	}
	upper := strings.ToUpper(word)
	if len(upper) == 3 {
		return upper + " ", nil
	}
	if !isModeSuffix(upper[3]) {
		return "", &SyntaxError{File: file, Line: line, Col: col, Msg: fmt.Sprintf("unrecognized mnemonic %q", word)}
	}
	return upper, nil
}

// skipHexPrefix consumes an optional "$" or "0x"/"0X" prefix, as the
// friendly form (but never the resolved form) may carry one.
func skipHexPrefix(c *cursor) {
	if c.peek() == '$' {
		c.advance()
		return
	}
	if c.peek() == '0' && (c.peekAt(1) == 'x' || c.peekAt(1) == 'X') {
		c.advance()
		c.advance()
	}
}

func readHexWord(c *cursor, line, col int) (uint16, error) {
	skipHexPrefix(c)
	s, err := readHexDigits(c, 4, line, col)
	if err != nil {
		return 0, err
	}
	return uint16(hexToByte(s[0:2]))<<8 | uint16(hexToByte(s[2:4])), nil
}

func readHexByte(c *cursor, line, col int) (byte, error) {
	skipHexPrefix(c)
	s, err := readHexDigits(c, 2, line, col)
	if err != nil {
		return 0, err
	}
	return hexToByte(s), nil
}

func readHexDigits(c *cursor, n int, line, col int) (string, error) {
	start := c.pos
	for i := 0; i < n; i++ {
		if c.eof() || !isHexDigit(c.peek()) {
			return "", &SyntaxError{File: c.file, Line: line, Col: col, Msg: "malformed hex literal"}
		}
		c.advance()
	}
	return c.buf[start:c.pos], nil
}
