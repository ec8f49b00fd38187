package asm

import (
	"fmt"
	"strings"

	"github.com/bootstrap6502/punch6502/catalog"
)

func shapeBytes(s catalog.Shape) int {
	switch s {
	case catalog.ShapeByte, catalog.ShapeBranch:
		return 1
	case catalog.ShapeWord:
		return 2
	default:
		return 0
	}
}

// resolveLabels is pass one: it walks the unit stream computing the
// effective address each unit will occupy, honoring "!" and "@", and
// records each label definition's effective address. It does not emit
// anything.
func resolveLabels(units []sourceUnit) (map[string]uint16, error) {
	labels := make(map[string]uint16)
	var effective uint16
	for _, u := range units {
		switch u.kind {
		case unitOrg:
			effective = u.word16
		case unitLabelDef:
			if _, exists := labels[u.label]; exists {
				return nil, &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: fmt.Sprintf("duplicate label %q", u.label)}
			}
			labels[u.label] = effective
		case unitByte:
			effective++
		case unitString:
			effective += uint16(len(u.text))
		case unitInstruction:
			if u.mnemonic == catalog.End {
				return labels, nil
			}
			effective += 1 + uint16(shapeBytes(u.shape))
		}
	}
	return labels, nil
}

// renderResolved is pass two: it rewrites the unit stream into resolved-
// form ASCII text (directives and literals unchanged, label references
// replaced with their numeric effective address or branch displacement),
// and records the effective address each emitting unit maps back to.
func renderResolved(units []sourceUnit, labels map[string]uint16) (string, []SourceLine, error) {
	var sb strings.Builder
	var lines []SourceLine
	var effective uint16
	first := true

	writeLine := func(s string) {
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(s)
		first = false
	}

	for _, u := range units {
		switch u.kind {
		case unitReloc:
			writeLine(fmt.Sprintf("!%04X", u.word16))

		case unitOrg:
			effective = u.word16
			writeLine(fmt.Sprintf("@%04X", u.word16))

		case unitLabelDef:
			// Labels carry no presence in resolved form.

		case unitByte:
			writeLine(fmt.Sprintf("#%02X", u.byteVal))
			lines = append(lines, SourceLine{Address: effective, Line: u.line})
			effective++

		case unitString:
			writeLine("\"" + u.text + "\"")
			lines = append(lines, SourceLine{Address: effective, Line: u.line})
			effective += uint16(len(u.text))

		case unitInstruction:
			if u.mnemonic == catalog.End {
				writeLine(catalog.End)
				return sb.String(), lines, nil
			}
			unitAddr := effective
			operand, err := renderOperand(u, unitAddr, labels)
			if err != nil {
				return "", nil, err
			}
			writeLine(u.mnemonic + operand)
			lines = append(lines, SourceLine{Address: unitAddr, Line: u.line})
			effective += 1 + uint16(shapeBytes(u.shape))
		}
	}
	return sb.String(), lines, nil
}

func renderOperand(u sourceUnit, unitAddr uint16, labels map[string]uint16) (string, error) {
	switch u.shape {
	case catalog.ShapeNone:
		return "", nil

	case catalog.ShapeByte:
		return " " + strings.ToUpper(u.operandHex), nil

	case catalog.ShapeWord:
		if u.operandLabel == "" {
			return " " + strings.ToUpper(u.operandHex), nil
		}
		addr, ok := labels[u.operandLabel]
		if !ok {
			return "", &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: fmt.Sprintf("unknown label %q", u.operandLabel)}
		}
		return fmt.Sprintf(" %04X", addr), nil

	case catalog.ShapeBranch:
		if u.operandLabel == "" {
			return " " + strings.ToUpper(u.operandHex), nil
		}
		addr, ok := labels[u.operandLabel]
		if !ok {
			return "", &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: fmt.Sprintf("unknown label %q", u.operandLabel)}
		}
		disp := int(addr) - (int(unitAddr) + 2)
		if disp < -128 || disp > 127 {
			return "", &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: "branch out of range"}
		}
		return fmt.Sprintf(" %02X", byte(disp)), nil

	default:
		return "", nil
	}
}
