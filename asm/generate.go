package asm

import (
	"io"

	"github.com/bootstrap6502/punch6502/catalog"
)

// AssembleResolved is the pure byte generator: it consumes resolved-form
// source (no labels, no comments, every operand numeric) and the opcode
// catalogue, and emits the machine-code image honoring relocation
// directives. It is used both by Assemble, after the friendly form has
// been resolved, and directly by the equivalence harness, which compares
// its output to the self-hosting assembler executed on the emulator.
func AssembleResolved(r io.Reader) (*Assembly, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	units, err := parseUnits("", string(b), catalogShape)
	if err != nil {
		return nil, err
	}

	mem := make(map[uint16]byte)
	var minAddr, maxAddr uint16
	written := false
	var effective, output, delta uint16

	write := func(bs []byte) {
		for _, v := range bs {
			mem[output] = v
			if !written || output < minAddr {
				minAddr = output
			}
			if !written || output > maxAddr {
				maxAddr = output
			}
			written = true
			output++
			effective++
		}
	}

	for _, u := range units {
		switch u.kind {
		case unitReloc:
			delta = u.word16

		case unitOrg:
			effective = u.word16
			output = effective + delta

		case unitLabelDef:
			return nil, &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: "label definitions are not valid in resolved-form source"}

		case unitByte:
			write([]byte{u.byteVal})

		case unitString:
			write([]byte(u.text))

		case unitInstruction:
			if u.mnemonic == catalog.End {
				return buildAssembly(mem, minAddr, maxAddr, written), nil
			}
			if u.operandLabel != "" {
				return nil, &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: "label references are not valid in resolved-form source"}
			}
			entry, ok := catalog.Lookup(u.mnemonic)
			if !ok {
				return nil, &SyntaxError{File: u.file, Line: u.line, Col: u.col, Msg: "unrecognized mnemonic"}
			}
			bytes := []byte{entry.Opcode}
			switch u.shape {
			case catalog.ShapeByte, catalog.ShapeBranch:
				bytes = append(bytes, hexToByte(u.operandHex))
			case catalog.ShapeWord:
				hi := hexToByte(u.operandHex[0:2])
				lo := hexToByte(u.operandHex[2:4])
				bytes = append(bytes, lo, hi)
			}
			write(bytes)
		}
	}

	return buildAssembly(mem, minAddr, maxAddr, written), nil
}

func buildAssembly(mem map[uint16]byte, minAddr, maxAddr uint16, written bool) *Assembly {
	if !written {
		return &Assembly{Code: []byte{}}
	}
	code := make([]byte, int(maxAddr)-int(minAddr)+1)
	for a := int(minAddr); a <= int(maxAddr); a++ {
		code[a-int(minAddr)] = mem[uint16(a)]
	}
	return &Assembly{Origin: minAddr, Code: code}
}
