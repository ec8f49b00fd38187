// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
package disasm

import (
	"fmt"

	"github.com/bootstrap6502/punch6502/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"%s",      // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m cpu.Memory, addr uint16) (line string, next uint16) {
	opcode := m.LoadByte(addr)
	set := cpu.GetInstructionSet(cpu.CMOS)
	inst := set.Lookup(opcode)
	operand := make([]byte, int(inst.Length)-1)
	m.LoadBytes(addr+1, operand)
	if inst.Mode == cpu.REL && len(operand) > 0 {
		// Convert relative offset to absolute address.
		braddr := int(addr) + int(inst.Length) + int(operand[0])
		if operand[0] > 0x7f {
			braddr -= 256
		}
		operand = []byte{byte(braddr & 0xff), byte(braddr >> 8)}
	}
	format := "%s " + modeFormat[inst.Mode]
	line = fmt.Sprintf(format, inst.Name, hexString(operand))
	next = addr + uint16(inst.Length)
	return
}

// GetRegisterString returns a single-line summary of the register file,
// suitable for appending to a disassembled instruction during tracing.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X S=%02X P=%s",
		r.A, r.X, r.Y, r.SP, flagString(r))
}

func flagString(r *cpu.Registers) string {
	flag := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '-'
	}
	b := []byte{
		flag(r.Sign, 'N'),
		flag(r.Overflow, 'V'),
		flag(r.Decimal, 'D'),
		flag(r.InterruptDisable, 'I'),
		flag(r.Zero, 'Z'),
		flag(r.Carry, 'C'),
	}
	return string(b)
}
