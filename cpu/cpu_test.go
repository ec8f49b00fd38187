package cpu_test

import (
	"testing"

	"github.com/bootstrap6502/punch6502/cpu"
)

func newCPU(code []byte, origin uint16) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(origin, code)
	c := cpu.NewCPU(cpu.NMOS, mem)
	c.SetPC(origin)
	return c
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	if c.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: %02X, got $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func TestAccumulator(t *testing.T) {
	code := []byte{
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	}
	c := newCPU(code, 0x1000)
	stepCPU(c, 3)

	expectPC(t, c, 0x1007)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestStack(t *testing.T) {
	code := []byte{
		0xa9, 0x11, 0x48, // LDA #$11 / PHA
		0xa9, 0x12, 0x48, // LDA #$12 / PHA
		0xa9, 0x13, 0x48, // LDA #$13 / PHA
		0x68, 0x8d, 0x00, 0x20, // PLA / STA $2000
		0x68, 0x8d, 0x01, 0x20, // PLA / STA $2001
		0x68, 0x8d, 0x02, 0x20, // PLA / STA $2002
	}
	c := newCPU(code, 0x1000)
	stepCPU(c, 6)

	expectSP(t, c, 0xfc)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x1ff, 0x11)
	expectMem(t, c, 0x1fe, 0x12)
	expectMem(t, c, 0x1fd, 0x13)

	stepCPU(c, 6)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x2000, 0x13)
	expectMem(t, c, 0x2001, 0x12)
	expectMem(t, c, 0x2002, 0x11)
}

func TestIndirect(t *testing.T) {
	code := []byte{
		0xa2, 0x80, // LDX #$80
		0xa0, 0x40, // LDY #$40
		0xa9, 0xee, // LDA #$EE
		0x9d, 0x00, 0x20, // STA $2000,X
		0x99, 0x00, 0x20, // STA $2000,Y
		0xa9, 0x11, 0x85, 0x06, // LDA #$11 / STA $06
		0xa9, 0x05, 0x85, 0x07, // LDA #$05 / STA $07
		0xa2, 0x01, // LDX #$01
		0xa0, 0x01, // LDY #$01
		0xa9, 0xbb, // LDA #$BB
		0x81, 0x05, // STA ($05,X)
		0x91, 0x06, // STA ($06),Y
	}
	c := newCPU(code, 0x1000)
	stepCPU(c, 14)

	expectMem(t, c, 0x2080, 0xee)
	expectMem(t, c, 0x2040, 0xee)
	expectMem(t, c, 0x0511, 0xbb)
	expectMem(t, c, 0x0512, 0xbb)
}

func TestPageCross(t *testing.T) {
	code := []byte{
		0xa9, 0x55, // LDA #$55  2 cycles
		0x8d, 0x01, 0x11, // STA $1101  4 cycles
		0xa9, 0x00, // LDA #$00  2 cycles
		0xa2, 0xff, // LDX #$FF  2 cycles
		0xbd, 0x02, 0x10, // LDA $1002,X  5 cycles (page cross)
	}
	c := newCPU(code, 0x1000)
	stepCPU(c, 5)

	expectPC(t, c, 0x100c)
	expectCycles(t, c, 15)
	expectACC(t, c, 0x55)
	expectMem(t, c, 0x1101, 0x55)
}

func TestUndocumentedOpcodeIsHarmlessNoOp(t *testing.T) {
	code := []byte{0x02, 0x00} // undocumented NMOS opcode, 2-byte form; BRK
	c := newCPU(code, 0x1000)

	c.Step()
	expectPC(t, c, 0x1002)
	expectCycles(t, c, 2)
}

func TestUndefinedMarksOnlyUndocumentedOpcodes(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS)
	if set.Lookup(0x02).Undefined() != true {
		t.Error("opcode 0x02: expected Undefined() == true")
	}
	if set.Lookup(0xa9).Undefined() != false {
		t.Error("opcode 0xa9 (LDA #imm): expected Undefined() == false")
	}
}

func TestBRKPushesReturnAddressAndFlags(t *testing.T) {
	code := []byte{0x00, 0xea} // BRK / NOP
	c := newCPU(code, 0x1000)

	mem := c.Mem.(*cpu.FlatMemory)
	mem.StoreAddress(0xfffe, 0x1234)

	c.Step()
	expectPC(t, c, 0x1234)
	expectSP(t, c, 0xfc)
}
