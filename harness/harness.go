// Package harness implements the equivalence test that ties the core
// triangle together: for a given resolved-form program, the bytes the
// reference assembler produces must match, byte for byte, the bytes the
// self-hosting assembler produces when executed on the emulator.
package harness

import (
	"bytes"
	"strings"

	"github.com/bootstrap6502/punch6502/asm"
	"github.com/bootstrap6502/punch6502/cpu"
	"github.com/bootstrap6502/punch6502/selfhost"
)

// DefaultMaxCycles bounds how long the self-hosting assembler is allowed
// to run before the harness gives up and reports a cycle-cap failure.
const DefaultMaxCycles = 10_000_000

// DefaultTrapLo is the start of the PC region the self-hosting assembler
// jumps into once it reaches its END sentinel, used to detect completion
// without requiring the assembler to signal it any other way.
const DefaultTrapLo = 0x9000

// Result reports the outcome of comparing the reference assembler's
// output for a resolved program against the self-hosting assembler's
// output for the same program, executed on the emulator.
type Result struct {
	Origin    uint16
	Expected  []byte
	Actual    []byte
	RunResult cpu.RunResult
	Opcode    byte // set when RunResult is cpu.UndefinedOpcode
	Match     bool
}

// Compare assembles resolved-form source with the reference assembler,
// separately runs the self-hosting assembler (on a freshly loaded
// emulator) over the same source, and reports whether their outputs
// agree. maxCycles and trapLo bound the emulator run; pass
// DefaultMaxCycles and DefaultTrapLo for the conventional configuration.
func Compare(resolved string, maxCycles int, trapLo uint16) (*Result, error) {
	expected, err := asm.AssembleResolved(strings.NewReader(resolved))
	if err != nil {
		return nil, err
	}

	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.NMOS, mem)

	start, err := selfhost.LoadProgram(c, resolved)
	if err != nil {
		return nil, err
	}
	c.ResetTo(start)

	runResult, opcode := cpu.Run(c, cpu.RunOptions{
		MaxCycles:  maxCycles,
		TrapLo:     trapLo,
		TrapHi:     0xffff,
		BreakOnBRK: true,
	})

	actual := make([]byte, len(expected.Code))
	mem.LoadBytes(expected.Origin, actual)

	match := runResult == cpu.Trapped && bytes.Equal(expected.Code, actual)

	return &Result{
		Origin:    expected.Origin,
		Expected:  expected.Code,
		Actual:    actual,
		RunResult: runResult,
		Opcode:    opcode,
		Match:     match,
	}, nil
}

// CompareSelfHosting runs the canonical bootstrap scenario: the
// self-hosting assembler assembling its own relocated source, with its
// output compared to the reference assembler's rendering of the same
// text.
func CompareSelfHosting() (*Result, error) {
	resolved, err := selfhost.Resolved()
	if err != nil {
		return nil, err
	}
	return Compare(resolved, DefaultMaxCycles, DefaultTrapLo)
}
