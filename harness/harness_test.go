package harness_test

import (
	"testing"

	"github.com/bootstrap6502/punch6502/cpu"
	"github.com/bootstrap6502/punch6502/harness"
)

func TestCompareSimpleProgram(t *testing.T) {
	resolved := "@0200\nLDA# 2A\nSTAZ 80\nBRK\nEND"
	result, err := harness.Compare(resolved, harness.DefaultMaxCycles, harness.DefaultTrapLo)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.RunResult != cpu.Trapped {
		t.Fatalf("RunResult = %v, want Trapped (opcode %#02x)", result.RunResult, result.Opcode)
	}
	if !result.Match {
		t.Errorf("Expected % x, got % x", result.Expected, result.Actual)
	}
}

func TestCompareSelfHosting(t *testing.T) {
	result, err := harness.CompareSelfHosting()
	if err != nil {
		t.Fatalf("CompareSelfHosting: %v", err)
	}
	if result.RunResult != cpu.Trapped {
		t.Fatalf("RunResult = %v, want Trapped (opcode %#02x)", result.RunResult, result.Opcode)
	}
	if !result.Match {
		t.Errorf("self-hosted assembly did not match the reference assembler's output (origin %#04x): expected % x, got % x",
			result.Origin, result.Expected, result.Actual)
	}
}
