// Command punch6502 is the batch-mode front end for the bootstrap
// assembler: it loads memory images, runs the emulator to a trap or
// cycle cap, and optionally assembles punch-dialect source or runs the
// self-hosting equivalence check.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bootstrap6502/punch6502/asm"
	"github.com/bootstrap6502/punch6502/cpu"
	"github.com/bootstrap6502/punch6502/disasm"
	"github.com/bootstrap6502/punch6502/harness"
)

type loadSpec struct {
	path string
	addr uint16
}

type loadList []loadSpec

func (l *loadList) String() string {
	if l == nil {
		return ""
	}
	var parts []string
	for _, s := range *l {
		parts = append(parts, fmt.Sprintf("%s@%04X", s.path, s.addr))
	}
	return strings.Join(parts, ",")
}

func (l *loadList) Set(v string) error {
	path, hex, ok := strings.Cut(v, "@")
	if !ok {
		return fmt.Errorf("--load %q: expected PATH@HHHH", v)
	}
	addr, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return fmt.Errorf("--load %q: bad address: %v", v, err)
	}
	*l = append(*l, loadSpec{path: path, addr: uint16(addr)})
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("punch6502", flag.ContinueOnError)
	var loads loadList
	fs.Var(&loads, "load", "load PATH into memory at hex address HHHH (PATH@HHHH); repeatable")
	start := fs.String("start", "", "set reset PC to hex address HHHH")
	trap := fs.String("trap", "", "halt when PC enters the region starting at hex address HHHH")
	maxCycles := fs.Int("max-cycles", 10_000_000, "halt after N executed instructions")
	dump := fs.String("dump", "", "after halt, write memory [LO:HI] to PATH (LO:HI:PATH)")
	compare := fs.String("compare", "", "after halt, compare memory [LO:HI] to PATH, exit zero iff equal (LO:HI:PATH)")
	trace := fs.Bool("trace", false, "emit one line per instruction executed")
	assembleFile := fs.String("assemble", "", "assemble PATH with the reference assembler and write PATH.bin/.map")
	selfhost := fs.Bool("selfhost", false, "run the self-hosting equivalence check and report the result")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch {
	case *assembleFile != "":
		return runAssemble(*assembleFile)
	case *selfhost:
		return runSelfHost()
	default:
		return runEmulate(loads, *start, *trap, *maxCycles, *dump, *compare, *trace)
	}
}

func runAssemble(path string) int {
	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer file.Close()

	assembly, _, err := asm.Assemble(file, path, true)
	if err != nil {
		for _, e := range assembly.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	binPath := path + ".bin"
	out, err := os.Create(binPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	_, err = assembly.WriteTo(out)
	out.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if assembly.Listing != "" {
		if err := os.WriteFile(path+".lst", []byte(assembly.Listing), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	fmt.Printf("assembled %s -> %s (origin %#04x, %d bytes)\n", path, binPath, assembly.Origin, len(assembly.Code))
	return 0
}

func runSelfHost() int {
	result, err := harness.CompareSelfHosting()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if result.RunResult != cpu.Trapped {
		fmt.Fprintf(os.Stderr, "self-hosting run did not trap: %v (opcode %#02x)\n", result.RunResult, result.Opcode)
		return 1
	}
	if !result.Match {
		fmt.Fprintf(os.Stderr, "self-hosted output does not match the reference assembler at origin %#04x\n", result.Origin)
		fmt.Fprintf(os.Stderr, "expected: % x\n", result.Expected)
		fmt.Fprintf(os.Stderr, "actual:   % x\n", result.Actual)
		return 1
	}
	fmt.Printf("self-hosting equivalence OK (%d bytes at %#04x)\n", len(result.Expected), result.Origin)
	return 0
}

func runEmulate(loads loadList, start, trapFlag string, maxCycles int, dump, compareSpec string, trace bool) int {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(cpu.NMOS, mem)

	for _, l := range loads {
		b, err := os.ReadFile(l.path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		mem.StoreBytes(l.addr, b)
	}

	var startAddr uint16
	if start != "" {
		v, err := strconv.ParseUint(start, 16, 16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--start %q: %v\n", start, err)
			return 1
		}
		startAddr = uint16(v)
	}
	c.ResetTo(startAddr)

	var trapLo, trapHi uint16
	if trapFlag != "" {
		v, err := strconv.ParseUint(trapFlag, 16, 16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "--trap %q: %v\n", trapFlag, err)
			return 1
		}
		trapLo = uint16(v)
		trapHi = 0xffff
	}

	opt := cpu.RunOptions{MaxCycles: maxCycles, TrapLo: trapLo, TrapHi: trapHi, BreakOnBRK: true}
	if trace {
		opt.Trace = func(c *cpu.CPU) {
			line, _ := disasm.Disassemble(c.Mem, c.Reg.PC)
			fmt.Printf("%04X: %-16s %s\n", c.Reg.PC, line, disasm.GetRegisterString(&c.Reg))
		}
	}

	result, opcode := cpu.Run(c, opt)
	switch result {
	case cpu.CycleCapExceeded:
		fmt.Fprintln(os.Stderr, "cycle cap exceeded")
		return 1
	case cpu.UndefinedOpcode:
		fmt.Fprintf(os.Stderr, "undefined opcode %#02x at %#04x\n", opcode, c.Reg.PC)
		return 1
	case cpu.Halted:
		fmt.Fprintln(os.Stderr, "halted on BRK")
		return 1
	}

	status := 0
	if dump != "" {
		if err := dumpMemory(mem, dump); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if compareSpec != "" {
		equal, err := compareMemory(mem, compareSpec)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !equal {
			fmt.Fprintln(os.Stderr, "memory comparison mismatch")
			status = 1
		}
	}
	return status
}

func parseRange(spec string) (lo, hi uint16, path string, err error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("expected LO:HI:PATH, got %q", spec)
	}
	loVal, err := strconv.ParseUint(parts[0], 16, 16)
	if err != nil {
		return 0, 0, "", fmt.Errorf("bad LO in %q: %v", spec, err)
	}
	hiVal, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return 0, 0, "", fmt.Errorf("bad HI in %q: %v", spec, err)
	}
	return uint16(loVal), uint16(hiVal), parts[2], nil
}

func dumpMemory(mem *cpu.FlatMemory, spec string) error {
	lo, hi, path, err := parseRange(spec)
	if err != nil {
		return err
	}
	b := make([]byte, int(hi)-int(lo)+1)
	mem.LoadBytes(lo, b)
	return os.WriteFile(path, b, 0o644)
}

func compareMemory(mem *cpu.FlatMemory, spec string) (bool, error) {
	lo, hi, path, err := parseRange(spec)
	if err != nil {
		return false, err
	}
	want, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	got := make([]byte, int(hi)-int(lo)+1)
	mem.LoadBytes(lo, got)
	return bytes.Equal(want, got), nil
}
