package cpu

// RunResult identifies why a Run invocation stopped.
type RunResult byte

const (
	// Trapped means the PC entered the caller-supplied trap region.
	Trapped RunResult = iota
	// CycleCapExceeded means the configured instruction budget ran out
	// before a trap or halt occurred.
	CycleCapExceeded
	// Halted means a BRK instruction was executed and BreakOnBRK was set.
	Halted
	// UndefinedOpcode means the CPU encountered an opcode with no
	// implementation for its architecture.
	UndefinedOpcode
)

func (r RunResult) String() string {
	switch r {
	case Trapped:
		return "trapped"
	case CycleCapExceeded:
		return "cycle cap exceeded"
	case Halted:
		return "halted"
	case UndefinedOpcode:
		return "undefined opcode"
	default:
		return "unknown"
	}
}

// RunOptions configures a bounded execution of the CPU, as used by the
// equivalence harness and the command-line front end.
type RunOptions struct {
	MaxCycles  int          // 0 means unlimited
	TrapLo     uint16       // start of the PC trap region
	TrapHi     uint16       // end of the PC trap region (inclusive); TrapLo==TrapHi==0 disables trapping
	BreakOnBRK bool         // stop (rather than invoke the interrupt vector) on BRK
	Trace      func(c *CPU) // if set, called immediately before each Step
}

// ResetTo initializes the register file the way the harness documents:
// A/X/Y zero, flags clear, stack pointer at the conventional 0xFD, and PC
// set to the caller-supplied start address. Unlike Reg.Init (used by the
// interactive host, which vectors through the reset vector), this does not
// touch memory.
func (cpu *CPU) ResetTo(pc uint16) {
	cpu.Reg = Registers{SP: 0xfd, PC: pc}
	cpu.Cycles = 0
}

// Run steps the CPU until it traps, halts, exceeds its cycle cap, or hits
// an undefined opcode. It returns the reason execution stopped and, for
// UndefinedOpcode, the offending opcode value.
func Run(c *CPU, opt RunOptions) (RunResult, byte) {
	trapEnabled := opt.TrapLo != 0 || opt.TrapHi != 0
	steps := 0
	for {
		if trapEnabled && c.Reg.PC >= opt.TrapLo && c.Reg.PC <= opt.TrapHi {
			return Trapped, 0
		}
		if opt.MaxCycles > 0 && steps >= opt.MaxCycles {
			return CycleCapExceeded, 0
		}

		opcode := c.Mem.LoadByte(c.Reg.PC)
		inst := c.InstSet.Lookup(opcode)
		if inst.Undefined() {
			return UndefinedOpcode, opcode
		}
		if opt.BreakOnBRK && opcode == 0x00 {
			return Halted, 0
		}

		if opt.Trace != nil {
			opt.Trace(c)
		}
		c.Step()
		steps++
	}
}
