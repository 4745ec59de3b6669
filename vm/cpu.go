package vm

// registerCount is the size of each architectural register file: 32
// general-purpose integer registers (x0-x31) and, independently, 32
// floating-point registers (f0-f31).
const registerCount = 32

// CPU holds the RV32 integer and floating-point register state.
type CPU struct {
	// X holds the integer register file. X[0] is hardwired to zero: SetX
	// is a no-op for index 0, matching the architectural contract that
	// x0 always reads as zero.
	X [registerCount]uint32

	// F holds the single-precision floating-point register file. It is
	// always present; no setting removes it.
	F [registerCount]float32

	// PC is the program counter, the byte address of the next
	// instruction to fetch.
	PC uint32

	// Cycles counts completed Step calls.
	Cycles uint64
}

// NewCPU returns a CPU with PC at the image load address and all
// registers zeroed.
func NewCPU(entry uint32) *CPU {
	return &CPU{PC: entry}
}

// Reset zeroes every register and resets PC to entry.
func (c *CPU) Reset(entry uint32) {
	c.X = [registerCount]uint32{}
	c.F = [registerCount]float32{}
	c.PC = entry
	c.Cycles = 0
}

// GetX returns the value of integer register reg.
func (c *CPU) GetX(reg int) uint32 {
	if reg < 0 || reg >= registerCount {
		return 0
	}
	return c.X[reg]
}

// SetX sets integer register reg, ignoring writes to x0.
func (c *CPU) SetX(reg int, value uint32) {
	if reg <= 0 || reg >= registerCount {
		return
	}
	c.X[reg] = value
}

// GetF returns the value of float register reg.
func (c *CPU) GetF(reg int) float32 {
	if reg < 0 || reg >= registerCount {
		return 0
	}
	return c.F[reg]
}

// SetF sets float register reg.
func (c *CPU) SetF(reg int, value float32) {
	if reg < 0 || reg >= registerCount {
		return
	}
	c.F[reg] = value
}

// AdvancePC moves the program counter to the next sequential instruction.
func (c *CPU) AdvancePC() {
	c.PC += 4
}

// Branch sets the program counter directly, used by taken branches, jal
// and jalr.
func (c *CPU) Branch(target uint32) {
	c.PC = target
}
