package vm

import "math"

// execFP executes an OP-FP instruction (0x53): the four binary arithmetic
// ops, fsqrt.s, and the two conversions, selected by funct7. All operate
// under the default round-to-nearest-even mode implied by funct3 == 0
// (spec §4.5); no other rounding mode is supported.
func execFP(rec InstructionRecord, cpu *CPU) {
	switch rec.Funct7 {
	case f7Fadd:
		cpu.SetF(rec.RD, cpu.GetF(rec.RS1)+cpu.GetF(rec.RS2))
	case f7Fsub:
		cpu.SetF(rec.RD, cpu.GetF(rec.RS1)-cpu.GetF(rec.RS2))
	case f7Fmul:
		cpu.SetF(rec.RD, cpu.GetF(rec.RS1)*cpu.GetF(rec.RS2))
	case f7Fdiv:
		cpu.SetF(rec.RD, cpu.GetF(rec.RS1)/cpu.GetF(rec.RS2))
	case f7Fsqrt:
		cpu.SetF(rec.RD, float32(math.Sqrt(float64(cpu.GetF(rec.RS1)))))
	case f7FcvtWS:
		// fcvt.w.s: rd is an integer register, rs1 a float register.
		cpu.SetX(rec.RD, uint32(int32(math.RoundToEven(float64(cpu.GetF(rec.RS1))))))
	case f7FcvtSW:
		// fcvt.s.w: rd is a float register, rs1 an integer register.
		cpu.SetF(rec.RD, float32(int32(cpu.GetX(rec.RS1))))
	}
}
