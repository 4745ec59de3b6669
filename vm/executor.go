package vm

import "math"

// execute dispatches one decoded instruction against the given CPU and
// Memory, returning Halt if the instruction signals program termination
// by opcode (an unrecognised opcode halts; the all-zero sentinel and
// out-of-bounds PC are checked by the caller before decoding).
func execute(rec InstructionRecord, cpu *CPU, mem *Memory) (StepResult, error) {
	pc := cpu.PC
	branched := false
	var nextPC uint32

	switch rec.Opcode {
	case opOp:
		result := execOp(rec, cpu.GetX(rec.RS1), cpu.GetX(rec.RS2))
		cpu.SetX(rec.RD, result)

	case opImm:
		result := execOpImm(rec, cpu.GetX(rec.RS1))
		cpu.SetX(rec.RD, result)

	case opLoad:
		addr := cpu.GetX(rec.RS1) + uint32(rec.ImmI)
		switch rec.Funct3 {
		case f3LW:
			v, err := mem.ReadWord(addr)
			if err != nil {
				return Halt, err
			}
			cpu.SetX(rec.RD, v)
		case f3LH:
			v, err := mem.ReadHalf(addr)
			if err != nil {
				return Halt, err
			}
			cpu.SetX(rec.RD, uint32(signExtend(uint32(v), 16)))
		default:
			return Halt, nil
		}

	case opStore:
		addr := cpu.GetX(rec.RS1) + uint32(rec.ImmS)
		switch rec.Funct3 {
		case f3SW:
			if err := mem.WriteWord(addr, cpu.GetX(rec.RS2)); err != nil {
				return Halt, err
			}
		case f3SH:
			if err := mem.WriteHalf(addr, uint16(cpu.GetX(rec.RS2))); err != nil {
				return Halt, err
			}
		default:
			return Halt, nil
		}

	case opBranch:
		if evalBranch(rec.Funct3, cpu.GetX(rec.RS1), cpu.GetX(rec.RS2)) {
			nextPC = pc + uint32(rec.ImmB)
			branched = true
		}

	case opLUI:
		cpu.SetX(rec.RD, uint32(rec.ImmU))

	case opAUIPC:
		cpu.SetX(rec.RD, pc+uint32(rec.ImmU))

	case opJAL:
		cpu.SetX(rec.RD, pc+4)
		nextPC = pc + uint32(rec.ImmJ)
		branched = true

	case opJALR:
		cpu.SetX(rec.RD, pc+4)
		nextPC = (cpu.GetX(rec.RS1) + uint32(rec.ImmI)) &^ 1
		branched = true

	case opLoadFP:
		addr := cpu.GetX(rec.RS1) + uint32(rec.ImmI)
		v, err := mem.ReadWord(addr)
		if err != nil {
			return Halt, err
		}
		cpu.SetF(rec.RD, math.Float32frombits(v))

	case opStoreFP:
		addr := cpu.GetX(rec.RS1) + uint32(rec.ImmS)
		if err := mem.WriteWord(addr, math.Float32bits(cpu.GetF(rec.RS2))); err != nil {
			return Halt, err
		}

	case opFP:
		execFP(rec, cpu)

	default:
		return Halt, nil
	}

	if branched {
		cpu.Branch(nextPC)
	} else {
		cpu.AdvancePC()
	}
	cpu.SetX(0, 0) // x0 is hardwired zero, enforced after every step
	cpu.Cycles++
	return Continue, nil
}
