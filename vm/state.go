package vm

// LoadAddress is where program images are placed and where PC starts,
// matching the assembler's location-counter origin.
const LoadAddress = 0x1000

// Simulator is the cycle-by-cycle RV32 interpreter core: a CPU, a flat
// Memory, and the Load/Step/Snapshot/Reset surface a host drives.
type Simulator struct {
	CPU    *CPU
	Memory *Memory
}

// NewSimulator returns a Simulator with a memSize-byte memory buffer and
// PC parked at LoadAddress.
func NewSimulator(memSize uint32) *Simulator {
	return &Simulator{
		CPU:    NewCPU(LoadAddress),
		Memory: NewMemory(memSize),
	}
}

// Load resets the simulator, then copies prog into memory at LoadAddress.
func (s *Simulator) Load(prog []byte) error {
	s.Reset()
	memSize := int64(len(s.Memory.Data))
	available := memSize - LoadAddress
	if available < 0 {
		available = 0
	}
	if int64(len(prog)) > available {
		return &LoadTooLargeError{ImageSize: len(prog), Available: uint32(available)}
	}
	return s.Memory.LoadImage(LoadAddress, prog)
}

// Step fetches, decodes and executes the instruction at PC, returning
// Halt without modifying architected state (beyond what the halted fetch
// itself implies) when the machine cannot continue: PC out of bounds,
// the all-zero sentinel word, or an unrecognised opcode.
func (s *Simulator) Step() (StepResult, error) {
	pc := s.CPU.PC
	if uint64(pc)+4 > uint64(len(s.Memory.Data)) {
		return Halt, nil
	}

	word, err := s.Memory.ReadWord(pc)
	if err != nil {
		return Halt, err
	}
	if word == 0 {
		return Halt, nil
	}

	rec := Decode(word)
	return execute(rec, s.CPU, s.Memory)
}

// Reset zeroes memory and registers and returns PC to LoadAddress.
func (s *Simulator) Reset() {
	s.Memory.Reset()
	s.CPU.Reset(LoadAddress)
}

// Snapshot is an immutable, host-facing copy of the architected state:
// PC, all integer and float registers, and a caller-chosen memory window.
type Snapshot struct {
	PC      uint32
	X       [registerCount]uint32
	F       [registerCount]float32
	Cycles  uint64
	MemView []byte
}

// Snapshot captures the current PC, registers, and the memory window
// [start, start+length). The window is clamped to the buffer's bounds.
func (s *Simulator) Snapshot(start, length uint32) Snapshot {
	snap := Snapshot{
		PC:     s.CPU.PC,
		X:      s.CPU.X,
		F:      s.CPU.F,
		Cycles: s.CPU.Cycles,
	}

	end := start + length
	if start > uint32(len(s.Memory.Data)) {
		start = uint32(len(s.Memory.Data))
	}
	if end > uint32(len(s.Memory.Data)) {
		end = uint32(len(s.Memory.Data))
	}
	if end < start {
		end = start
	}

	snap.MemView = make([]byte, end-start)
	copy(snap.MemView, s.Memory.Data[start:end])
	return snap
}
