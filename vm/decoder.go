package vm

// InstructionRecord is the fully decomposed form of one 32-bit instruction
// word: every field a format might need, computed eagerly so Execute never
// has to re-derive a bitfield.
type InstructionRecord struct {
	Raw    uint32
	Opcode uint32
	RD     int
	RS1    int
	RS2    int
	Funct3 uint32
	Funct7 uint32

	ImmI int32
	ImmS int32
	ImmB int32
	ImmU int32
	ImmJ int32
}

// signExtend interprets the low `bits` bits of value as two's-complement
// and sign-extends to a full int32.
func signExtend(value uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(value<<shift) >> shift
}

// Decode splits a raw 32-bit instruction word into every field its format
// might use. Fields that do not apply to a given opcode are simply unused
// by the executor.
func Decode(word uint32) InstructionRecord {
	r := InstructionRecord{
		Raw:    word,
		Opcode: word & 0x7F,
		RD:     int((word >> 7) & 0x1F),
		RS1:    int((word >> 15) & 0x1F),
		RS2:    int((word >> 20) & 0x1F),
		Funct3: (word >> 12) & 0x7,
		Funct7: (word >> 25) & 0x7F,
	}

	r.ImmI = signExtend(word>>20, 12)

	sImm := ((word >> 25) & 0x7F << 5) | ((word >> 7) & 0x1F)
	r.ImmS = signExtend(sImm, 12)

	bImm := ((word>>31)&0x1)<<12 | ((word>>7)&0x1)<<11 | ((word>>25)&0x3F)<<5 | ((word>>8)&0xF)<<1
	r.ImmB = signExtend(bImm, 13)

	r.ImmU = int32(word & 0xFFFFF000)

	jImm := ((word>>31)&0x1)<<20 | ((word>>12)&0xFF)<<12 | ((word>>20)&0x1)<<11 | ((word>>21)&0x3FF)<<1
	r.ImmJ = signExtend(jImm, 21)

	return r
}
