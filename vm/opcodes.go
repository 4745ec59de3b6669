package vm

// Opcode values for the seven-bit opcode field, matching the RV32I/M/F
// encodings the assembler emits.
const (
	opOp      = 0x33 // register-register arithmetic (RV32I + RV32M)
	opImm     = 0x13 // register-immediate arithmetic
	opLoad    = 0x03 // integer loads
	opStore   = 0x23 // integer stores
	opBranch  = 0x63
	opLUI     = 0x37
	opAUIPC   = 0x17
	opJAL     = 0x6F
	opJALR    = 0x67
	opLoadFP  = 0x07 // flw
	opStoreFP = 0x27 // fsw
	opFP      = 0x53 // fadd.s/fsub.s/fmul.s/fdiv.s/fsqrt.s/fcvt.*
)

// funct3 values shared across OP / OP-IMM.
const (
	f3AddSub = 0b000
	f3SLL    = 0b001
	f3SLT    = 0b010
	f3SLTU   = 0b011
	f3XOR    = 0b100
	f3SRL    = 0b101 // SRA shares this funct3, distinguished by funct7
	f3OR     = 0b110
	f3AND    = 0b111

	f3Mul    = 0b000
	f3Mulh   = 0b001
	f3Mulhsu = 0b010
	f3Mulhu  = 0b011
	f3Div    = 0b100
	f3Divu   = 0b101
	f3Rem    = 0b110
	f3Remu   = 0b111
)

// funct3 values for LOAD / STORE.
const (
	f3LW = 0b010
	f3LH = 0b001
	f3SW = 0b010
	f3SH = 0b001
)

// funct3 values for BRANCH.
const (
	f3BEQ  = 0b000
	f3BNE  = 0b001
	f3BLT  = 0b100
	f3BGE  = 0b101
	f3BLTU = 0b110
	f3BGEU = 0b111
)

const funct7Alt = 0b0100000 // distinguishes sub/sra from add/srl
const funct7M = 0b0000001   // RV32M discriminator on funct7

// funct7 values for the RV32F subset.
const (
	f7Fadd  = 0b0000000
	f7Fsub  = 0b0000100
	f7Fmul  = 0b0001000
	f7Fdiv  = 0b0001100
	f7Fsqrt = 0b0101100
	f7FcvtWS = 0b1100000
	f7FcvtSW = 0b1101000
)
