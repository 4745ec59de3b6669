package asm

import "strings"

// Format identifies which bit layout an encoded instruction uses.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatILoad
	FormatS
	FormatB
	FormatU
	FormatJ
	FormatRFloat
	FormatRFloatUnary
	FormatRFloatConv
	FormatIFLoad
	FormatSFStore
)

// opcodeEntry is the static encoding metadata for one mnemonic.
type opcodeEntry struct {
	Opcode uint32
	Funct3 int // -1 when unused
	Funct7 int // -1 when unused
	Format Format
}

const noFunct = -1

// opcodes maps every hardware mnemonic this toolchain assembles to its
// encoding metadata. Pseudo-instructions (mv, li, la, nop, not, neg) are
// handled separately by the pseudo-expander and never appear here.
var opcodes = map[string]opcodeEntry{
	// RV32I R-type
	"add":  {0x33, 0b000, 0b0000000, FormatR},
	"sub":  {0x33, 0b000, 0b0100000, FormatR},
	"xor":  {0x33, 0b100, 0b0000000, FormatR},
	"or":   {0x33, 0b110, 0b0000000, FormatR},
	"and":  {0x33, 0b111, 0b0000000, FormatR},
	"sll":  {0x33, 0b001, 0b0000000, FormatR},
	"srl":  {0x33, 0b101, 0b0000000, FormatR},
	"sra":  {0x33, 0b101, 0b0100000, FormatR},
	"slt":  {0x33, 0b010, 0b0000000, FormatR},
	"sltu": {0x33, 0b011, 0b0000000, FormatR},

	// RV32M R-type
	"mul":    {0x33, 0b000, 0b0000001, FormatR},
	"mulh":   {0x33, 0b001, 0b0000001, FormatR},
	"mulhsu": {0x33, 0b010, 0b0000001, FormatR},
	"mulhu":  {0x33, 0b011, 0b0000001, FormatR},
	"div":    {0x33, 0b100, 0b0000001, FormatR},
	"divu":   {0x33, 0b101, 0b0000001, FormatR},
	"rem":    {0x33, 0b110, 0b0000001, FormatR},
	"remu":   {0x33, 0b111, 0b0000001, FormatR},

	// RV32I I-type (OP-IMM)
	"addi":  {0x13, 0b000, noFunct, FormatI},
	"slti":  {0x13, 0b010, noFunct, FormatI},
	"sltiu": {0x13, 0b011, noFunct, FormatI},
	"xori":  {0x13, 0b100, noFunct, FormatI},
	"ori":   {0x13, 0b110, noFunct, FormatI},
	"andi":  {0x13, 0b111, noFunct, FormatI},
	"slli":  {0x13, 0b001, 0b0000000, FormatI},
	"srli":  {0x13, 0b101, 0b0000000, FormatI},
	"srai":  {0x13, 0b101, 0b0100000, FormatI},

	// Loads
	"lw": {0x03, 0b010, noFunct, FormatILoad},
	"lh": {0x03, 0b001, noFunct, FormatILoad},

	// jalr
	"jalr": {0x67, 0b000, noFunct, FormatI},

	// Stores
	"sw": {0x23, 0b010, noFunct, FormatS},
	"sh": {0x23, 0b001, noFunct, FormatS},

	// Branches
	"beq":  {0x63, 0b000, noFunct, FormatB},
	"bne":  {0x63, 0b001, noFunct, FormatB},
	"blt":  {0x63, 0b100, noFunct, FormatB},
	"bge":  {0x63, 0b101, noFunct, FormatB},
	"bltu": {0x63, 0b110, noFunct, FormatB},
	"bgeu": {0x63, 0b111, noFunct, FormatB},

	// Upper immediate
	"lui":   {0x37, noFunct, noFunct, FormatU},
	"auipc": {0x17, noFunct, noFunct, FormatU},

	// Jump
	"jal": {0x6F, noFunct, noFunct, FormatJ},

	// RV32F
	"flw": {0x07, 0b010, noFunct, FormatIFLoad},
	"fsw": {0x27, 0b010, noFunct, FormatSFStore},

	"fadd.s": {0x53, 0b000, 0b0000000, FormatRFloat},
	"fsub.s": {0x53, 0b000, 0b0000100, FormatRFloat},
	"fmul.s": {0x53, 0b000, 0b0001000, FormatRFloat},
	"fdiv.s": {0x53, 0b000, 0b0001100, FormatRFloat},

	"fsqrt.s": {0x53, 0b000, 0b0101100, FormatRFloatUnary},

	"fcvt.w.s": {0x53, 0b000, 0b1100000, FormatRFloatConv},
	"fcvt.s.w": {0x53, 0b000, 0b1101000, FormatRFloatConv},
}

// registers maps every architectural register name to its 5-bit index.
// Integer names (x0..x31, ABI aliases) and float names (f0..f31) share the
// table; the caller knows from the operand's syntactic position which file
// a given name indexes into.
var registers = buildRegisterTable()

func buildRegisterTable() map[string]int {
	regs := make(map[string]int, 96)
	for i := 0; i < 32; i++ {
		regs[numberedName("x", i)] = i
		regs[numberedName("f", i)] = i
	}

	aliases := map[string]int{
		"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
		"t0": 5, "t1": 6, "t2": 7,
		"s0": 8, "fp": 8, "s1": 9,
		"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
		"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
		"t3": 28, "t4": 29, "t5": 30, "t6": 31,
	}
	for name, idx := range aliases {
		regs[name] = idx
	}
	return regs
}

func numberedName(prefix string, i int) string {
	digits := [2]byte{byte('0' + i/10), byte('0' + i%10)}
	if i < 10 {
		return prefix + string(digits[1:])
	}
	return prefix + string(digits[:])
}

// lookupRegister resolves a register operand (case-insensitive) to its
// numeric index.
func lookupRegister(name string) (int, bool) {
	idx, ok := registers[strings.ToLower(name)]
	return idx, ok
}

// lookupOpcode resolves a mnemonic (case-insensitive) to its encoding entry.
func lookupOpcode(mnemonic string) (opcodeEntry, bool) {
	entry, ok := opcodes[strings.ToLower(mnemonic)]
	return entry, ok
}
