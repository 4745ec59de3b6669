package asm

import "strings"

// reg resolves an integer-register operand token.
func (e *encoder) reg(token string, line int) (uint32, error) {
	idx, ok := lookupRegister(token)
	if !ok {
		return 0, newError(ErrorUnknownRegister, line, "unknown register %q", token)
	}
	return uint32(idx), nil
}

// parseMemOperand splits an "offset(reg)" operand into its two parts.
func parseMemOperand(token string, line int) (offset, base string, err error) {
	open := strings.IndexByte(token, '(')
	if open < 0 || !strings.HasSuffix(token, ")") {
		return "", "", newError(ErrorMalformedOperand, line, "expected offset(reg), got %q", token)
	}
	offset = strings.TrimSpace(token[:open])
	base = strings.TrimSpace(token[open+1 : len(token)-1])
	if offset == "" {
		offset = "0"
	}
	return offset, base, nil
}

func expect(operands []string, n int, line int, mnemonic string) error {
	if len(operands) != n {
		return newError(ErrorMalformedOperand, line, "%s expects %d operands, got %d", mnemonic, n, len(operands))
	}
	return nil
}

// encodeR packs the register-register R-type layout: funct7|rs2|rs1|funct3|rd|opcode.
func (e *encoder) encodeR(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 3, line, "r-type instruction"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs2, err := e.reg(operands[2], line)
	if err != nil {
		return 0, err
	}
	return uint32(entry.Funct7)<<25 | rs2<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeI packs the OP-IMM I-type layout. slli/srli/srai use a 5-bit shift
// amount with the high 7 bits acting as a funct7 discriminator instead of a
// sign-extended 12-bit immediate.
func (e *encoder) encodeI(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 3, line, "i-type instruction"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}

	if entry.Funct7 != noFunct {
		shamt, err := e.parseImmediate(operands[2], line)
		if err != nil {
			return 0, err
		}
		if shamt < 0 || shamt > 31 {
			return 0, newError(ErrorImmediateOutOfRange, line, "shift amount %d out of range", shamt)
		}
		return uint32(entry.Funct7)<<25 | uint32(shamt)<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
	}

	imm, err := e.parseImmediate(operands[2], line)
	if err != nil {
		return 0, err
	}
	if imm < -2048 || imm > 2047 {
		return 0, newError(ErrorImmediateOutOfRange, line, "immediate %d out of 12-bit signed range", imm)
	}
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeILoad packs lw/lh's "rd, offset(rs1)" I-type layout.
func (e *encoder) encodeILoad(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "load instruction"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	offsetTok, baseTok, err := parseMemOperand(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(baseTok, line)
	if err != nil {
		return 0, err
	}
	imm, err := e.parseImmediate(offsetTok, line)
	if err != nil {
		return 0, err
	}
	if imm < -2048 || imm > 2047 {
		return 0, newError(ErrorImmediateOutOfRange, line, "offset %d out of 12-bit signed range", imm)
	}
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeS packs sw/sh's "rs2, offset(rs1)" S-type layout: the 12-bit
// immediate is split across bits [31:25] and [11:7].
func (e *encoder) encodeS(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "store instruction"); err != nil {
		return 0, err
	}
	rs2, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	offsetTok, baseTok, err := parseMemOperand(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(baseTok, line)
	if err != nil {
		return 0, err
	}
	imm, err := e.parseImmediate(offsetTok, line)
	if err != nil {
		return 0, err
	}
	if imm < -2048 || imm > 2047 {
		return 0, newError(ErrorImmediateOutOfRange, line, "offset %d out of 12-bit signed range", imm)
	}
	u := uint32(imm)
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return hi<<25 | rs2<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | lo<<7 | entry.Opcode, nil
}

// encodeB packs a branch's B-type layout: a 13-bit signed, always-even
// byte offset scattered across bits 31, 7, 30:25, 11:8, with bit 0 implicit
// zero.
func (e *encoder) encodeB(entry opcodeEntry, operands []string, line int, pc uint32) (uint32, error) {
	if err := expect(operands, 3, line, "branch instruction"); err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs2, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}
	target, err := e.branchTarget(operands[2], line, pc)
	if err != nil {
		return 0, err
	}
	if target%2 != 0 {
		return 0, newError(ErrorImmediateOutOfRange, line, "branch offset %d is not even", target)
	}
	if target < -4096 || target > 4095 {
		return 0, newError(ErrorImmediateOutOfRange, line, "branch offset %d out of 13-bit signed range", target)
	}
	u := uint32(target)
	bit12 := (u >> 12) & 0x1
	bit11 := (u >> 11) & 0x1
	bits10_5 := (u >> 5) & 0x3F
	bits4_1 := (u >> 1) & 0xF
	return bit12<<31 | bits10_5<<25 | rs2<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | bits4_1<<8 | bit11<<7 | entry.Opcode, nil
}

// encodeU packs lui/auipc's U-type layout: a 20-bit value placed verbatim
// into bits 31:12. %hi(label) resolves to an absolute field of the label's
// address (spec §4.5); the `la` expansion compensates for auipc's own
// pc-relative addition at the point it synthesizes its operands, so this
// encoder never needs to see pc.
func (e *encoder) encodeU(mnemonic string, entry opcodeEntry, operands []string, line int, pc uint32) (uint32, error) {
	if err := expect(operands, 2, line, mnemonic); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	imm, err := e.parseImmediate(operands[1], line)
	if err != nil {
		return 0, err
	}
	if imm < 0 || imm > 0xFFFFF {
		return 0, newError(ErrorImmediateOutOfRange, line, "upper immediate %d out of 20-bit range", imm)
	}
	return uint32(imm)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeJ packs jal's J-type layout: a 21-bit signed, always-even byte
// offset scattered across bits 31, 19:12, 20, 30:21, with bit 0 implicit
// zero.
func (e *encoder) encodeJ(entry opcodeEntry, operands []string, line int, pc uint32) (uint32, error) {
	if err := expect(operands, 2, line, "jal"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	target, err := e.branchTarget(operands[1], line, pc)
	if err != nil {
		return 0, err
	}
	if target%2 != 0 {
		return 0, newError(ErrorImmediateOutOfRange, line, "jump offset %d is not even", target)
	}
	if target < -1048576 || target > 1048575 {
		return 0, newError(ErrorImmediateOutOfRange, line, "jump offset %d out of 21-bit signed range", target)
	}
	u := uint32(target)
	bit20 := (u >> 20) & 0x1
	bits19_12 := (u >> 12) & 0xFF
	bit11 := (u >> 11) & 0x1
	bits10_1 := (u >> 1) & 0x3FF
	return bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 | rd<<7 | entry.Opcode, nil
}

// branchTarget resolves a branch/jump operand into its byte offset from pc.
// A numeric literal is taken as the offset itself; anything else is looked
// up as a label naming the target address.
func (e *encoder) branchTarget(token string, line int, pc uint32) (int32, error) {
	token = strings.TrimSpace(token)
	if lit, err := parseLiteral(token); err == nil {
		return lit, nil
	}
	addr, err := e.symbols.Get(token)
	if err != nil {
		return 0, newError(ErrorUnknownLabel, line, "%v", err)
	}
	return int32(addr - pc), nil
}

// encodeRFloat packs the fadd.s/fsub.s/fmul.s/fdiv.s R-type float layout:
// rs2 is the second float operand, funct7 selects the operation.
func (e *encoder) encodeRFloat(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 3, line, "float r-type instruction"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs2, err := e.reg(operands[2], line)
	if err != nil {
		return 0, err
	}
	return uint32(entry.Funct7)<<25 | rs2<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeRFloatUnary packs fsqrt.s, which has only rd and rs1; rs2's field
// is hardwired to zero.
func (e *encoder) encodeRFloatUnary(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "fsqrt.s"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}
	return uint32(entry.Funct7)<<25 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeRFloatConv packs fcvt.w.s/fcvt.s.w: funct7 selects the conversion
// direction, and the rs2 field is hardwired to zero.
func (e *encoder) encodeRFloatConv(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "float conversion instruction"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(operands[1], line)
	if err != nil {
		return 0, err
	}
	return uint32(entry.Funct7)<<25 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeIFLoad packs flw's "fd, offset(rs1)" layout, identical in shape to
// an integer load but targeting the float register file.
func (e *encoder) encodeIFLoad(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "flw"); err != nil {
		return 0, err
	}
	rd, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	offsetTok, baseTok, err := parseMemOperand(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(baseTok, line)
	if err != nil {
		return 0, err
	}
	imm, err := e.parseImmediate(offsetTok, line)
	if err != nil {
		return 0, err
	}
	if imm < -2048 || imm > 2047 {
		return 0, newError(ErrorImmediateOutOfRange, line, "offset %d out of 12-bit signed range", imm)
	}
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | rd<<7 | entry.Opcode, nil
}

// encodeSFStore packs fsw's "fs2, offset(rs1)" S-type layout.
func (e *encoder) encodeSFStore(entry opcodeEntry, operands []string, line int) (uint32, error) {
	if err := expect(operands, 2, line, "fsw"); err != nil {
		return 0, err
	}
	rs2, err := e.reg(operands[0], line)
	if err != nil {
		return 0, err
	}
	offsetTok, baseTok, err := parseMemOperand(operands[1], line)
	if err != nil {
		return 0, err
	}
	rs1, err := e.reg(baseTok, line)
	if err != nil {
		return 0, err
	}
	imm, err := e.parseImmediate(offsetTok, line)
	if err != nil {
		return 0, err
	}
	if imm < -2048 || imm > 2047 {
		return 0, newError(ErrorImmediateOutOfRange, line, "offset %d out of 12-bit signed range", imm)
	}
	u := uint32(imm)
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return hi<<25 | rs2<<20 | rs1<<15 | uint32(entry.Funct3)<<12 | lo<<7 | entry.Opcode, nil
}
