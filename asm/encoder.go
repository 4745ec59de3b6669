package asm

import (
	"fmt"
	"strings"
)

// encoder is Pass 2: it re-walks the same statement list with a complete
// symbol table and emits bytes.
type encoder struct {
	symbols *SymbolTable
}

func (e *encoder) encodeAll(stmts []statement, origin uint32) ([]byte, error) {
	var out []byte
	pc := origin

	for _, stmt := range stmts {
		if stmt.Name == "" {
			continue
		}

		if isDirective(stmt.Name) {
			data, size, err := e.encodeDirective(stmt, pc)
			if err != nil {
				return nil, err
			}
			out = append(out, data...)
			pc += size
			continue
		}

		words, err := e.encodeInstruction(stmt, pc)
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			out = append(out, littleEndian32(w)...)
			pc += 4
		}
	}
	return out, nil
}

// encodeInstruction encodes a real or pseudo instruction statement into one
// or two 32-bit words.
func (e *encoder) encodeInstruction(stmt statement, pc uint32) ([]uint32, error) {
	if strings.EqualFold(stmt.Name, "la") {
		return e.encodeLoadAddress(stmt, pc)
	}

	if isPseudo(stmt.Name) {
		expansions, err := expandPseudo(stmt.Name, splitOperands(stmt.OperandsRaw), stmt.Line)
		if err != nil {
			return nil, err
		}
		words := make([]uint32, 0, len(expansions))
		addr := pc
		for _, exp := range expansions {
			w, err := e.encodeReal(exp.Mnemonic, exp.Operands, stmt.Line, addr)
			if err != nil {
				return nil, err
			}
			words = append(words, w)
			addr += 4
		}
		return words, nil
	}

	w, err := e.encodeReal(stmt.Name, splitOperands(stmt.OperandsRaw), stmt.Line, pc)
	if err != nil {
		return nil, err
	}
	return []uint32{w}, nil
}

// encodeLoadAddress expands `la rd, label` into `auipc rd, hi ; addi rd, rd,
// lo`, computing hi/lo from the offset between the label and the auipc's
// own address (rather than the label's absolute address) so that auipc's
// execution-time `rd = pc + imm_U` reconstructs the label exactly.
func (e *encoder) encodeLoadAddress(stmt statement, pc uint32) ([]uint32, error) {
	operands := splitOperands(stmt.OperandsRaw)
	if len(operands) != 2 {
		return nil, newError(ErrorMalformedOperand, stmt.Line, "la expects 2 operands, got %d", len(operands))
	}
	rd, label := operands[0], operands[1]

	addr, err := e.symbols.Get(label)
	if err != nil {
		return nil, newError(ErrorUnknownLabel, stmt.Line, "%v", err)
	}
	delta := addr - pc
	hi := (delta + 0x800) >> 12 & 0xFFFFF
	lo := signExtend(delta&0xFFF, 12)

	auipcWord, err := e.encodeReal("auipc", []string{rd, fmt.Sprintf("%d", hi)}, stmt.Line, pc)
	if err != nil {
		return nil, err
	}
	addiWord, err := e.encodeReal("addi", []string{rd, rd, fmt.Sprintf("%d", lo)}, stmt.Line, pc+4)
	if err != nil {
		return nil, err
	}
	return []uint32{auipcWord, addiWord}, nil
}

// encodeReal dispatches a single canonical instruction to its format
// encoder based on the static opcode table.
func (e *encoder) encodeReal(mnemonic string, operands []string, line int, pc uint32) (uint32, error) {
	entry, ok := lookupOpcode(mnemonic)
	if !ok {
		return 0, newError(ErrorUnknownMnemonic, line, "unknown instruction %q", mnemonic)
	}

	switch entry.Format {
	case FormatR:
		return e.encodeR(entry, operands, line)
	case FormatI:
		return e.encodeI(entry, operands, line)
	case FormatILoad:
		return e.encodeILoad(entry, operands, line)
	case FormatS:
		return e.encodeS(entry, operands, line)
	case FormatB:
		return e.encodeB(entry, operands, line, pc)
	case FormatU:
		return e.encodeU(mnemonic, entry, operands, line, pc)
	case FormatJ:
		return e.encodeJ(entry, operands, line, pc)
	case FormatRFloat:
		return e.encodeRFloat(entry, operands, line)
	case FormatRFloatUnary:
		return e.encodeRFloatUnary(entry, operands, line)
	case FormatRFloatConv:
		return e.encodeRFloatConv(entry, operands, line)
	case FormatIFLoad:
		return e.encodeIFLoad(entry, operands, line)
	case FormatSFStore:
		return e.encodeSFStore(entry, operands, line)
	default:
		return 0, newError(ErrorUnknownMnemonic, line, "unsupported format for %q", mnemonic)
	}
}

// encodeDirective encodes a data directive into its emitted bytes.
func (e *encoder) encodeDirective(stmt statement, pc uint32) ([]byte, uint32, error) {
	args := splitOperands(stmt.OperandsRaw)
	switch stmt.Name {
	case ".word":
		return e.encodeWords(args, stmt.Line)
	case ".half":
		return e.encodeHalves(args, stmt.Line)
	case ".byte":
		return e.encodeBytes(args, stmt.Line)
	case ".align":
		pad, err := alignPadding(args, pc, stmt.Line)
		if err != nil {
			return nil, 0, err
		}
		return make([]byte, pad), pad, nil
	default:
		return nil, 0, newError(ErrorMalformedOperand, stmt.Line, "unknown directive %q", stmt.Name)
	}
}

func (e *encoder) encodeWords(args []string, line int) ([]byte, uint32, error) {
	buf := make([]byte, 0, 4*len(args))
	for _, a := range args {
		v, err := parseLiteral(a)
		if err != nil {
			return nil, 0, newError(ErrorMalformedOperand, line, "invalid .word value %q: %v", a, err)
		}
		buf = append(buf, littleEndian32(uint32(v))...)
	}
	return buf, uint32(len(buf)), nil
}

func (e *encoder) encodeHalves(args []string, line int) ([]byte, uint32, error) {
	buf := make([]byte, 0, 2*len(args))
	for _, a := range args {
		v, err := parseLiteral(a)
		if err != nil {
			return nil, 0, newError(ErrorMalformedOperand, line, "invalid .half value %q: %v", a, err)
		}
		if v < -32768 || v > 65535 {
			return nil, 0, newError(ErrorImmediateOutOfRange, line, ".half value %d out of range", v)
		}
		buf = append(buf, littleEndian16(uint16(uint32(v)))...)
	}
	return buf, uint32(len(buf)), nil
}

func (e *encoder) encodeBytes(args []string, line int) ([]byte, uint32, error) {
	buf := make([]byte, 0, len(args))
	for _, a := range args {
		v, err := parseLiteral(a)
		if err != nil {
			return nil, 0, newError(ErrorMalformedOperand, line, "invalid .byte value %q: %v", a, err)
		}
		if v < -128 || v > 255 {
			return nil, 0, newError(ErrorImmediateOutOfRange, line, ".byte value %d out of range", v)
		}
		buf = append(buf, byte(uint32(v)))
	}
	return buf, uint32(len(buf)), nil
}

func littleEndian32(w uint32) []byte {
	return []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
}

func littleEndian16(h uint16) []byte {
	return []byte{byte(h), byte(h >> 8)}
}
