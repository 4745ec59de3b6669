package asm

import (
	"fmt"
	"strings"
)

// pseudoExpansion is a single real instruction produced by expanding a
// pseudo-instruction.
type pseudoExpansion struct {
	Mnemonic string
	Operands []string
}

// isPseudo reports whether mnemonic names one of the pseudo-instructions
// spec.md §4.3 defines.
func isPseudo(mnemonic string) bool {
	switch strings.ToLower(mnemonic) {
	case "nop", "mv", "not", "neg", "li", "la":
		return true
	}
	return false
}

// expandPseudo rewrites one pseudo-instruction into one or two canonical
// instructions.
func expandPseudo(mnemonic string, operands []string, line int) ([]pseudoExpansion, error) {
	switch strings.ToLower(mnemonic) {
	case "nop":
		return []pseudoExpansion{{"addi", []string{"x0", "x0", "0"}}}, nil

	case "mv":
		if len(operands) != 2 {
			return nil, newError(ErrorMalformedOperand, line, "mv expects 2 operands, got %d", len(operands))
		}
		return []pseudoExpansion{{"addi", []string{operands[0], operands[1], "0"}}}, nil

	case "not":
		if len(operands) != 2 {
			return nil, newError(ErrorMalformedOperand, line, "not expects 2 operands, got %d", len(operands))
		}
		return []pseudoExpansion{{"xori", []string{operands[0], operands[1], "-1"}}}, nil

	case "neg":
		if len(operands) != 2 {
			return nil, newError(ErrorMalformedOperand, line, "neg expects 2 operands, got %d", len(operands))
		}
		return []pseudoExpansion{{"sub", []string{operands[0], "x0", operands[1]}}}, nil

	case "li":
		if len(operands) != 2 {
			return nil, newError(ErrorMalformedOperand, line, "li expects 2 operands, got %d", len(operands))
		}
		imm, err := parseLiteral(operands[1])
		if err != nil {
			return nil, newError(ErrorMalformedOperand, line, "invalid immediate %q: %v", operands[1], err)
		}
		if imm >= -2048 && imm <= 2047 {
			return []pseudoExpansion{{"addi", []string{operands[0], "x0", operands[1]}}}, nil
		}
		upper := (uint32(imm) + 0x800) >> 12 & 0xFFFFF
		lower := signExtend(uint32(imm)&0xFFF, 12)
		return []pseudoExpansion{
			{"lui", []string{operands[0], fmt.Sprintf("%d", upper)}},
			{"addi", []string{operands[0], operands[0], fmt.Sprintf("%d", lower)}},
		}, nil

	}
	// la is expanded directly by the encoder (encodeLoadAddress), since its
	// hi/lo split depends on the auipc instruction's own address rather
	// than being a context-free rewrite.
	return nil, newError(ErrorUnknownMnemonic, line, "unknown pseudo-instruction %q", mnemonic)
}

// pseudoLength returns the number of bytes a pseudo-instruction will expand
// to, without requiring a symbol table: la is always 8 bytes (auipc+addi);
// li is 4 bytes when its literal fits the 12-bit signed immediate and 8
// otherwise. Both passes call this so their location counters never
// diverge, per spec.md §4.3's determinism requirement.
func pseudoLength(mnemonic string, operands []string, line int) (int, error) {
	switch strings.ToLower(mnemonic) {
	case "nop", "mv", "not", "neg":
		return 4, nil
	case "la":
		return 8, nil
	case "li":
		if len(operands) != 2 {
			return 0, newError(ErrorMalformedOperand, line, "li expects 2 operands, got %d", len(operands))
		}
		imm, err := parseLiteral(operands[1])
		if err != nil {
			return 0, newError(ErrorMalformedOperand, line, "invalid immediate %q: %v", operands[1], err)
		}
		if imm >= -2048 && imm <= 2047 {
			return 4, nil
		}
		return 8, nil
	}
	return 0, newError(ErrorUnknownMnemonic, line, "unknown pseudo-instruction %q", mnemonic)
}
