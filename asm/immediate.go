package asm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseLiteral parses a signed integer literal in decimal, 0x hex, 0o octal
// or 0b binary notation, returning its 32-bit two's-complement value.
func parseLiteral(token string) (int32, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, fmt.Errorf("empty immediate")
	}

	neg := false
	switch token[0] {
	case '-':
		neg, token = true, token[1:]
	case '+':
		token = token[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(token, "0x"), strings.HasPrefix(token, "0X"):
		base, token = 16, token[2:]
	case strings.HasPrefix(token, "0o"), strings.HasPrefix(token, "0O"):
		base, token = 8, token[2:]
	case strings.HasPrefix(token, "0b"), strings.HasPrefix(token, "0B"):
		base, token = 2, token[2:]
	}

	v, err := strconv.ParseUint(token, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric literal: %w", err)
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("literal exceeds 32 bits")
	}
	if neg {
		if v > 1<<31 {
			return 0, fmt.Errorf("negated literal exceeds 32 bits")
		}
		return int32(-int64(v)), nil
	}
	return int32(uint32(v)), nil
}

// signExtend interprets the low `bits` bits of value as two's-complement
// and sign-extends the result to a full int32.
func signExtend(value uint32, bits int) int32 {
	shift := 32 - uint(bits)
	return int32(value<<shift) >> shift
}

// parseImmediate parses an immediate operand for the encoder: either a
// plain literal or a %hi(label)/%lo(label) relocation modifier, per
// spec.md §4.5. The %hi bias compensates for %lo's sign-extension so a
// lui+addi pair reconstructs the label's address exactly.
func (e *encoder) parseImmediate(token string, line int) (int32, error) {
	token = strings.TrimSpace(token)

	if rest, ok := strings.CutPrefix(token, "%hi("); ok {
		label := strings.TrimSuffix(rest, ")")
		addr, err := e.symbols.Get(label)
		if err != nil {
			return 0, newError(ErrorUnknownLabel, line, "%v", err)
		}
		return int32((addr + 0x800) >> 12), nil
	}
	if rest, ok := strings.CutPrefix(token, "%lo("); ok {
		label := strings.TrimSuffix(rest, ")")
		addr, err := e.symbols.Get(label)
		if err != nil {
			return 0, newError(ErrorUnknownLabel, line, "%v", err)
		}
		return signExtend(addr&0xFFF, 12), nil
	}

	imm, err := parseLiteral(token)
	if err != nil {
		return 0, newError(ErrorMalformedOperand, line, "invalid immediate %q: %v", token, err)
	}
	return imm, nil
}
