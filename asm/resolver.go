package asm

// baseAddress is the default load address and Pass 1 location-counter
// origin, per spec.md §3. Callers that need a different origin use
// AssembleWithOptions.
const baseAddress = 0x1000

// resolveSymbols is Pass 1: it walks the statement list once, computing
// each label's address without emitting any bytes.
func resolveSymbols(stmts []statement, origin uint32) (*SymbolTable, error) {
	symtab := newSymbolTable()
	pc := origin

	for _, stmt := range stmts {
		if stmt.Label != "" {
			if err := symtab.Define(stmt.Label, pc, stmt.Line); err != nil {
				return nil, err
			}
		}
		if stmt.Name == "" {
			continue
		}

		if isDirective(stmt.Name) {
			size, err := directiveSize(stmt, pc)
			if err != nil {
				return nil, err
			}
			pc += size
			continue
		}

		n, err := instructionLength(stmt)
		if err != nil {
			return nil, err
		}
		pc += n
	}
	return symtab, nil
}

// instructionLength returns the number of bytes a real or pseudo
// instruction occupies, without consulting the symbol table, so Pass 1 and
// Pass 2 always agree (spec.md §4.3).
func instructionLength(stmt statement) (uint32, error) {
	if isPseudo(stmt.Name) {
		n, err := pseudoLength(stmt.Name, splitOperands(stmt.OperandsRaw), stmt.Line)
		if err != nil {
			return 0, err
		}
		return uint32(n), nil
	}
	if _, ok := lookupOpcode(stmt.Name); !ok {
		return 0, newError(ErrorUnknownMnemonic, stmt.Line, "unknown instruction %q", stmt.Name)
	}
	return 4, nil
}

// directiveSize returns how many bytes a directive statement advances the
// location counter by.
func directiveSize(stmt statement, pc uint32) (uint32, error) {
	args := splitOperands(stmt.OperandsRaw)
	switch stmt.Name {
	case ".word":
		return uint32(4 * len(args)), nil
	case ".half":
		return uint32(2 * len(args)), nil
	case ".byte":
		return uint32(len(args)), nil
	case ".align":
		return alignPadding(args, pc, stmt.Line)
	default:
		return 0, newError(ErrorMalformedOperand, stmt.Line, "unknown directive %q", stmt.Name)
	}
}

// alignPadding computes the zero-padding needed to reach the next 2^N
// boundary, per spec.md §4.4.
func alignPadding(args []string, pc uint32, line int) (uint32, error) {
	if len(args) != 1 {
		return 0, newError(ErrorMalformedOperand, line, ".align expects exactly one operand, got %d", len(args))
	}
	n, err := parseLiteral(args[0])
	if err != nil || n < 0 {
		return 0, newError(ErrorMalformedOperand, line, "invalid alignment %q", args[0])
	}
	alignment := uint32(1) << uint32(n)
	return (alignment - (pc % alignment)) % alignment, nil
}
