package asm

import "strings"

// Options customizes assembly behaviour beyond spec.md's pure default:
// whether RV32F mnemonics are accepted, and where the location counter
// starts.
type Options struct {
	// AllowFloat rejects any RV32F mnemonic with UnknownMnemonic when
	// false. Hosts gate this from config.Config.Assembler.AllowFloat.
	AllowFloat bool

	// BaseAddress overrides the default 0x1000 load address / Pass 1
	// origin. Zero means "use the default".
	BaseAddress uint32
}

// DefaultOptions returns the options spec.md's plain Assemble uses:
// float instructions accepted, origin at 0x1000.
func DefaultOptions() Options {
	return Options{AllowFloat: true, BaseAddress: baseAddress}
}

// Assemble translates RV32 assembly source text into a flat little-endian
// binary image loadable at address 0x1000. It is a pure function of its
// input and aborts on the first error encountered in either pass, per
// spec.md §7's policy.
func Assemble(source string) ([]byte, error) {
	image, _, err := AssembleWithOptions(source, DefaultOptions())
	return image, err
}

// AssembleWithSymbols behaves like Assemble but also returns the completed
// symbol table, for hosts that want to display it (e.g. cmd/rv32's symbols
// subcommand).
func AssembleWithSymbols(source string) ([]byte, *SymbolTable, error) {
	return AssembleWithOptions(source, DefaultOptions())
}

// AssembleWithOptions is the configurable entry point used by hosts that
// carry a config.Config: it gates RV32F acceptance and may relocate the
// program's origin.
func AssembleWithOptions(source string, opts Options) ([]byte, *SymbolTable, error) {
	origin := opts.BaseAddress
	if origin == 0 {
		origin = baseAddress
	}

	stmts := parseStatements(source)

	if !opts.AllowFloat {
		if err := rejectFloat(stmts); err != nil {
			return nil, nil, err
		}
	}

	symtab, err := resolveSymbols(stmts, origin)
	if err != nil {
		return nil, nil, err
	}

	enc := &encoder{symbols: symtab}
	image, err := enc.encodeAll(stmts, origin)
	if err != nil {
		return nil, nil, err
	}
	return image, symtab, nil
}

// rejectFloat raises UnknownMnemonic for any RV32F instruction when the
// assembler is configured not to accept them.
func rejectFloat(stmts []statement) error {
	for _, stmt := range stmts {
		if stmt.Name == "" || isDirective(stmt.Name) {
			continue
		}
		entry, ok := lookupOpcode(stmt.Name)
		if !ok {
			continue // unknown mnemonics are reported by the real passes
		}
		switch entry.Format {
		case FormatRFloat, FormatRFloatUnary, FormatRFloatConv, FormatIFLoad, FormatSFStore:
			return newError(ErrorUnknownMnemonic, stmt.Line, "floating-point instruction %q is disabled by configuration", strings.ToLower(stmt.Name))
		}
	}
	return nil
}
