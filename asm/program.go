package asm

import "strings"

// statement is one cleaned, classified line of source: an optional label, a
// directive or mnemonic name, and its raw unsplit operand text.
type statement struct {
	Line        int
	Label       string
	Name        string // mnemonic, or ".directive" name; empty for label-only lines
	OperandsRaw string
}

// parseStatements cleans and classifies every non-blank line of source text.
func parseStatements(source string) []statement {
	var out []statement
	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		label, remainder, hasLabel := splitLabel(line)
		if hasLabel {
			line = remainder
		}

		stmt := statement{Line: lineNo, Label: label}
		if line == "" {
			out = append(out, stmt)
			continue
		}

		stmt.Name, stmt.OperandsRaw = splitFields(line)
		out = append(out, stmt)
	}
	return out
}

// splitLabel extracts a leading "label:" prefix from a cleaned line. A
// label is a non-empty run of characters containing no whitespace, per
// spec.md §3; memory operands (offset(reg)) and relocation modifiers
// (%hi(label)) never contain ':', so a bare colon search is unambiguous.
func splitLabel(line string) (label, remainder string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, false
	}
	candidate := line[:idx]
	if candidate == "" || strings.ContainsAny(candidate, " \t") {
		return "", line, false
	}
	return candidate, strings.TrimSpace(line[idx+1:]), true
}

func isDirective(name string) bool {
	return strings.HasPrefix(name, ".")
}
