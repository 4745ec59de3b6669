package asm

import "strings"

// cleanLine strips a trailing '#' comment and surrounding whitespace from a
// single line of source. Blank results are the caller's signal to skip the
// line entirely.
func cleanLine(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// splitFields splits a cleaned line into its mnemonic and raw operand text,
// treating commas as whitespace the way spec.md §4.1 requires.
func splitFields(line string) (mnemonic string, rest string) {
	line = strings.ReplaceAll(line, ",", " ")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	mnemonic = fields[0]
	if len(fields) > 1 {
		rest = strings.Join(fields[1:], " ")
	}
	return mnemonic, rest
}

// splitOperands splits cleaned operand text into individual operand tokens,
// commas and run of whitespace both acting as separators.
func splitOperands(rest string) []string {
	rest = strings.ReplaceAll(rest, ",", " ")
	return strings.Fields(rest)
}
