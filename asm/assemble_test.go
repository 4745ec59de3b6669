package asm_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/MaryamEghbal/riscv/asm"
)

func wordAt(t *testing.T, image []byte, index int) uint32 {
	t.Helper()
	off := index * 4
	if off+4 > len(image) {
		t.Fatalf("image has only %d bytes, want word at index %d", len(image), index)
	}
	return binary.LittleEndian.Uint32(image[off : off+4])
}

func TestAssembleRType(t *testing.T) {
	image, err := asm.Assemble("add x3, x1, x2")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(image))
	}
	got := wordAt(t, image, 0)
	want := uint32(0b0000000_00010_00001_000_00011_0110011)
	if got != want {
		t.Errorf("add x3, x1, x2 = 0x%08x, want 0x%08x", got, want)
	}
}

func TestAssembleSubUsesAltFunct7(t *testing.T) {
	image, err := asm.Assemble("sub x3, x1, x2")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	got := wordAt(t, image, 0)
	want := uint32(0b0100000_00010_00001_000_00011_0110011)
	if got != want {
		t.Errorf("sub x3, x1, x2 = 0x%08x, want 0x%08x", got, want)
	}
}

func TestAssembleAddi(t *testing.T) {
	image, err := asm.Assemble("addi x5, x0, -1")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	got := wordAt(t, image, 0)
	want := uint32(0xFFF00293)
	if got != want {
		t.Errorf("addi x5, x0, -1 = 0x%08x, want 0x%08x", got, want)
	}
}

func TestAssembleLoadStore(t *testing.T) {
	image, err := asm.Assemble("lw x5, 4(x6)\nsw x7, -4(x6)")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(image))
	}
}

func TestAssembleBranchToLabel(t *testing.T) {
	src := "beq x1, x2, target\naddi x0, x0, 0\ntarget: addi x3, x0, 1"
	image, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(image))
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := asm.Assemble("frobnicate x1, x2")
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
	var aerr *asm.AssemblyError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *asm.AssemblyError, got %T", err)
	}
	if aerr.Kind != asm.ErrorUnknownMnemonic {
		t.Errorf("Kind = %v, want ErrorUnknownMnemonic", aerr.Kind)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	_, err := asm.Assemble("a: addi x0, x0, 0\na: addi x0, x0, 0")
	if err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	_, err := asm.Assemble("jal x1, nowhere")
	if err == nil {
		t.Fatal("expected an error for an undefined label")
	}
}

func TestAssembleImmediateOutOfRange(t *testing.T) {
	_, err := asm.Assemble("addi x1, x0, 4096")
	if err == nil {
		t.Fatal("expected an error for an out-of-range 12-bit immediate")
	}
}

func TestLiExpansionShort(t *testing.T) {
	image, err := asm.Assemble("li x5, 2047")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 4 {
		t.Fatalf("li with a 12-bit-representable literal should expand to 4 bytes, got %d", len(image))
	}
}

func TestLiExpansionLong(t *testing.T) {
	image, err := asm.Assemble("li x5, 0x12345678")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 8 {
		t.Fatalf("li with an out-of-range literal should expand to 8 bytes, got %d", len(image))
	}
}

func TestLaResolvesLabelAddress(t *testing.T) {
	src := "la x6, data\nlw x7, 0(x6)\ndata: .word -1"
	image, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// la (8 bytes) + lw (4 bytes) + .word (4 bytes) = 16 bytes
	if len(image) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(image))
	}
	dataWord := wordAt(t, image, 3)
	if dataWord != 0xFFFFFFFF {
		t.Errorf("data word = 0x%08x, want 0xFFFFFFFF", dataWord)
	}
}

func TestPass1Pass2AgreeOnLength(t *testing.T) {
	src := "li x1, 100\nli x2, 0x7FFFFFFF\nla x3, end\nend: addi x0, x0, 0"
	image, symtab, err := asm.AssembleWithSymbols(src)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	addr, err := symtab.Get("end")
	if err != nil {
		t.Fatalf("symbol lookup failed: %v", err)
	}
	// li x1,100 (4) + li x2,big (8) + la (8) = 20 bytes before "end"
	if addr != 0x1000+20 {
		t.Errorf("end = 0x%x, want 0x%x", addr, 0x1000+20)
	}
	if len(image) != 24 {
		t.Fatalf("expected 24 bytes total, got %d", len(image))
	}
}

func TestAssembleDirectives(t *testing.T) {
	image, err := asm.Assemble(".word 1, -1\n.half 2\n.byte 3\n.align 2")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	// 8 (.word) + 2 (.half) + 1 (.byte) = 11 bytes, then .align 2 pads to
	// the next multiple of 4 from offset 0x1000+11 -> one byte of padding.
	if len(image) != 12 {
		t.Fatalf("expected 12 bytes after alignment padding, got %d", len(image))
	}
}

func TestAssembleShStoresLowHalf(t *testing.T) {
	image, err := asm.Assemble("sh x5, 0(x6)")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(image))
	}
	// funct3 0b001 selects the halfword store, which writes only the low
	// 16 bits of rs2.
	got := wordAt(t, image, 0)
	want := uint32(0b0000000_00101_00110_001_00000_0100011)
	if got != want {
		t.Errorf("sh x5, 0(x6) = 0x%08x, want 0x%08x", got, want)
	}
}

func TestAssemblePseudoNopMvNotNeg(t *testing.T) {
	image, err := asm.Assemble("nop\nmv x1, x2\nnot x3, x4\nneg x5, x6")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(image))
	}
}

func TestAssembleRV32FRoundTrip(t *testing.T) {
	image, err := asm.Assemble("flw f1, 0(x5)\nfadd.s f2, f1, f1\nfsw f2, 4(x5)")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(image) != 12 {
		t.Fatalf("expected 12 bytes, got %d", len(image))
	}
}

func TestAssembleWithOptionsRejectsFloat(t *testing.T) {
	opts := asm.Options{AllowFloat: false, BaseAddress: 0x1000}
	_, _, err := asm.AssembleWithOptions("fadd.s f1, f2, f3", opts)
	if err == nil {
		t.Fatal("expected an error when RV32F is disabled by options")
	}
}

func TestAssembleFullOpImmSet(t *testing.T) {
	cases := []struct {
		src  string
		want uint32
	}{
		{"ori x5, x1, 7", 0b000000000111_00001_110_00101_0010011},
		{"andi x5, x1, 7", 0b000000000111_00001_111_00101_0010011},
		{"slti x5, x1, 7", 0b000000000111_00001_010_00101_0010011},
		{"sltiu x5, x1, 7", 0b000000000111_00001_011_00101_0010011},
		{"slli x5, x1, 3", 0b0000000_00011_00001_001_00101_0010011},
		{"srli x5, x1, 3", 0b0000000_00011_00001_101_00101_0010011},
		{"srai x5, x1, 3", 0b0100000_00011_00001_101_00101_0010011},
	}
	for _, tc := range cases {
		image, err := asm.Assemble(tc.src)
		if err != nil {
			t.Fatalf("Assemble(%q) failed: %v", tc.src, err)
		}
		got := wordAt(t, image, 0)
		if got != tc.want {
			t.Errorf("%s = 0x%08x, want 0x%08x", tc.src, got, tc.want)
		}
	}
}

func TestAssembleFullOpSet(t *testing.T) {
	cases := []struct {
		src  string
		want uint32
	}{
		{"or x3, x1, x2", 0b0000000_00010_00001_110_00011_0110011},
		{"and x3, x1, x2", 0b0000000_00010_00001_111_00011_0110011},
		{"xor x3, x1, x2", 0b0000000_00010_00001_100_00011_0110011},
		{"sll x3, x1, x2", 0b0000000_00010_00001_001_00011_0110011},
		{"srl x3, x1, x2", 0b0000000_00010_00001_101_00011_0110011},
		{"sra x3, x1, x2", 0b0100000_00010_00001_101_00011_0110011},
		{"slt x3, x1, x2", 0b0000000_00010_00001_010_00011_0110011},
		{"sltu x3, x1, x2", 0b0000000_00010_00001_011_00011_0110011},
	}
	for _, tc := range cases {
		image, err := asm.Assemble(tc.src)
		if err != nil {
			t.Fatalf("Assemble(%q) failed: %v", tc.src, err)
		}
		got := wordAt(t, image, 0)
		if got != tc.want {
			t.Errorf("%s = 0x%08x, want 0x%08x", tc.src, got, tc.want)
		}
	}
}

func TestAssembleFullBranchSet(t *testing.T) {
	// Each branch targets the very next instruction, a fixed +4 offset, so
	// only funct3 varies across cases.
	cases := []struct {
		mnemonic string
		funct3   uint32
	}{
		{"blt", 0b100},
		{"bge", 0b101},
		{"bltu", 0b110},
		{"bgeu", 0b111},
	}
	for _, tc := range cases {
		src := tc.mnemonic + " x1, x2, target\ntarget: addi x0, x0, 0"
		image, err := asm.Assemble(src)
		if err != nil {
			t.Fatalf("Assemble(%q) failed: %v", src, err)
		}
		got := wordAt(t, image, 0)
		wantFunct3 := tc.funct3 << 12
		if got&0x7000 != wantFunct3 {
			t.Errorf("%s funct3 field = 0x%x, want 0x%x", tc.mnemonic, got&0x7000, wantFunct3)
		}
	}
}

func TestAssembleFullMulDivSet(t *testing.T) {
	cases := []struct {
		src  string
		want uint32
	}{
		{"mulhsu x3, x1, x2", 0b0000001_00010_00001_010_00011_0110011},
		{"mulhu x3, x1, x2", 0b0000001_00010_00001_011_00011_0110011},
		{"divu x3, x1, x2", 0b0000001_00010_00001_101_00011_0110011},
		{"remu x3, x1, x2", 0b0000001_00010_00001_111_00011_0110011},
	}
	for _, tc := range cases {
		image, err := asm.Assemble(tc.src)
		if err != nil {
			t.Fatalf("Assemble(%q) failed: %v", tc.src, err)
		}
		got := wordAt(t, image, 0)
		if got != tc.want {
			t.Errorf("%s = 0x%08x, want 0x%08x", tc.src, got, tc.want)
		}
	}
}

func TestAssembleWithOptionsCustomBaseAddress(t *testing.T) {
	opts := asm.Options{AllowFloat: true, BaseAddress: 0x2000}
	_, symtab, err := asm.AssembleWithOptions("here: addi x0, x0, 0", opts)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	addr, err := symtab.Get("here")
	if err != nil {
		t.Fatalf("symbol lookup failed: %v", err)
	}
	if addr != 0x2000 {
		t.Errorf("here = 0x%x, want 0x2000", addr)
	}
}

