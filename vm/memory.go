package vm

import "fmt"

// DefaultMemorySize is the capacity of a freshly constructed Memory when
// the caller does not request a specific size.
const DefaultMemorySize = 64 * 1024

// Memory is a flat, fixed-capacity byte buffer addressed from zero. It
// performs no segmentation and no alignment enforcement: a misaligned
// word or halfword access simply reads or writes the requested bytes at
// that offset, per the simulator's relaxed memory model.
type Memory struct {
	Data []byte

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewMemory allocates a zeroed Memory of the given size.
func NewMemory(size uint32) *Memory {
	return &Memory{Data: make([]byte, size)}
}

// bounds reports whether the [addr, addr+n) range lies entirely within
// the buffer.
func (m *Memory) bounds(addr uint32, n uint32) error {
	if uint64(addr)+uint64(n) > uint64(len(m.Data)) {
		return fmt.Errorf("memory access out of bounds: addr=0x%x len=%d capacity=%d", addr, n, len(m.Data))
	}
	return nil
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(addr uint32) (byte, error) {
	if err := m.bounds(addr, 1); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return m.Data[addr], nil
}

// WriteByte writes a single byte.
func (m *Memory) WriteByte(addr uint32, value byte) error {
	if err := m.bounds(addr, 1); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.Data[addr] = value
	return nil
}

// ReadHalf reads 16 bits, little-endian.
func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	if err := m.bounds(addr, 2); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return uint16(m.Data[addr]) | uint16(m.Data[addr+1])<<8, nil
}

// WriteHalf writes the low 16 bits of value, little-endian.
func (m *Memory) WriteHalf(addr uint32, value uint16) error {
	if err := m.bounds(addr, 2); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.Data[addr] = byte(value)
	m.Data[addr+1] = byte(value >> 8)
	return nil
}

// ReadWord reads 32 bits, little-endian.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if err := m.bounds(addr, 4); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return uint32(m.Data[addr]) | uint32(m.Data[addr+1])<<8 |
		uint32(m.Data[addr+2])<<16 | uint32(m.Data[addr+3])<<24, nil
}

// WriteWord writes value, little-endian.
func (m *Memory) WriteWord(addr uint32, value uint32) error {
	if err := m.bounds(addr, 4); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.Data[addr] = byte(value)
	m.Data[addr+1] = byte(value >> 8)
	m.Data[addr+2] = byte(value >> 16)
	m.Data[addr+3] = byte(value >> 24)
	return nil
}

// LoadImage copies prog into memory starting at addr. It returns an error,
// and copies nothing, when prog does not fit.
func (m *Memory) LoadImage(addr uint32, prog []byte) error {
	if err := m.bounds(addr, uint32(len(prog))); err != nil {
		return fmt.Errorf("program image does not fit in memory: %w", err)
	}
	copy(m.Data[addr:], prog)
	return nil
}

// Reset zeroes every byte without reallocating the buffer.
func (m *Memory) Reset() {
	for i := range m.Data {
		m.Data[i] = 0
	}
	m.AccessCount, m.ReadCount, m.WriteCount = 0, 0, 0
}
