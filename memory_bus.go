// memory_bus.go - Main memory for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"fmt"
)

const (
	WORD_SIZE           = 4                // Size of a word in bytes
	DEFAULT_MEMORY_SIZE = 16 * 1024 * 1024 // 16MB main memory
)

// MemAccessSize selects the width of a memory access in bytes.
type MemAccessSize int

const (
	AccessByte     MemAccessSize = 1
	AccessHalfWord MemAccessSize = 2
	AccessWord     MemAccessSize = 4
)

// Memory is the flat byte-addressable RAM of the machine. The CPU owns it
// exclusively; peripherals touch it only inside synchronous CSR hooks, so
// no locking is needed.
//
// All multi-byte accesses are little-endian. Loads are deliberately not
// alignment-checked so byte-addressable code can be fetched; stores assert
// natural alignment.
type Memory struct {
	data []byte
}

// NewMemory allocates zeroed RAM. The size must be positive and a multiple
// of a word; anything else is a configuration error, not a CPU fault.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory size must be positive, got %d", size)
	}
	if size%WORD_SIZE != 0 {
		return nil, fmt.Errorf("memory size must be a multiple of %d, got %d", WORD_SIZE, size)
	}
	return &Memory{data: make([]byte, size)}, nil
}

// Size returns the RAM size in bytes.
func (mem *Memory) Size() int {
	return len(mem.data)
}

// Data exposes the raw RAM slice for CSR device hooks.
func (mem *Memory) Data() []byte {
	return mem.data
}

// Read assembles a value from size little-endian bytes at addr. Narrower
// reads leave the upper bits zero; signed widening is the CPU's job.
func (mem *Memory) Read(addr uint32, size MemAccessSize) (uint32, error) {
	a := int(addr)
	if a+int(size) > len(mem.data) {
		return 0, memoryFault("read", addr, size)
	}
	switch size {
	case AccessByte:
		return uint32(mem.data[a]), nil
	case AccessHalfWord:
		return uint32(binary.LittleEndian.Uint16(mem.data[a : a+2])), nil
	default:
		return binary.LittleEndian.Uint32(mem.data[a : a+4]), nil
	}
}

// Write stores the low size bytes of data little-endian at addr. Stores
// must be naturally aligned.
func (mem *Memory) Write(addr uint32, size MemAccessSize, data uint32) error {
	a := int(addr)
	if a+int(size) > len(mem.data) {
		return memoryFault("write", addr, size)
	}
	if addr%uint32(size) != 0 {
		return &CPUFault{
			Kind:   FaultMemoryRange,
			Detail: fmt.Sprintf("misaligned write, address 0x%08X size %d", addr, size),
		}
	}
	switch size {
	case AccessByte:
		mem.data[a] = byte(data)
	case AccessHalfWord:
		binary.LittleEndian.PutUint16(mem.data[a:a+2], uint16(data))
	default:
		binary.LittleEndian.PutUint32(mem.data[a:a+4], data)
	}
	return nil
}

// Flash copies a firmware image over the RAM prefix. The remainder of RAM
// is left untouched.
func (mem *Memory) Flash(image []byte) error {
	if len(image) > len(mem.data) {
		return fmt.Errorf("flash image of %d bytes exceeds %d bytes of RAM", len(image), len(mem.data))
	}
	copy(mem.data, image)
	return nil
}

// Reset clears the entire RAM back to zero.
func (mem *Memory) Reset() {
	for i := range mem.data {
		mem.data[i] = 0
	}
}

func memoryFault(op string, addr uint32, size MemAccessSize) *CPUFault {
	return &CPUFault{
		Kind:   FaultMemoryRange,
		Detail: fmt.Sprintf("%s out of range, address 0x%08X size %d", op, addr, size),
	}
}
