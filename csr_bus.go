// csr_bus.go - Control/status register bus for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import "fmt"

// CsrDevice is the capability set a peripheral exposes on the CSR bus.
// Hooks receive the specific identifier, so one device registered under
// several identifiers can discriminate, and the raw RAM slice, so devices
// can pull packet payloads straight out of guest memory. Write hooks also
// receive the 32-bit operand.
//
// A device that refuses an operation returns a *CPUFault; the fault
// propagates through the executing instruction and stops the CPU.
type CsrDevice interface {
	Read(csr uint32, ram []byte) (uint32, error)
	Write(csr uint32, ram []byte, data uint32) error
}

// CsrBus is the sparse identifier-to-device registry the CPU performs all
// I/O through. Devices live in an ordered slice and the map stores indices
// into it, so one device instance can sit behind several identifiers and
// share scratch state between them.
type CsrBus struct {
	ids     map[uint32]int
	devices []CsrDevice
}

func NewCsrBus() *CsrBus {
	return &CsrBus{ids: make(map[uint32]int)}
}

// Install registers a device under one or more identifiers. Installation
// is one-shot: claiming an identifier that is already taken is a wiring
// error and rejects the whole install.
func (bus *CsrBus) Install(csrIDs []uint32, dev CsrDevice) error {
	for _, id := range csrIDs {
		if _, taken := bus.ids[id]; taken {
			return fmt.Errorf("csr %d is already installed", id)
		}
	}
	idx := len(bus.devices)
	bus.devices = append(bus.devices, dev)
	for _, id := range csrIDs {
		bus.ids[id] = idx
	}
	return nil
}

// Read resolves csr to its device and calls the read hook. An unknown
// identifier is a CPU-visible fault.
func (bus *CsrBus) Read(csr uint32, ram []byte) (uint32, error) {
	dev, err := bus.lookup(csr)
	if err != nil {
		return 0, err
	}
	return dev.Read(csr, ram)
}

// Write resolves csr to its device and calls the write hook.
func (bus *CsrBus) Write(csr uint32, ram []byte, data uint32) error {
	dev, err := bus.lookup(csr)
	if err != nil {
		return err
	}
	return dev.Write(csr, ram, data)
}

func (bus *CsrBus) lookup(csr uint32) (CsrDevice, error) {
	idx, ok := bus.ids[csr]
	if !ok {
		return nil, &CPUFault{
			Kind:   FaultUnknownCSR,
			Detail: fmt.Sprintf("no device at csr %d", csr),
		}
	}
	return bus.devices[idx], nil
}
