// heap_gauge.go - Guest heap-usage gauge for the Bobby Engine

package main

import "sync/atomic"

// HeapGauge is the dashboard-side reader of the guest's self-reported
// heap usage. The CSR side and the gauge share one atomic word, so the
// CPU worker never takes a lock to report.
type HeapGauge struct {
	value *atomic.Uint32
}

// Read returns the latest guest-reported heap bytes used.
func (g *HeapGauge) Read() uint32 {
	return g.value.Load()
}

// HeapGaugeCsr is the write-only device behind CSR_HEAP_GAUGE.
type HeapGaugeCsr struct {
	value *atomic.Uint32
}

// NewHeapGauge returns the linked reader/device pair.
func NewHeapGauge() (*HeapGauge, *HeapGaugeCsr) {
	value := &atomic.Uint32{}
	return &HeapGauge{value: value}, &HeapGaugeCsr{value: value}
}

func (g *HeapGaugeCsr) Read(csr uint32, ram []byte) (uint32, error) {
	return 0, &CPUFault{Kind: FaultCSRReadDenied, Detail: "heap gauge is write-only"}
}

func (g *HeapGaugeCsr) Write(csr uint32, ram []byte, data uint32) error {
	g.value.Store(data)
	return nil
}
