// cpu_worker.go - CPU worker goroutine and control handle for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

/*
cpu_worker.go - the execution/observation seam.

The worker goroutine owns the CPU outright between Start and Stop; no
other code touches CPU state while it runs. Observers interact only
through the handle: RequestUpdate sets a one-shot flag the worker
services right after its next tick by publishing a complete snapshot
under the snapshot mutex, so a reader always sees either the
whole new state or the whole previous one. The stop flag is polled once
per instruction, which makes one tick the cancellation granularity.

Both flags are plain atomics that carry no data of their own: the data
they guard travels through other means (goroutine handoff for the CPU,
the mutex for the snapshot).
*/

package main

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// CPUState is the fixed-size observable snapshot of the machine.
type CPUState struct {
	Registers [NUM_REGISTERS]uint32
	PC        uint32
	InsnCount uint64
	IPS       int
}

type workerResult struct {
	cpu   *CPU
	fault error
}

// CPUHandle owns the CPU while it is stopped and brokers access to it
// while the worker runs.
type CPUHandle struct {
	mu      sync.Mutex // guards cpu, running, fault, done
	cpu     *CPU
	running bool
	fault   error
	done    chan workerResult

	stop      atomic.Bool
	updateReq atomic.Bool

	snapMu   sync.Mutex
	snapshot CPUState
}

func NewCPUHandle(cpu *CPU) *CPUHandle {
	return &CPUHandle{cpu: cpu}
}

// Start hands the CPU to a fresh worker goroutine. No-op when already
// running.
func (h *CPUHandle) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return
	}
	cpu := h.cpu
	h.cpu = nil
	h.running = true
	h.fault = nil
	h.stop.Store(false)
	h.done = make(chan workerResult, 1)
	go h.worker(cpu, h.done)
}

// RequestStop flags the worker to stop and returns immediately.
func (h *CPUHandle) RequestStop() {
	h.stop.Store(true)
}

// Stop flags the worker, joins it, takes the CPU back and returns
// whatever fault ended execution (nil on a clean stop).
func (h *CPUHandle) Stop() error {
	h.stop.Store(true)
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return h.fault
	}
	result := <-h.done
	h.cpu = result.cpu
	h.fault = result.fault
	h.running = false
	return h.fault
}

// RequestUpdate pings the worker to publish a snapshot on its next loop
// iteration. Requests between publishes coalesce.
func (h *CPUHandle) RequestUpdate() {
	h.updateReq.Store(true)
}

// State returns the latest published snapshot. When the worker is not
// running the snapshot is derived directly from the owned CPU.
func (h *CPUHandle) State() CPUState {
	h.mu.Lock()
	if !h.running && h.cpu != nil {
		state := snapshotCPU(h.cpu)
		h.mu.Unlock()
		return state
	}
	h.mu.Unlock()

	h.snapMu.Lock()
	defer h.snapMu.Unlock()
	return h.snapshot
}

func (h *CPUHandle) worker(cpu *CPU, done chan<- workerResult) {
	for {
		if h.stop.Load() {
			done <- workerResult{cpu: cpu}
			return
		}
		if err := cpu.Tick(); err != nil {
			done <- workerResult{cpu: cpu, fault: err}
			return
		}
		if h.updateReq.Swap(false) {
			state := snapshotCPU(cpu)
			h.snapMu.Lock()
			h.snapshot = state
			h.snapMu.Unlock()
		}
		runtime.Gosched()
	}
}

func snapshotCPU(cpu *CPU) CPUState {
	return CPUState{
		Registers: cpu.registers,
		PC:        cpu.pc,
		InsnCount: cpu.insnCount,
		IPS:       cpu.ips,
	}
}
