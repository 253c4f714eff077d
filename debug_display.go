// debug_display.go - Debug log device and scrollback for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"strings"
)

const DEBUG_SCROLLBACK_LINES = 100 // Retained lines; older ones are evicted FIFO

// DebugMessage is one item on the debug event queue: either a text
// fragment or a clear command.
type DebugMessage struct {
	Text  string
	Clear bool
}

// DebugLog is the dashboard-side scrollback. It drains the queue the CSR
// device feeds and splits fragments into lines; wrapping to the render
// width is the dashboard's job, not the log's.
type DebugLog struct {
	events *eventQueue[DebugMessage]
	lines  []string
}

func NewDebugLog(events *eventQueue[DebugMessage]) *DebugLog {
	return &DebugLog{
		events: events,
		lines:  []string{""},
	}
}

// Update drains all pending messages into the scrollback.
func (log *DebugLog) Update() {
	for {
		msg, ok := log.events.TryPop()
		if !ok {
			return
		}
		if msg.Clear {
			log.lines = []string{""}
			continue
		}
		log.push(msg.Text)
	}
}

func (log *DebugLog) push(s string) {
	for _, c := range s {
		if c == '\n' {
			log.lines = append(log.lines, "")
		} else {
			log.lines[len(log.lines)-1] += string(c)
		}
	}
	if excess := len(log.lines) - DEBUG_SCROLLBACK_LINES; excess > 0 {
		log.lines = append(log.lines[:0], log.lines[excess:]...)
	}
}

// Lines returns the current scrollback, oldest first.
func (log *DebugLog) Lines() []string {
	return log.lines
}

// DebugLogCsr is the write-only CSR group the firmware prints through:
// latch a byte count, then point CSR_DEBUG_PRINT at the payload in RAM.
type DebugLogCsr struct {
	events *eventQueue[DebugMessage]
	length uint32
}

func NewDebugLogCsr(events *eventQueue[DebugMessage]) *DebugLogCsr {
	return &DebugLogCsr{events: events}
}

func (d *DebugLogCsr) Read(csr uint32, ram []byte) (uint32, error) {
	return 0, &CPUFault{Kind: FaultCSRReadDenied, Detail: "debug log is write-only"}
}

func (d *DebugLogCsr) Write(csr uint32, ram []byte, data uint32) error {
	switch csr {
	case CSR_DEBUG_PRINT:
		return d.print(ram, data)
	case CSR_DEBUG_NEWLINE:
		d.events.Push(DebugMessage{Text: "\n"})
	case CSR_DEBUG_LENGTH:
		d.length = data
	case CSR_DEBUG_CLEAR:
		d.events.Push(DebugMessage{Clear: true})
	}
	return nil
}

func (d *DebugLogCsr) print(ram []byte, addr uint32) error {
	end := uint64(addr) + uint64(d.length)
	if end > uint64(len(ram)) {
		return &CPUFault{
			Kind:   FaultMemoryRange,
			Detail: fmt.Sprintf("debug print of %d bytes at 0x%08X", d.length, addr),
		}
	}
	text := strings.ToValidUTF8(string(ram[addr:end]), "�")
	d.events.Push(DebugMessage{Text: text})
	return nil
}
