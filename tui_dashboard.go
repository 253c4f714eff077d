// tui_dashboard.go - Terminal dashboard for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

/*
tui_dashboard.go - the operator's view of the running machine.

The dashboard puts the controlling terminal into raw mode and redraws at
roughly 60Hz: each frame it pings the CPU worker for a fresh snapshot,
reads the previously published one, drains the debug queue into local
scrollback, and repaints the whole screen with ANSI positioning. Box
layout follows the machine's register pane convention: a 17-column
register column, a second 17-column column of PC/heap/counter boxes,
and the debug scrollback in whatever width remains.

Escape exits the dashboard. The worker is never blocked by rendering:
the only shared state touched here is the snapshot slot and the lock-
free heap gauge.
*/

package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"
)

const (
	DASH_FRAME_TIME = 16 * time.Millisecond // ~60Hz redraw cadence
	DASH_PANE_WIDTH = 17                    // Register and status column width
	DASH_REG_HEIGHT = 34                    // Register box height (32 rows + border)

	KEY_ESC_BYTE = 0x1B
)

// Box-drawing characters shared by every pane.
const (
	SCREEN_BORDER_H  = '─' // Horizontal border
	SCREEN_BORDER_V  = '│' // Vertical border
	SCREEN_BORDER_TL = '┌' // Top-left corner
	SCREEN_BORDER_TR = '┐' // Top-right corner
	SCREEN_BORDER_BL = '└' // Bottom-left corner
	SCREEN_BORDER_BR = '┘' // Bottom-right corner
)

const (
	ANSI_CLEAR       = "\x1b[2J"
	ANSI_HOME        = "\x1b[H"
	ANSI_HIDE_CURSOR = "\x1b[?25l"
	ANSI_SHOW_CURSOR = "\x1b[?25h"
)

// Dashboard renders CPU state and the debug scrollback into the
// controlling terminal until Escape is pressed or RequestClose fires.
type Dashboard struct {
	handle *CPUHandle
	heap   *HeapGauge
	debug  *DebugLog
	closed atomic.Bool
}

func NewDashboard(handle *CPUHandle, heap *HeapGauge, debug *DebugLog) *Dashboard {
	return &Dashboard{handle: handle, heap: heap, debug: debug}
}

// RequestClose ends the render loop from another goroutine.
func (d *Dashboard) RequestClose() {
	d.closed.Store(true)
}

// Run owns the terminal until exit. Raw mode and the non-blocking stdin
// flag are always restored on the way out.
func (d *Dashboard) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("dashboard raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("dashboard nonblocking stdin: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	os.Stdout.WriteString(ANSI_HIDE_CURSOR + ANSI_CLEAR)
	defer os.Stdout.WriteString(ANSI_SHOW_CURSOR + ANSI_CLEAR + ANSI_HOME)

	ticker := time.NewTicker(DASH_FRAME_TIME)
	defer ticker.Stop()

	var input [64]byte
	for range ticker.C {
		if d.closed.Load() {
			return nil
		}
		n, _ := os.Stdin.Read(input[:])
		for i := 0; i < n; i++ {
			if input[i] == KEY_ESC_BYTE {
				return nil
			}
		}
		d.renderFrame()
	}
	return nil
}

func (d *Dashboard) renderFrame() {
	d.handle.RequestUpdate()
	state := d.handle.State()
	d.debug.Update()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	frame := renderDashboard(state, d.heap.Read(), d.debug.Lines(), width, height)
	os.Stdout.WriteString(frame)
}

// renderDashboard composes one full frame as a string. Pure so the
// layout is testable without a terminal.
func renderDashboard(state CPUState, heapBytes uint32, debugLines []string, width, height int) string {
	grid := newTextGrid(width, height)

	grid.drawBox(0, 0, DASH_PANE_WIDTH, DASH_REG_HEIGHT, "Registers")
	for i := 0; i < NUM_REGISTERS; i++ {
		grid.putString(1, 1+i, fmt.Sprintf("x%-3d 0x%08X", i, state.Registers[i]))
	}

	x := DASH_PANE_WIDTH
	grid.drawBox(x, 0, DASH_PANE_WIDTH, 3, "PC")
	grid.putStringRight(x+1, 1, DASH_PANE_WIDTH-2, fmt.Sprintf("0x%08X", state.PC))
	grid.drawBox(x, 3, DASH_PANE_WIDTH, 3, "Heap")
	grid.putStringRight(x+1, 4, DASH_PANE_WIDTH-2, fmt.Sprintf("%d bytes", heapBytes))
	grid.drawBox(x, 6, DASH_PANE_WIDTH, 3, "Insn count")
	grid.putStringRight(x+1, 7, DASH_PANE_WIDTH-2, fmt.Sprintf("%d", state.InsnCount))
	grid.drawBox(x, 9, DASH_PANE_WIDTH, 3, "I/s")
	grid.putStringRight(x+1, 10, DASH_PANE_WIDTH-2, fmt.Sprintf("%d", state.IPS))

	debugX := 2 * DASH_PANE_WIDTH
	debugW := width - debugX
	if debugW > 2 {
		grid.drawBox(debugX, 0, debugW, height, "Debug")
		innerW, innerH := debugW-2, height-2
		wrapped := wrapLines(debugLines, innerW)
		if len(wrapped) > innerH {
			wrapped = wrapped[len(wrapped)-innerH:]
		}
		// Bottom-aligned, like a terminal that scrolls up.
		y := height - 1 - len(wrapped)
		for _, line := range wrapped {
			grid.putString(debugX+1, y, line)
			y++
		}
	}

	return ANSI_HOME + grid.String()
}

// wrapLines hard-wraps scrollback lines to the pane width.
func wrapLines(lines []string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > 0 {
			n := len(runes)
			if n > width {
				n = width
			}
			out = append(out, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return out
}

// textGrid is a rune canvas the panes draw into.
type textGrid struct {
	width  int
	height int
	cells  [][]rune
}

func newTextGrid(width, height int) *textGrid {
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &textGrid{width: width, height: height, cells: cells}
}

func (g *textGrid) put(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y][x] = r
}

func (g *textGrid) putString(x, y int, s string) {
	for i, r := range []rune(s) {
		g.put(x+i, y, r)
	}
}

func (g *textGrid) putStringRight(x, y, width int, s string) {
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[len(runes)-width:]
	}
	g.putString(x+width-len(runes), y, string(runes))
}

func (g *textGrid) drawBox(x, y, w, h int, title string) {
	if w < 2 || h < 2 {
		return
	}
	for xi := x + 1; xi < x+w-1; xi++ {
		g.put(xi, y, SCREEN_BORDER_H)
		g.put(xi, y+h-1, SCREEN_BORDER_H)
	}
	for yi := y + 1; yi < y+h-1; yi++ {
		g.put(x, yi, SCREEN_BORDER_V)
		g.put(x+w-1, yi, SCREEN_BORDER_V)
	}
	g.put(x, y, SCREEN_BORDER_TL)
	g.put(x+w-1, y, SCREEN_BORDER_TR)
	g.put(x, y+h-1, SCREEN_BORDER_BL)
	g.put(x+w-1, y+h-1, SCREEN_BORDER_BR)
	g.putString(x+1, y, title)
}

func (g *textGrid) String() string {
	var sb strings.Builder
	for y, row := range g.cells {
		if y > 0 {
			sb.WriteString("\r\n")
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
		// Erase to end of line so shorter rows overwrite the last frame.
		sb.WriteString("\x1b[K")
	}
	return sb.String()
}
