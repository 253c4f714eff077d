// video_chip.go - Framebuffer display device and compositor for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

/*
video_chip.go - the drawing half of the machine.

Firmware drives the display by filling six scratch registers over the
CSR bus and then writing a trigger register; each trigger composes one
DisplayEvent from the current scratch values and pushes it onto the
display queue. The windowed backend drains the queue on redraw and the
compositor below applies each event to the 640x480 RGBA framebuffer.

Colors arrive as 0x00RRGGBB; alpha is always opaque. Drawing that falls
outside the surface is clipped.
*/

package main

import (
	"fmt"
	"sync"
)

const (
	DISPLAY_WIDTH  = 640 // Surface width in pixels
	DISPLAY_HEIGHT = 480 // Surface height in pixels
	DISPLAY_SCALE  = 2   // Default integer window scale

	FRAME_BYTES = DISPLAY_WIDTH * DISPLAY_HEIGHT * 4 // RGBA, row-major
)

// VideoOutput is the display sink the machine renders through. Each
// build supplies one implementation via newVideoOutput: a real window by
// default, a queue-draining null device under the headless tag.
type VideoOutput interface {
	// Run blocks on the display loop until the window closes or
	// RequestClose is called.
	Run() error
	RequestClose()
}

// DisplayEventKind tags the drawing command carried by a DisplayEvent.
type DisplayEventKind int

const (
	EventRectangle DisplayEventKind = iota // Fill size at target with color
	EventFloodFill                         // Fill the whole surface with color
	EventMatrix                            // 8x8 bitmask blit at target
	EventCopy                              // Reserved; never emitted
)

// DisplayEvent is one drawing command. The matrix mask is LSB-first
// across x then y: bit (y*8 + x) selects the pixel at (x, y).
type DisplayEvent struct {
	Kind    DisplayEventKind
	TargetX uint16
	TargetY uint16
	SourceX uint16
	SourceY uint16
	SizeX   uint16
	SizeY   uint16
	Matrix  uint64
	Color   uint32
}

// DisplayDevice owns the display scratch registers behind CSR ids
// 1050..1059. One instance serves all ten identifiers so the scratch
// state is shared between them.
type DisplayDevice struct {
	events *eventQueue[DisplayEvent]

	matrixLo uint32
	matrixHi uint32
	target   uint32
	source   uint32
	size     uint32
	color    uint32
}

func NewDisplayDevice(events *eventQueue[DisplayEvent]) *DisplayDevice {
	return &DisplayDevice{events: events}
}

func (dd *DisplayDevice) Read(csr uint32, ram []byte) (uint32, error) {
	return 0, &CPUFault{Kind: FaultCSRReadDenied, Detail: "display registers are write-only"}
}

func (dd *DisplayDevice) Write(csr uint32, ram []byte, data uint32) error {
	switch csr {
	case CSR_DISP_MATRIX_LO:
		dd.matrixLo = data
	case CSR_DISP_MATRIX_HI:
		dd.matrixHi = data
	case CSR_DISP_TARGET:
		dd.target = data
	case CSR_DISP_SOURCE:
		dd.source = data
	case CSR_DISP_SIZE:
		dd.size = data
	case CSR_DISP_COLOR:
		dd.color = data
	case CSR_DISP_MATRIX:
		dd.events.Push(DisplayEvent{
			Kind:    EventMatrix,
			Matrix:  uint64(dd.matrixHi)<<32 | uint64(dd.matrixLo),
			TargetX: uint16(dd.target),
			TargetY: uint16(dd.target >> 16),
			Color:   dd.color,
		})
	case CSR_DISP_FLOODFILL:
		dd.events.Push(DisplayEvent{
			Kind:  EventFloodFill,
			Color: dd.color,
		})
	case CSR_DISP_COPY:
		return &CPUFault{Kind: FaultUnimplemented, Detail: "display copy"}
	case CSR_DISP_RECT:
		dd.events.Push(DisplayEvent{
			Kind:    EventRectangle,
			TargetX: uint16(dd.target),
			TargetY: uint16(dd.target >> 16),
			SizeX:   uint16(dd.size),
			SizeY:   uint16(dd.size >> 16),
			Color:   dd.color,
		})
	}
	return nil
}

// FrameBuffer is the RGBA surface the compositor draws into. The display
// backend reads it under the mutex when presenting a frame.
type FrameBuffer struct {
	mu     sync.Mutex
	pixels []byte
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{pixels: make([]byte, FRAME_BYTES)}
}

// Composite drains the event queue into the surface and copies the
// result into dst (len >= FRAME_BYTES).
func (fb *FrameBuffer) Composite(events *eventQueue[DisplayEvent], dst []byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for {
		event, ok := events.TryPop()
		if !ok {
			break
		}
		applyDisplayEvent(fb.pixels, event)
	}
	copy(dst, fb.pixels)
}

// Snapshot copies the current surface without draining anything.
func (fb *FrameBuffer) Snapshot() []byte {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]byte, len(fb.pixels))
	copy(out, fb.pixels)
	return out
}

func applyDisplayEvent(frame []byte, event DisplayEvent) {
	switch event.Kind {
	case EventRectangle:
		for yi := 0; yi < int(event.SizeY); yi++ {
			for xi := 0; xi < int(event.SizeX); xi++ {
				setPixel(frame, int(event.TargetX)+xi, int(event.TargetY)+yi, event.Color)
			}
		}
	case EventFloodFill:
		for i := 0; i < len(frame); i += 4 {
			storeColor(frame[i:i+4], event.Color)
		}
	case EventMatrix:
		mask := event.Matrix
		for yi := 0; yi < 8; yi++ {
			for xi := 0; xi < 8; xi++ {
				if mask&1 != 0 {
					setPixel(frame, int(event.TargetX)+xi, int(event.TargetY)+yi, event.Color)
				}
				mask >>= 1
			}
		}
	case EventCopy:
		// Reserved: the CSR path faults before this can be emitted.
	}
}

func setPixel(frame []byte, x, y int, color uint32) {
	if x < 0 || y < 0 || x >= DISPLAY_WIDTH || y >= DISPLAY_HEIGHT {
		return
	}
	idx := (y*DISPLAY_WIDTH + x) * 4
	storeColor(frame[idx:idx+4], color)
}

func storeColor(pixel []byte, color uint32) {
	pixel[0] = byte(color >> 16)
	pixel[1] = byte(color >> 8)
	pixel[2] = byte(color)
	pixel[3] = 0xFF
}

// DebugString renders an event compactly for logs and tests.
func (e DisplayEvent) DebugString() string {
	switch e.Kind {
	case EventRectangle:
		return fmt.Sprintf("rect %dx%d at (%d,%d) color 0x%06X", e.SizeX, e.SizeY, e.TargetX, e.TargetY, e.Color)
	case EventFloodFill:
		return fmt.Sprintf("floodfill color 0x%06X", e.Color)
	case EventMatrix:
		return fmt.Sprintf("matrix 0x%016X at (%d,%d) color 0x%06X", e.Matrix, e.TargetX, e.TargetY, e.Color)
	default:
		return "copy"
	}
}
