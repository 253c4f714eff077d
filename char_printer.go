// char_printer.go - Character printer device for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

// CharPrinter puts 8x8 glyphs on the display. It shares the display
// event queue with the framebuffer device: a trigger write folds the
// latched character through the font table and emits an ordinary matrix
// blit, so the compositor needs no character-specific path.
type CharPrinter struct {
	events *eventQueue[DisplayEvent]

	target uint32
	color  uint32
	char   uint32
}

func NewCharPrinter(events *eventQueue[DisplayEvent]) *CharPrinter {
	return &CharPrinter{events: events}
}

func (cp *CharPrinter) Read(csr uint32, ram []byte) (uint32, error) {
	return 0, &CPUFault{Kind: FaultCSRReadDenied, Detail: "character printer is write-only"}
}

func (cp *CharPrinter) Write(csr uint32, ram []byte, data uint32) error {
	switch csr {
	case CSR_CHAR_TARGET:
		cp.target = data
	case CSR_CHAR_COLOR:
		cp.color = data
	case CSR_CHAR_CODE:
		cp.char = data
	case CSR_CHAR_TRIGGER:
		cp.events.Push(DisplayEvent{
			Kind:    EventMatrix,
			Matrix:  glyphMask(cp.char),
			TargetX: uint16(cp.target),
			TargetY: uint16(cp.target >> 16),
			Color:   cp.color,
		})
	}
	return nil
}
