// char_printer_test.go - Character printer tests

package main

import "testing"

func TestCharPrinterEmitsGlyphBlit(t *testing.T) {
	q := newEventQueue[DisplayEvent]()
	cp := NewCharPrinter(q)
	cp.Write(CSR_CHAR_TARGET, nil, 16<<16|8)
	cp.Write(CSR_CHAR_COLOR, nil, 0x00FF00)
	cp.Write(CSR_CHAR_CODE, nil, 'A')
	if _, ok := q.TryPop(); ok {
		t.Fatal("scratch write emitted an event")
	}
	cp.Write(CSR_CHAR_TRIGGER, nil, 0)
	event, ok := q.TryPop()
	if !ok {
		t.Fatal("trigger emitted nothing")
	}
	if event.Kind != EventMatrix {
		t.Fatalf("event kind = %d", event.Kind)
	}
	if event.TargetX != 8 || event.TargetY != 16 || event.Color != 0x00FF00 {
		t.Fatalf("event = %s", event.DebugString())
	}
	if event.Matrix != glyphMask('A') {
		t.Fatalf("matrix = 0x%016X", event.Matrix)
	}
	if event.Matrix == 0 {
		t.Fatal("glyph for 'A' is blank")
	}
}

func TestCharPrinterRepeatsFromScratch(t *testing.T) {
	q := newEventQueue[DisplayEvent]()
	cp := NewCharPrinter(q)
	cp.Write(CSR_CHAR_CODE, nil, 'x')
	cp.Write(CSR_CHAR_TRIGGER, nil, 0)
	cp.Write(CSR_CHAR_TRIGGER, nil, 0)
	first, _ := q.TryPop()
	second, ok := q.TryPop()
	if !ok || first.Matrix != second.Matrix {
		t.Fatal("retrigger did not reuse latched scratch")
	}
}

func TestCharPrinterIsWriteOnly(t *testing.T) {
	cp := NewCharPrinter(newEventQueue[DisplayEvent]())
	_, err := cp.Read(CSR_CHAR_CODE, nil)
	assertFaultKind(t, err, FaultCSRReadDenied)
}

func TestGlyphMask(t *testing.T) {
	// Space is blank; unknown characters are solid blocks.
	if glyphMask(' ') != 0 {
		t.Fatalf("space mask = 0x%016X", glyphMask(' '))
	}
	if glyphMask(0x01) != ^uint64(0) {
		t.Fatalf("control char mask = 0x%016X", glyphMask(0x01))
	}
	if glyphMask(0x7F) != ^uint64(0) {
		t.Fatalf("DEL mask = 0x%016X", glyphMask(0x7F))
	}
	// Distinct printable characters have distinct bitmaps.
	if glyphMask('O') == glyphMask('I') {
		t.Fatal("glyphs collide")
	}
	// Row y of the bitmap lands in byte y of the mask.
	underscore := glyphMask('_')
	if underscore>>(8*7) != 0xFF || underscore&0x00FFFFFFFFFFFFFF != 0 {
		t.Fatalf("underscore mask = 0x%016X", underscore)
	}
}
