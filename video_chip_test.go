// video_chip_test.go - Display device and compositor tests

package main

import "testing"

func testDisplayDevice(t *testing.T) (*DisplayDevice, *eventQueue[DisplayEvent]) {
	t.Helper()
	q := newEventQueue[DisplayEvent]()
	return NewDisplayDevice(q), q
}

func TestDisplayScratchAndRectangleTrigger(t *testing.T) {
	dd, q := testDisplayDevice(t)
	writes := []struct {
		csr  uint32
		data uint32
	}{
		{CSR_DISP_TARGET, 20<<16 | 10}, // x=10, y=20
		{CSR_DISP_SIZE, 8<<16 | 4},     // 4x8
		{CSR_DISP_COLOR, 0xFF8040},
		{CSR_DISP_RECT, 0},
	}
	for _, w := range writes {
		if err := dd.Write(w.csr, nil, w.data); err != nil {
			t.Fatalf("write %d: %v", w.csr, err)
		}
	}
	event, ok := q.TryPop()
	if !ok {
		t.Fatal("no event emitted")
	}
	if event.Kind != EventRectangle || event.TargetX != 10 || event.TargetY != 20 ||
		event.SizeX != 4 || event.SizeY != 8 || event.Color != 0xFF8040 {
		t.Fatalf("event = %s", event.DebugString())
	}
	// Scratch writes alone emit nothing.
	if _, ok := q.TryPop(); ok {
		t.Fatal("scratch write emitted an event")
	}
}

func TestDisplayMatrixTrigger(t *testing.T) {
	dd, q := testDisplayDevice(t)
	dd.Write(CSR_DISP_MATRIX_LO, nil, 0xDDCCBBAA)
	dd.Write(CSR_DISP_MATRIX_HI, nil, 0x44332211)
	dd.Write(CSR_DISP_TARGET, nil, 7<<16|3)
	dd.Write(CSR_DISP_COLOR, nil, 0x00FF00)
	dd.Write(CSR_DISP_MATRIX, nil, 0)
	event, ok := q.TryPop()
	if !ok {
		t.Fatal("no event emitted")
	}
	if event.Kind != EventMatrix || event.Matrix != 0x44332211DDCCBBAA {
		t.Fatalf("matrix = 0x%016X", event.Matrix)
	}
	if event.TargetX != 3 || event.TargetY != 7 {
		t.Fatalf("target = (%d,%d)", event.TargetX, event.TargetY)
	}
}

func TestDisplayFloodFillTrigger(t *testing.T) {
	dd, q := testDisplayDevice(t)
	dd.Write(CSR_DISP_COLOR, nil, 0x123456)
	dd.Write(CSR_DISP_FLOODFILL, nil, 0)
	event, ok := q.TryPop()
	if !ok || event.Kind != EventFloodFill || event.Color != 0x123456 {
		t.Fatalf("event = %+v (%v)", event, ok)
	}
}

func TestDisplayCopyFaults(t *testing.T) {
	dd, q := testDisplayDevice(t)
	assertFaultKind(t, dd.Write(CSR_DISP_COPY, nil, 0), FaultUnimplemented)
	if _, ok := q.TryPop(); ok {
		t.Fatal("copy fault still emitted an event")
	}
}

func TestDisplayIsWriteOnly(t *testing.T) {
	dd, _ := testDisplayDevice(t)
	_, err := dd.Read(CSR_DISP_COLOR, nil)
	assertFaultKind(t, err, FaultCSRReadDenied)
}

func pixelAt(frame []byte, x, y int) [4]byte {
	idx := (y*DISPLAY_WIDTH + x) * 4
	return [4]byte{frame[idx], frame[idx+1], frame[idx+2], frame[idx+3]}
}

func TestCompositorRectangle(t *testing.T) {
	fb := NewFrameBuffer()
	q := newEventQueue[DisplayEvent]()
	q.Push(DisplayEvent{Kind: EventRectangle, TargetX: 2, TargetY: 3, SizeX: 4, SizeY: 2, Color: 0xFF0080})
	frame := make([]byte, FRAME_BYTES)
	fb.Composite(q, frame)

	want := [4]byte{0xFF, 0x00, 0x80, 0xFF}
	if got := pixelAt(frame, 2, 3); got != want {
		t.Fatalf("top-left pixel = %v", got)
	}
	if got := pixelAt(frame, 5, 4); got != want {
		t.Fatalf("bottom-right pixel = %v", got)
	}
	if got := pixelAt(frame, 6, 3); got != ([4]byte{}) {
		t.Fatalf("pixel outside rect = %v", got)
	}
	if got := pixelAt(frame, 2, 5); got != ([4]byte{}) {
		t.Fatalf("pixel below rect = %v", got)
	}
}

func TestCompositorFloodFill(t *testing.T) {
	fb := NewFrameBuffer()
	q := newEventQueue[DisplayEvent]()
	q.Push(DisplayEvent{Kind: EventFloodFill, Color: 0x102030})
	frame := make([]byte, FRAME_BYTES)
	fb.Composite(q, frame)
	want := [4]byte{0x10, 0x20, 0x30, 0xFF}
	if got := pixelAt(frame, 0, 0); got != want {
		t.Fatalf("corner = %v", got)
	}
	if got := pixelAt(frame, DISPLAY_WIDTH-1, DISPLAY_HEIGHT-1); got != want {
		t.Fatalf("far corner = %v", got)
	}
}

func TestCompositorMatrixLSBFirst(t *testing.T) {
	fb := NewFrameBuffer()
	q := newEventQueue[DisplayEvent]()
	// Bit 0 = (0,0), bit 9 = (1,1), bit 63 = (7,7).
	mask := uint64(1) | uint64(1)<<9 | uint64(1)<<63
	q.Push(DisplayEvent{Kind: EventMatrix, Matrix: mask, TargetX: 100, TargetY: 200, Color: 0xFFFFFF})
	frame := make([]byte, FRAME_BYTES)
	fb.Composite(q, frame)

	on := [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	if got := pixelAt(frame, 100, 200); got != on {
		t.Fatalf("bit 0 pixel = %v", got)
	}
	if got := pixelAt(frame, 101, 201); got != on {
		t.Fatalf("bit 9 pixel = %v", got)
	}
	if got := pixelAt(frame, 107, 207); got != on {
		t.Fatalf("bit 63 pixel = %v", got)
	}
	if got := pixelAt(frame, 101, 200); got != ([4]byte{}) {
		t.Fatalf("clear bit painted = %v", got)
	}
}

func TestCompositorClipsOffscreenDrawing(t *testing.T) {
	fb := NewFrameBuffer()
	q := newEventQueue[DisplayEvent]()
	q.Push(DisplayEvent{Kind: EventRectangle, TargetX: DISPLAY_WIDTH - 2, TargetY: DISPLAY_HEIGHT - 2, SizeX: 10, SizeY: 10, Color: 0xFFFFFF})
	frame := make([]byte, FRAME_BYTES)
	fb.Composite(q, frame) // must not panic
	if got := pixelAt(frame, DISPLAY_WIDTH-1, DISPLAY_HEIGHT-1); got != ([4]byte{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("in-bounds corner unpainted: %v", got)
	}
}

func TestCompositorStatePersistsAcrossFrames(t *testing.T) {
	fb := NewFrameBuffer()
	q := newEventQueue[DisplayEvent]()
	q.Push(DisplayEvent{Kind: EventRectangle, TargetX: 0, TargetY: 0, SizeX: 1, SizeY: 1, Color: 0xAABBCC})
	frame := make([]byte, FRAME_BYTES)
	fb.Composite(q, frame)
	// Second frame with no new events keeps the painted surface.
	fb.Composite(q, frame)
	if got := pixelAt(frame, 0, 0); got != ([4]byte{0xAA, 0xBB, 0xCC, 0xFF}) {
		t.Fatalf("pixel lost across frames: %v", got)
	}
}
