//go:build headless

// video_backend_headless.go - Null display backend for windowless builds

package main

import (
	"sync/atomic"
	"time"
)

// HeadlessOutput satisfies the display contract without a window system.
// It keeps draining the display queue into an off-screen framebuffer so
// the queue cannot grow without bound, and produces no key events.
type HeadlessOutput struct {
	events *eventQueue[DisplayEvent]
	fb     *FrameBuffer
	frame  []byte
	closed atomic.Bool
}

func newVideoOutput(events *eventQueue[DisplayEvent], keys *eventQueue[KeyEvent], scale int) VideoOutput {
	return NewHeadlessOutput(events, keys, scale)
}

func NewHeadlessOutput(events *eventQueue[DisplayEvent], keys *eventQueue[KeyEvent], scale int) *HeadlessOutput {
	return &HeadlessOutput{
		events: events,
		fb:     NewFrameBuffer(),
		frame:  make([]byte, FRAME_BYTES),
	}
}

// Run drains events at roughly the display rate until RequestClose.
func (ho *HeadlessOutput) Run() error {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if ho.closed.Load() {
			return nil
		}
		ho.fb.Composite(ho.events, ho.frame)
	}
	return nil
}

func (ho *HeadlessOutput) RequestClose() {
	ho.closed.Store(true)
}
