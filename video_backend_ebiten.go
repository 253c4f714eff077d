//go:build !headless

// video_backend_ebiten.go - Ebiten display window for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import (
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

// EbitenOutput presents the framebuffer in a window and produces key
// events for the emulated keyboard. It is the sole consumer of the
// display queue and the sole producer for the keyboard queue; both
// happen on the windowing thread.
type EbitenOutput struct {
	events *eventQueue[DisplayEvent]
	keys   *eventQueue[KeyEvent]
	fb     *FrameBuffer

	frame      []byte
	img        *ebiten.Image
	scale      int
	fullscreen bool
	closed     atomic.Bool

	// Scratch reused across Update calls to avoid per-frame allocation.
	keyScratch []ebiten.Key

	clipboardOnce sync.Once
	clipboardOK   bool
}

func newVideoOutput(events *eventQueue[DisplayEvent], keys *eventQueue[KeyEvent], scale int) VideoOutput {
	return NewEbitenOutput(events, keys, scale)
}

func NewEbitenOutput(events *eventQueue[DisplayEvent], keys *eventQueue[KeyEvent], scale int) *EbitenOutput {
	if scale < 1 {
		scale = 1
	}
	return &EbitenOutput{
		events: events,
		keys:   keys,
		fb:     NewFrameBuffer(),
		frame:  make([]byte, FRAME_BYTES),
		scale:  scale,
	}
}

// Run enters the window event loop and blocks until the window closes,
// Escape is pressed, or RequestClose is called.
func (eo *EbitenOutput) Run() error {
	ebiten.SetWindowSize(DISPLAY_WIDTH*eo.scale, DISPLAY_HEIGHT*eo.scale)
	ebiten.SetWindowTitle("Bobby Engine")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	err := ebiten.RunGame(eo)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// RequestClose ends the window loop from another goroutine.
func (eo *EbitenOutput) RequestClose() {
	eo.closed.Store(true)
}

func (eo *EbitenOutput) Update() error {
	if eo.closed.Load() || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(DISPLAY_WIDTH*eo.scale, DISPLAY_HEIGHT*eo.scale)
		}
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
		return nil
	}

	eo.keyScratch = inpututil.AppendJustPressedKeys(eo.keyScratch[:0])
	for _, key := range eo.keyScratch {
		eo.pushKey(key, true)
	}
	eo.keyScratch = inpututil.AppendJustReleasedKeys(eo.keyScratch[:0])
	for _, key := range eo.keyScratch {
		eo.pushKey(key, false)
	}
	return nil
}

func (eo *EbitenOutput) pushKey(key ebiten.Key, pressed bool) {
	code := ebitenKeyToCode(key)
	if code == 0 {
		return
	}
	eo.keys.Push(KeyEvent{Code: code, Pressed: pressed})
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.fb.Composite(eo.events, eo.frame)
	if eo.img == nil {
		eo.img = ebiten.NewImage(DISPLAY_WIDTH, DISPLAY_HEIGHT)
	}
	eo.img.WritePixels(eo.frame)
	screen.DrawImage(eo.img, nil)
}

func (eo *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	return DISPLAY_WIDTH, DISPLAY_HEIGHT
}

// handleClipboardPaste types clipboard text into the emulated keyboard
// as synthetic press/release pairs. Characters without a key are
// skipped; paste size is capped so a runaway clipboard cannot swamp the
// queue.
func (eo *EbitenOutput) handleClipboardPaste() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if len(data) > 4096 {
		data = data[:4096]
	}
	for _, r := range string(data) {
		if r == '\r' {
			r = '\n'
		}
		code := runeToKeyCode(r)
		if code == 0 {
			continue
		}
		eo.keys.Push(KeyEvent{Code: code, Pressed: true})
		eo.keys.Push(KeyEvent{Code: code, Pressed: false})
	}
}

// ebitenKeyToCode maps a physical key onto the emulated key-code
// namespace. Unknown keys map to zero and produce no event.
func ebitenKeyToCode(key ebiten.Key) byte {
	switch {
	case key >= ebiten.KeyA && key <= ebiten.KeyZ:
		return byte(key-ebiten.KeyA) + KEY_A
	case key >= ebiten.KeyDigit0 && key <= ebiten.KeyDigit9:
		return byte(key-ebiten.KeyDigit0) + KEY_0
	}
	switch key {
	case ebiten.KeySpace:
		return KEY_SPACE
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return KEY_SHIFT
	case ebiten.KeyEnter:
		return KEY_ENTER
	case ebiten.KeyArrowUp:
		return KEY_UP
	case ebiten.KeyArrowLeft:
		return KEY_LEFT
	case ebiten.KeyArrowDown:
		return KEY_DOWN
	case ebiten.KeyArrowRight:
		return KEY_RIGHT
	case ebiten.KeyBackspace:
		return KEY_BACKSPACE
	case ebiten.KeyMinus:
		return KEY_MINUS
	case ebiten.KeyEqual:
		return KEY_EQUALS
	case ebiten.KeyBracketLeft:
		return KEY_LBRACKET
	case ebiten.KeyBracketRight:
		return KEY_RBRACKET
	case ebiten.KeySemicolon:
		return KEY_SEMICOLON
	case ebiten.KeyQuote:
		return KEY_APOSTROPHE
	case ebiten.KeyComma:
		return KEY_COMMA
	case ebiten.KeyPeriod:
		return KEY_PERIOD
	case ebiten.KeySlash:
		return KEY_SLASH
	case ebiten.KeyBackquote:
		return KEY_BACKTICK
	case ebiten.KeyBackslash:
		return KEY_BACKSLASH
	default:
		return 0
	}
}
