// keyboard_test.go - Keyboard device tests

package main

import "testing"

func TestKeyboardReadEncoding(t *testing.T) {
	q := newEventQueue[KeyEvent]()
	kb := NewKeyboardDevice(q)

	q.Push(KeyEvent{Code: KEY_A, Pressed: true})
	q.Push(KeyEvent{Code: KEY_A, Pressed: false})
	q.Push(KeyEvent{Code: KEY_ENTER, Pressed: true})

	got, err := kb.Read(CSR_KEYBOARD, nil)
	if err != nil || got != uint32(KEY_A|KEY_PRESSED_BIT) {
		t.Fatalf("press read = 0x%02X, %v", got, err)
	}
	got, _ = kb.Read(CSR_KEYBOARD, nil)
	if got != KEY_A {
		t.Fatalf("release read = 0x%02X", got)
	}
	got, _ = kb.Read(CSR_KEYBOARD, nil)
	if got != uint32(KEY_ENTER|KEY_PRESSED_BIT) {
		t.Fatalf("enter read = 0x%02X", got)
	}
}

func TestKeyboardEmptyQueueReadsZero(t *testing.T) {
	kb := NewKeyboardDevice(newEventQueue[KeyEvent]())
	got, err := kb.Read(CSR_KEYBOARD, nil)
	if err != nil || got != 0 {
		t.Fatalf("empty read = 0x%02X, %v", got, err)
	}
}

// TestKeyboardSingleEventGranularity: one transition per read, never
// more, matching what firmware polling the CSR observes.
func TestKeyboardSingleEventGranularity(t *testing.T) {
	q := newEventQueue[KeyEvent]()
	kb := NewKeyboardDevice(q)
	for i := 0; i < 5; i++ {
		q.Push(KeyEvent{Code: KEY_SPACE, Pressed: true})
	}
	for i := 0; i < 5; i++ {
		got, _ := kb.Read(CSR_KEYBOARD, nil)
		if got != uint32(KEY_SPACE|KEY_PRESSED_BIT) {
			t.Fatalf("read %d = 0x%02X", i, got)
		}
	}
	if got, _ := kb.Read(CSR_KEYBOARD, nil); got != 0 {
		t.Fatalf("extra event: 0x%02X", got)
	}
}

func TestKeyboardWritesIgnored(t *testing.T) {
	q := newEventQueue[KeyEvent]()
	kb := NewKeyboardDevice(q)
	q.Push(KeyEvent{Code: KEY_Z, Pressed: true})
	if err := kb.Write(CSR_KEYBOARD, nil, 0xFFFFFFFF); err != nil {
		t.Fatalf("write errored: %v", err)
	}
	if got, _ := kb.Read(CSR_KEYBOARD, nil); got != uint32(KEY_Z|KEY_PRESSED_BIT) {
		t.Fatalf("write disturbed the queue: 0x%02X", got)
	}
}

func TestRuneToKeyCode(t *testing.T) {
	cases := []struct {
		r    rune
		want byte
	}{
		{'a', KEY_A}, {'z', KEY_Z}, {'A', KEY_A}, {'Q', KEY_Q},
		{'0', KEY_0}, {'9', KEY_9}, {' ', KEY_SPACE}, {'\n', KEY_ENTER},
		{'-', KEY_MINUS}, {'=', KEY_EQUALS}, {'[', KEY_LBRACKET},
		{']', KEY_RBRACKET}, {';', KEY_SEMICOLON}, {'\'', KEY_APOSTROPHE},
		{',', KEY_COMMA}, {'.', KEY_PERIOD}, {'/', KEY_SLASH},
		{'`', KEY_BACKTICK}, {'\\', KEY_BACKSLASH},
		{'€', 0}, {'\t', 0},
	}
	for _, tc := range cases {
		if got := runeToKeyCode(tc.r); got != tc.want {
			t.Fatalf("runeToKeyCode(%q) = 0x%02X, expected 0x%02X", tc.r, got, tc.want)
		}
	}
}
