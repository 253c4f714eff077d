// registers.go - Master CSR identifier map for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

// The peripheral register map is fixed: firmware reaches every device
// through these 12-bit CSR identifiers and nothing else. Accessing any
// identifier not listed here faults the CPU.
const (
	// Character printer
	CSR_CHAR_TARGET  = 1024 // scratch: target (low 16 = x, high 16 = y)
	CSR_CHAR_COLOR   = 1025 // scratch: color (0x00RRGGBB)
	CSR_CHAR_CODE    = 1026 // scratch: character code latch
	CSR_CHAR_TRIGGER = 1037 // trigger: emit glyph blit

	// Keyboard
	CSR_KEYBOARD = 1035 // read one key event; writes ignored

	// Framebuffer display
	CSR_DISP_MATRIX_LO = 1050 // scratch: matrix low 32 bits
	CSR_DISP_MATRIX_HI = 1051 // scratch: matrix high 32 bits
	CSR_DISP_TARGET    = 1052 // scratch: target (low 16 = x, high 16 = y)
	CSR_DISP_SOURCE    = 1053 // scratch: source (low 16 = x, high 16 = y)
	CSR_DISP_SIZE      = 1054 // scratch: size (low 16 = x, high 16 = y)
	CSR_DISP_COLOR     = 1055 // scratch: color (0x00RRGGBB)
	CSR_DISP_MATRIX    = 1056 // trigger: 8x8 matrix blit
	CSR_DISP_FLOODFILL = 1057 // trigger: full-screen flood fill
	CSR_DISP_COPY      = 1058 // reserved: copy (faults if written)
	CSR_DISP_RECT      = 1059 // trigger: rectangle fill

	// Debug log
	CSR_DEBUG_PRINT   = 1100 // print latched-length bytes from RAM[data..]
	CSR_DEBUG_NEWLINE = 1101 // emit a newline
	CSR_DEBUG_LENGTH  = 1102 // latch pending byte count
	CSR_DEBUG_CLEAR   = 1103 // drop all scrollback

	// Heap gauge
	CSR_HEAP_GAUGE = 1112 // store guest heap-bytes-used
)
