// media_loader.go - Firmware image loading for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
)

// LoadFlashImage reads a firmware image from disk and validates it
// against the RAM size. Flash images are opaque raw bytes: no header,
// no checksum, loaded at address 0.
func LoadFlashImage(path string, ramSize int) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flash image: %w", err)
	}
	if len(image) > ramSize {
		return nil, fmt.Errorf("flash image %s is %d bytes, RAM is %d", path, len(image), ramSize)
	}
	return image, nil
}
