// main.go - Main entry point for the Bobby Engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/BobbyEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147mBobby Engine\033[0m - a soft 32-bit RISC machine with CSR-mapped peripherals.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/BobbyEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	flashPath := flag.String("flash", "", "firmware image loaded into RAM at address 0")
	persistRAM := flag.String("persist-ram", "", "reserved: RAM persistence image (accepted, not yet exercised)")
	scale := flag.Int("scale", DISPLAY_SCALE, "integer display window scale")
	flag.Parse()

	boilerPlate()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *persistRAM != "" {
		logger.Warn("--persist-ram is reserved and not yet exercised", "path", *persistRAM)
	}

	// Event queues: one producer, one consumer each. The CPU worker
	// produces display and debug events; the window thread produces key
	// events.
	displayEvents := newEventQueue[DisplayEvent]()
	debugEvents := newEventQueue[DebugMessage]()
	keyEvents := newEventQueue[KeyEvent]()

	// Wire every peripheral onto the CSR bus in identifier order.
	csrs := NewCsrBus()
	heapGauge, heapCsr := NewHeapGauge()
	wiring := []struct {
		ids []uint32
		dev CsrDevice
	}{
		{[]uint32{CSR_CHAR_TARGET, CSR_CHAR_COLOR, CSR_CHAR_CODE, CSR_CHAR_TRIGGER}, NewCharPrinter(displayEvents)},
		{[]uint32{CSR_KEYBOARD}, NewKeyboardDevice(keyEvents)},
		{[]uint32{
			CSR_DISP_MATRIX_LO, CSR_DISP_MATRIX_HI, CSR_DISP_TARGET, CSR_DISP_SOURCE,
			CSR_DISP_SIZE, CSR_DISP_COLOR, CSR_DISP_MATRIX, CSR_DISP_FLOODFILL,
			CSR_DISP_COPY, CSR_DISP_RECT,
		}, NewDisplayDevice(displayEvents)},
		{[]uint32{CSR_DEBUG_PRINT, CSR_DEBUG_NEWLINE, CSR_DEBUG_LENGTH, CSR_DEBUG_CLEAR}, NewDebugLogCsr(debugEvents)},
		{[]uint32{CSR_HEAP_GAUGE}, heapCsr},
	}
	for _, w := range wiring {
		if err := csrs.Install(w.ids, w.dev); err != nil {
			logger.Error("csr wiring failed", "error", err)
			os.Exit(1)
		}
	}

	mem, err := NewMemory(DEFAULT_MEMORY_SIZE)
	if err != nil {
		logger.Error("memory configuration failed", "error", err)
		os.Exit(1)
	}
	cpu := NewCPU(csrs, mem)

	if *flashPath != "" {
		image, err := LoadFlashImage(*flashPath, mem.Size())
		if err != nil {
			logger.Error("flash load failed", "error", err)
			os.Exit(1)
		}
		if err := cpu.Flash(image); err != nil {
			logger.Error("flash failed", "error", err)
			os.Exit(1)
		}
		logger.Info("flashed firmware", "path", *flashPath, "bytes", len(image))
	}

	handle := NewCPUHandle(cpu)
	handle.Start()

	// Dashboard on its own goroutine; the display loop owns the main
	// thread. Leaving either one shuts the whole machine down.
	debugLog := NewDebugLog(debugEvents)
	dashboard := NewDashboard(handle, heapGauge, debugLog)
	videoOut := newVideoOutput(displayEvents, keyEvents, *scale)

	dashDone := make(chan error, 1)
	go func() {
		err := dashboard.Run()
		dashDone <- err
		videoOut.RequestClose()
	}()

	if err := videoOut.Run(); err != nil {
		logger.Error("display backend failed", "error", err)
	}
	handle.RequestStop()

	dashboard.RequestClose()
	if err := <-dashDone; err != nil {
		logger.Error("dashboard failed", "error", err)
	}

	if fault := handle.Stop(); fault != nil {
		logger.Error("cpu stopped on fault", "fault", fault)
		os.Exit(1)
	}
	logger.Info("orderly shutdown")
}
