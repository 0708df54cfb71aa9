//go:build windows

// Package console provides Windows console detection and Ctrl+C handling.
//
// The feeder must release the virtual device on exit no matter how the
// process is told to stop, and Go's os.Interrupt handling is not reliable
// once SDL is running with a locked OS thread. A native console control
// handler catches Ctrl+C and Ctrl+Break directly. The package also hides
// the console window when the tool is started by double-click so it lives
// in the tray only.
package console

import (
	"log"
	"sync/atomic"
	"syscall"
	"unsafe"
)

var (
	kernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procGetConsoleProcessList = kernel32.NewProc("GetConsoleProcessList")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	ctrlCEvent     = 0
	ctrlBreakEvent = 1
)

// IsRunningFromConsole reports whether the process was started from a
// terminal. A GUI-mode build has no console and runs from the tray. A
// console-mode build that was double-clicked gets a console of its own
// with no other process attached; that window is freed so only the tray
// remains, and false is returned.
func IsRunningFromConsole() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return false
	}

	var pids [2]uint32
	n, _, _ := procGetConsoleProcessList.Call(
		uintptr(unsafe.Pointer(&pids[0])), uintptr(len(pids)))
	if n == 1 {
		procFreeConsole.Call()
		return false
	}
	return true
}

type handlerState struct {
	closed       int32
	shutdownChan chan struct{}
	callbackFn   uintptr
}

var globalHandlerState *handlerState

// SetupConsoleHandler installs a native console control handler that
// closes shutdownChan on Ctrl+C or Ctrl+Break. The returned function
// re-registers the handler; call it after SDL init, which replaces
// console handlers of its own.
func SetupConsoleHandler(shutdownChan chan struct{}) func() {
	globalHandlerState = &handlerState{shutdownChan: shutdownChan}

	globalHandlerState.callbackFn = syscall.NewCallback(func(ctrlType uint32) uintptr {
		if ctrlType == ctrlCEvent || ctrlType == ctrlBreakEvent {
			if atomic.CompareAndSwapInt32(&globalHandlerState.closed, 0, 1) {
				close(globalHandlerState.shutdownChan)
			}
			return 1
		}
		return 0
	})

	registerHandler := func() {
		if globalHandlerState == nil {
			return
		}
		ret, _, _ := procSetConsoleCtrlHandler.Call(globalHandlerState.callbackFn, 1)
		if ret == 0 {
			log.Printf("Warning: failed to set console control handler")
		}
	}

	registerHandler()
	return registerHandler
}
