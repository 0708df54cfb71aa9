//go:build !windows

// Package console provides Windows console detection and Ctrl+C handling.
// On non-Windows platforms these are stubs: the standard signal handling
// is reliable there.
package console

// IsRunningFromConsole returns true on non-Windows platforms; they always
// have a usable terminal.
func IsRunningFromConsole() bool {
	return true
}

// SetupConsoleHandler returns a no-op re-register function on non-Windows
// platforms.
func SetupConsoleHandler(shutdownChan chan struct{}) func() {
	return func() {}
}
