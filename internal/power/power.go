// Package power keeps the system awake while the wrapped console runs.
package power

import "golang.org/x/sys/windows"

const (
	esContinuous     = 0x80000000
	esSystemRequired = 0x00000001
)

var (
	kernel32                    = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadExecutionState = kernel32.NewProc("SetThreadExecutionState")
)

// KeepAwake sets the continuous "system required" execution state so the
// machine does not enter idle sleep. Idempotent, and there is no matching
// release: the OS clears the flag when the process exits.
func KeepAwake() {
	_, _, _ = procSetThreadExecutionState.Call(uintptr(esContinuous | esSystemRequired))
}
