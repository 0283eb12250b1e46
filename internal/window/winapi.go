package window

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumThreadWindows        = user32.NewProc("EnumThreadWindows")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextLength      = user32.NewProc("GetWindowTextLengthW")
	procGetWindowText            = user32.NewProc("GetWindowTextW")
)

// showWindow issues a ShowWindow command and reports whether the window was
// previously visible. Swapped out in tests.
var showWindow = func(h Handle, cmd int32) bool {
	return win.ShowWindow(win.HWND(h), cmd)
}

// Title reads the window's current title text, empty for a zero handle or
// an untitled window.
func Title(h Handle) string {
	if h == 0 {
		return ""
	}
	length, _, _ := procGetWindowTextLength.Call(uintptr(h))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowText.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), length+1)
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

type findContext struct {
	pid   uint32
	found Handle
}

var enumWindowsCallback = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	ctx := (*findContext)(unsafe.Pointer(lparam))
	var pid uint32
	_, _, _ = procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid != ctx.pid {
		return 1
	}
	// mirror the semantics of a "main window" query: top-level, unowned,
	// currently visible
	if win.GetWindow(win.HWND(hwnd), win.GW_OWNER) != 0 {
		return 1
	}
	if !win.IsWindowVisible(win.HWND(hwnd)) {
		return 1
	}
	ctx.found = Handle(hwnd)
	return 0
})

// processWindow is the direct query: the first visible unowned top-level
// window belonging to pid.
func processWindow(pid uint32) Handle {
	ctx := findContext{pid: pid}
	_, _, _ = procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(&ctx)))
	return ctx.found
}

type visitContext struct {
	visit func(Handle) bool
}

var enumThreadCallback = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	ctx := (*visitContext)(unsafe.Pointer(lparam))
	if !ctx.visit(Handle(hwnd)) {
		return 0
	}
	return 1
})

// enumThreadWindows visits the thread's top-level windows until visit
// returns false.
func enumThreadWindows(tid uint32, visit func(Handle) bool) {
	ctx := visitContext{visit: visit}
	_, _, _ = procEnumThreadWindows.Call(uintptr(tid), enumThreadCallback, uintptr(unsafe.Pointer(&ctx)))
}

// processThreadIDs lists the IDs of all threads belonging to pid.
func processThreadIDs(pid uint32) ([]uint32, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot failed: %w", err)
	}
	defer func() {
		_ = windows.CloseHandle(snapshot)
	}()

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	err = windows.Thread32First(snapshot, &entry)
	if err != nil {
		return nil, fmt.Errorf("Thread32First failed: %w", err)
	}

	var tids []uint32
	for {
		if entry.OwnerProcessID == pid {
			tids = append(tids, entry.ThreadID)
		}
		err = windows.Thread32Next(snapshot, &entry)
		if err != nil {
			// no more threads
			break
		}
	}
	return tids, nil
}

func windowOwner(h Handle) Handle {
	return Handle(win.GetWindow(win.HWND(h), win.GW_OWNER))
}
