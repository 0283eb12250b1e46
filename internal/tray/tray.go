// Package tray owns the notification-area icon that stands in for the
// hidden console window, and the message loop behind it.
package tray

import (
	"errors"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	// trayMsg is the Shell_NotifyIcon callback message (WM_APP+1).
	trayMsg = 0x8000 + 1

	menuExit = 1001

	className = "ContrayTrayWindow"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procAppendMenuW = user32.NewProc("AppendMenuW")
)

// Icon is the tray-resident stand-in for the wrapped console window. One
// Icon exists per run; it lives until the message loop ends.
type Icon struct {
	hwnd     win.HWND
	menu     win.HMENU
	nid      win.NOTIFYICONDATA
	onToggle func()
	logger   *zap.Logger
}

// Config describes the icon to create.
type Config struct {
	Tooltip  string
	IconPath string // empty for the wrapper executable's own icon
	OnToggle func() // double-click on the icon
}

var (
	// active is the wndproc target. The callback cannot carry a closure
	// through user32, so the single live Icon is reached through it.
	active *Icon

	taskbarCreated  = win.RegisterWindowMessage(syscall.StringToUTF16Ptr("TaskbarCreated"))
	wndProcCallback = syscall.NewCallback(wndProc)
)

// New creates the hidden host window and adds the icon to the notification
// area. It must be called from the goroutine that will run the message
// loop, with its OS thread locked.
func New(cfg Config, logger *zap.Logger) (*Icon, error) {
	t := &Icon{
		onToggle: cfg.OnToggle,
		logger:   logger,
	}
	active = t

	hInstance := win.GetModuleHandle(nil)
	cls, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		return nil, err
	}

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = wndProcCallback
	wc.HInstance = hInstance
	wc.LpszClassName = cls
	if win.RegisterClassEx(&wc) == 0 {
		return nil, errors.New("RegisterClassEx failed")
	}

	t.hwnd = win.CreateWindowEx(0, cls, cls, 0, 0, 0, 0, 0, 0, 0, hInstance, nil)
	if t.hwnd == 0 {
		return nil, errors.New("CreateWindowEx failed")
	}

	t.menu = win.CreatePopupMenu()
	appendMenuItem(t.menu, menuExit, "Exit")

	t.nid.CbSize = uint32(unsafe.Sizeof(t.nid))
	t.nid.HWnd = t.hwnd
	t.nid.UID = 1
	t.nid.UFlags = win.NIF_MESSAGE | win.NIF_ICON | win.NIF_TIP
	t.nid.UCallbackMessage = trayMsg
	t.nid.HIcon = loadIcon(cfg.IconPath, logger)
	setTip(&t.nid, cfg.Tooltip)

	if !win.Shell_NotifyIcon(win.NIM_ADD, &t.nid) {
		win.DestroyWindow(t.hwnd)
		return nil, errors.New("Shell_NotifyIcon failed")
	}
	return t, nil
}

// Run pumps the message loop until the icon is dismissed. It blocks the
// calling goroutine, which must stay locked to its OS thread.
func (t *Icon) Run() {
	var msg win.MSG
	for {
		ret := win.GetMessage(&msg, 0, 0, 0)
		if ret <= 0 {
			break
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

// Quit dismisses the icon and ends the message loop. Safe to call from any
// goroutine.
func (t *Icon) Quit() {
	win.PostMessage(t.hwnd, win.WM_CLOSE, 0, 0)
}

// SetTooltip updates the icon's hover text.
func (t *Icon) SetTooltip(tip string) {
	setTip(&t.nid, tip)
	win.Shell_NotifyIcon(win.NIM_MODIFY, &t.nid)
}

func wndProc(hwnd win.HWND, msg uint32, wparam, lparam uintptr) uintptr {
	t := active
	if t == nil || hwnd != t.hwnd {
		return win.DefWindowProc(hwnd, msg, wparam, lparam)
	}

	switch msg {
	case trayMsg:
		switch lparam {
		case win.WM_LBUTTONDBLCLK:
			if t.onToggle != nil {
				t.onToggle()
			}
		case win.WM_RBUTTONUP:
			t.showMenu()
		}
		return 0

	case win.WM_COMMAND:
		if win.LOWORD(uint32(wparam)) == menuExit {
			win.DestroyWindow(t.hwnd)
		}
		return 0

	case win.WM_DESTROY:
		win.Shell_NotifyIcon(win.NIM_DELETE, &t.nid)
		win.DestroyMenu(t.menu)
		win.PostQuitMessage(0)
		return 0
	}

	if msg == taskbarCreated {
		// explorer restarted, the icon has to be added again
		win.Shell_NotifyIcon(win.NIM_ADD, &t.nid)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wparam, lparam)
}

func (t *Icon) showMenu() {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return
	}
	// without foregrounding the host window first, the popup will not
	// dismiss on an outside click
	win.SetForegroundWindow(t.hwnd)
	win.TrackPopupMenuEx(t.menu, win.TPM_RIGHTBUTTON, pt.X, pt.Y, t.hwnd, nil)
}

func appendMenuItem(menu win.HMENU, id uint32, text string) {
	p, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return
	}
	_, _, _ = procAppendMenuW.Call(uintptr(menu), uintptr(win.MF_STRING), uintptr(id), uintptr(unsafe.Pointer(p)))
}

func setTip(nid *win.NOTIFYICONDATA, tip string) {
	u, err := syscall.UTF16FromString(tip)
	if err != nil {
		return
	}
	for i := range nid.SzTip {
		nid.SzTip[i] = 0
	}
	copy(nid.SzTip[:len(nid.SzTip)-1], u)
}
