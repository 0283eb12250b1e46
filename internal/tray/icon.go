package tray

import (
	"syscall"

	"github.com/lxn/win"
	"go.uber.org/zap"
)

// idiApplication is the stock application icon resource.
const idiApplication = 32512

// loadIcon resolves the image for the tray icon. An explicit .ico path wins;
// otherwise the wrapper executable's own icon is used, with the stock
// application icon as the last resort.
func loadIcon(path string, logger *zap.Logger) win.HICON {
	if path != "" {
		p, err := syscall.UTF16PtrFromString(path)
		if err == nil {
			h := win.LoadImage(0, p, win.IMAGE_ICON, 0, 0, win.LR_LOADFROMFILE|win.LR_DEFAULTSIZE)
			if h != 0 {
				return win.HICON(h)
			}
		}
		logger.Warn("could not load tray icon, falling back to default",
			zap.String("path", path))
	}

	hInstance := win.GetModuleHandle(nil)
	if h := win.LoadIcon(hInstance, win.MAKEINTRESOURCE(1)); h != 0 {
		return h
	}
	return win.LoadIcon(0, win.MAKEINTRESOURCE(idiApplication))
}
