package launch

import "github.com/contray/contray/internal/window"

// tooltipMax is the classic notification icon text limit.
const tooltipMax = 63

// Tooltip returns the text for the tray icon: the configured override when
// present, otherwise the tail of the child's window title, finally the
// executable name. Window titles are frequently still empty right after
// window creation, so callers should give the child a moment before the
// first read.
func (c *Child) Tooltip(configured string, r *window.Resolver) string {
	if configured != "" {
		return configured
	}
	if h, ok := r.Resolve(c.PID()); ok {
		if t := window.TailTruncate(window.Title(h), tooltipMax); t != "" {
			return t
		}
	}
	return c.Name()
}
