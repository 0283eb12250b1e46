// Package window locates and drives the top-level window owned by another
// process. Handles are never owned here; the owning process can destroy its
// window at any time, so every operation degrades to a no-op on a stale or
// zero handle.
package window

// Handle identifies a top-level window. The zero Handle means "no window".
type Handle uintptr

// ShowWindow command values.
const (
	swHide = 0
	swShow = 5
)

// Toggle flips the window's visibility without tracking any state of its
// own: the OS is the single source of truth. Hide is attempted first, so
// applying Toggle to a freshly launched console deterministically hides it.
// When the hide command reports the window was already hidden (or h is
// zero), show is attempted instead. Both commands are safe no-ops on an
// invalid handle.
func Toggle(h Handle) {
	if !showWindow(h, swHide) {
		showWindow(h, swShow)
	}
}

// TailTruncate keeps at most max trailing runes of s. Window titles tend to
// carry their most identifying part at the end, e.g. the tail of a file
// path, so the suffix is the part worth keeping.
func TailTruncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[len(r)-max:])
}
