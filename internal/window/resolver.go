package window

// Resolver locates the main top-level window of a process. The Win32 legs
// are injected as functions so the search strategy itself can be exercised
// in tests.
type Resolver struct {
	processWindow func(pid uint32) Handle
	threadIDs     func(pid uint32) ([]uint32, error)
	threadWindows func(tid uint32, visit func(Handle) bool)
	owner         func(h Handle) Handle
}

// NewResolver returns a Resolver backed by user32 and the Toolhelp snapshot
// API.
func NewResolver() *Resolver {
	return &Resolver{
		processWindow: processWindow,
		threadIDs:     processThreadIDs,
		threadWindows: enumThreadWindows,
		owner:         windowOwner,
	}
}

// Resolve returns the process's main window. The direct query is tried
// first; immediately after process creation it commonly comes back empty
// because the child has not created (or shown) its window yet, so the
// process's threads are then walked and the first unowned top-level window
// across them wins. Owned windows, e.g. dialogs, never qualify. No retry or
// backoff happens here; callers that need a window that may not exist yet
// own the delay.
func (r *Resolver) Resolve(pid uint32) (Handle, bool) {
	if h := r.processWindow(pid); h != 0 {
		return h, true
	}

	tids, err := r.threadIDs(pid)
	if err != nil {
		return 0, false
	}
	for _, tid := range tids {
		var found Handle
		r.threadWindows(tid, func(h Handle) bool {
			if r.owner(h) != 0 {
				return true
			}
			found = h
			return false
		})
		if found != 0 {
			return found, true
		}
	}
	return 0, false
}
