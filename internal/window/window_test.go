package window

import "testing"

// fakeScreen stands in for the OS side of ShowWindow: the command return
// value reports whether the window was visible before the call, and a zero
// handle never changes anything.
type fakeScreen struct {
	visible bool
	calls   []int32
}

func (s *fakeScreen) showWindow(h Handle, cmd int32) bool {
	s.calls = append(s.calls, cmd)
	if h == 0 {
		return false
	}
	was := s.visible
	s.visible = cmd == swShow
	return was
}

func stubShowWindow(t *testing.T, s *fakeScreen) {
	t.Helper()
	old := showWindow
	showWindow = s.showWindow
	t.Cleanup(func() { showWindow = old })
}

func TestToggleSelfInverse(t *testing.T) {
	screen := &fakeScreen{visible: true}
	stubShowWindow(t, screen)

	h := Handle(42)

	Toggle(h)
	if screen.visible {
		t.Fatal("first toggle should hide a visible window")
	}
	Toggle(h)
	if !screen.visible {
		t.Fatal("second toggle should show the window again")
	}
	Toggle(h)
	if screen.visible {
		t.Fatal("third toggle should hide the window")
	}

	// any even number of toggles restores the original visibility
	screen.visible = true
	for i := 0; i < 6; i++ {
		Toggle(h)
	}
	if !screen.visible {
		t.Error("even toggle count should restore original visibility")
	}
}

func TestToggleHidesFirst(t *testing.T) {
	screen := &fakeScreen{visible: true}
	stubShowWindow(t, screen)

	Toggle(Handle(42))

	if len(screen.calls) != 1 || screen.calls[0] != swHide {
		t.Errorf("expected a single hide command, got %v", screen.calls)
	}
}

func TestToggleZeroHandle(t *testing.T) {
	screen := &fakeScreen{visible: true}
	stubShowWindow(t, screen)

	Toggle(0)

	// hide reports failure on a null handle, triggering the show fallback;
	// neither call may change state
	if len(screen.calls) != 2 || screen.calls[0] != swHide || screen.calls[1] != swShow {
		t.Errorf("expected hide then show, got %v", screen.calls)
	}
	if !screen.visible {
		t.Error("toggling a zero handle must not change observable state")
	}
}

func TestTailTruncate(t *testing.T) {
	long := ""
	for i := 0; i < 17; i++ {
		long += "X"
	}
	tail := ""
	for i := 0; i < 63; i++ {
		tail += "Y"
	}
	long += tail

	testCases := []struct {
		name     string
		in       string
		max      int
		expected string
	}{
		{"empty", "", 63, ""},
		{"shorter than limit", "cmd - build.log", 63, "cmd - build.log"},
		{"length 40 unchanged", "0123456789012345678901234567890123456789", 63, "0123456789012345678901234567890123456789"},
		{"exactly at limit", tail, 63, tail},
		{"keeps the suffix", long, 63, tail},
		{"multibyte runes", "héllo wörld", 5, "wörld"},
	}

	for _, tc := range testCases {
		if got := TailTruncate(tc.in, tc.max); got != tc.expected {
			t.Errorf("%s: TailTruncate(%q, %d) = %q, expected %q", tc.name, tc.in, tc.max, got, tc.expected)
		}
	}
}
