package window

import "testing"

// fakeProcess wires a Resolver to an in-memory window layout.
type fakeProcess struct {
	mainWindow      Handle
	threads         []uint32
	windowsByThread map[uint32][]Handle
	owners          map[Handle]Handle
	threadsVisited  []uint32
}

func (p *fakeProcess) resolver() *Resolver {
	return &Resolver{
		processWindow: func(pid uint32) Handle { return p.mainWindow },
		threadIDs: func(pid uint32) ([]uint32, error) {
			return p.threads, nil
		},
		threadWindows: func(tid uint32, visit func(Handle) bool) {
			p.threadsVisited = append(p.threadsVisited, tid)
			for _, h := range p.windowsByThread[tid] {
				if !visit(h) {
					return
				}
			}
		},
		owner: func(h Handle) Handle { return p.owners[h] },
	}
}

func TestResolveDirect(t *testing.T) {
	p := &fakeProcess{mainWindow: 42}

	h, ok := p.resolver().Resolve(1234)

	if !ok || h != 42 {
		t.Fatalf("expected handle 42, got %v (ok=%v)", h, ok)
	}
	if len(p.threadsVisited) != 0 {
		t.Error("direct hit must not fall back to thread enumeration")
	}
}

func TestResolveThreadFallback(t *testing.T) {
	p := &fakeProcess{
		threads: []uint32{10, 20, 30},
		windowsByThread: map[uint32][]Handle{
			10: {},
			20: {100, 101, 102},
			30: {200},
		},
		// 100 is a dialog owned by 101; the first unowned window wins
		owners: map[Handle]Handle{100: 101},
	}

	h, ok := p.resolver().Resolve(1234)

	if !ok || h != 101 {
		t.Fatalf("expected handle 101, got %v (ok=%v)", h, ok)
	}
	// the search must short-circuit once a window is found
	for _, tid := range p.threadsVisited {
		if tid == 30 {
			t.Error("enumeration continued past the first qualifying window")
		}
	}
}

func TestResolveOnlyOwnedWindows(t *testing.T) {
	p := &fakeProcess{
		threads: []uint32{10},
		windowsByThread: map[uint32][]Handle{
			10: {100, 101},
		},
		owners: map[Handle]Handle{100: 5, 101: 5},
	}

	h, ok := p.resolver().Resolve(1234)

	if ok || h != 0 {
		t.Fatalf("expected not found, got %v (ok=%v)", h, ok)
	}
}

func TestResolveNoWindows(t *testing.T) {
	p := &fakeProcess{threads: []uint32{10, 20}}

	h, ok := p.resolver().Resolve(1234)

	if ok || h != 0 {
		t.Fatalf("expected not found, got %v (ok=%v)", h, ok)
	}
	if len(p.threadsVisited) != 2 {
		t.Errorf("expected all threads visited, got %v", p.threadsVisited)
	}
}
