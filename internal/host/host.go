package host

import (
	"sync"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/managed"
)

// Host pairs a heap with the bridge that serves it. Calls through a Host
// are serialised.
type Host struct {
	mu     sync.Mutex
	bridge *bridge.Bridge
	heap   *managed.Heap
}

// New returns a host over a fresh heap.
func New(b *bridge.Bridge) *Host {
	return &Host{bridge: b, heap: managed.NewHeap()}
}

// Heap exposes the managed heap.
func (h *Host) Heap() *managed.Heap { return h.heap }

// Close releases every config object the host's bridge still owns.
func (h *Host) Close() error { return h.bridge.Close() }

// frame scopes one call. Everything allocated inside it is dropped by free
// unless reachable from a kept reference. The first failure sticks in err
// and turns later allocations into no-ops.
type frame struct {
	host *Host
	mark managed.Ref
	keep []managed.Ref
	err  error
}

func (h *Host) frame() *frame {
	h.mu.Lock()
	return &frame{host: h, mark: h.heap.Mark()}
}

func (f *frame) free() {
	f.host.heap.FreeSince(f.mark, f.keep...)
	f.host.mu.Unlock()
}

func (f *frame) track(r managed.Ref, err error) managed.Ref {
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return managed.Null
	}
	return r
}

func (f *frame) bytes(buf []byte) managed.Ref {
	if f.err != nil {
		return managed.Null
	}
	return f.track(f.host.bridge.ToManagedBytes(f.host.heap, buf))
}

func (f *frame) str(s string) managed.Ref {
	if f.err != nil {
		return managed.Null
	}
	return f.track(f.host.heap.NewString(s))
}

func (f *frame) byteArrays(bufs [][]byte) managed.Ref {
	elems := make([]managed.Ref, len(bufs))
	for i, buf := range bufs {
		elems[i] = f.bytes(buf)
	}
	if f.err != nil {
		return managed.Null
	}
	return f.track(f.host.heap.NewObjectArray(elems))
}
