package heap

import "github.com/dolthub/swiss"

// allocationTracker indexes live pointers by the size the caller asked for. A nil tracker accepts
// every pointer and records nothing.
type allocationTracker struct {
	requested *swiss.Map[Ptr, int]
}

func newAllocationTracker(flags CreateFlags) *allocationTracker {
	if flags&CreateTrackAllocations == 0 {
		return nil
	}

	return &allocationTracker{
		requested: swiss.NewMap[Ptr, int](64),
	}
}

func (t *allocationTracker) track(ptr Ptr, requestedSize int) {
	if t == nil {
		return
	}
	t.requested.Put(ptr, requestedSize)
}

func (t *allocationTracker) untrack(ptr Ptr) {
	if t == nil {
		return
	}
	t.requested.Delete(ptr)
}

func (t *allocationTracker) owns(ptr Ptr) bool {
	if t == nil {
		return true
	}
	return t.requested.Has(ptr)
}

func (t *allocationTracker) count() int {
	if t == nil {
		return 0
	}
	return t.requested.Count()
}

func (t *allocationTracker) visit(visitor func(ptr Ptr, requestedSize int) bool) {
	if t == nil {
		return
	}
	t.requested.Iter(func(ptr Ptr, requestedSize int) bool {
		return !visitor(ptr, requestedSize)
	})
}

func (t *allocationTracker) clear() {
	if t == nil {
		return
	}
	t.requested = swiss.NewMap[Ptr, int](64)
}
