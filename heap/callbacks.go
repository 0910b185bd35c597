package heap

// AcquireCallback is called after a block has been handed out. size is the usable capacity of the block,
// which may be larger than the size that was requested.
type AcquireCallback func(
	heap *Heap,
	ptr Ptr,
	size int,
	userData interface{},
)

// ReleaseCallback is called after a block has been returned to the free list
type ReleaseCallback func(
	heap *Heap,
	ptr Ptr,
	size int,
	userData interface{},
)

// MemoryCallbackOptions lets consumers observe block traffic without wrapping the heap. Callbacks
// run after the heap's internal lock has been dropped, but they must not assume anything about the
// order in which concurrent callers observe them.
type MemoryCallbackOptions struct {
	Acquire  AcquireCallback
	Release  ReleaseCallback
	UserData interface{}
}

type memoryCallbacks struct {
	Callbacks *MemoryCallbackOptions
	Heap      *Heap
}

func (c *memoryCallbacks) Acquire(ptr Ptr, size int) {
	if c.Callbacks != nil && c.Callbacks.Acquire != nil {
		c.Callbacks.Acquire(c.Heap, ptr, size, c.Callbacks.UserData)
	}
}

func (c *memoryCallbacks) Release(ptr Ptr, size int) {
	if c.Callbacks != nil && c.Callbacks.Release != nil {
		c.Callbacks.Release(c.Heap, ptr, size, c.Callbacks.UserData)
	}
}
