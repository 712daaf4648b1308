package value

import "sync/atomic"

// buffer is a reference-counted, copy-on-write data slice shared by every
// Value that was cloned from a common ancestor: arrays use copy-on-write
// shared buffers, and mutation clones only if shared.
// Go slices already share a backing array on plain assignment, so buffer
// exists only to track how many Values currently alias that backing array;
// a mutator must call uniqueData and write only through the slice (and
// keep the buffer) it returns, which is a clone when the buffer is shared.
type buffer[T any] struct {
	refs int32
	data []T
}

func newBuffer[T any](data []T) *buffer[T] {
	return &buffer[T]{refs: 1, data: data}
}

// retain increments the refcount and returns b, for use when a second
// Value starts aliasing the same buffer.
func (b *buffer[T]) retain() *buffer[T] {
	if b != nil {
		atomic.AddInt32(&b.refs, 1)
	}
	return b
}

// release decrements the refcount. Go is garbage collected, so this exists
// only to keep uniqueData accurate; there is no explicit free.
func (b *buffer[T]) release() {
	if b != nil {
		atomic.AddInt32(&b.refs, -1)
	}
}

// uniqueData returns a slice safe to mutate in place: b.data itself if this
// buffer is uniquely owned, or a fresh clone (with its own fresh buffer
// installed via the returned *buffer[T]) otherwise.
func (b *buffer[T]) uniqueData() (*buffer[T], []T) {
	if b == nil {
		return nil, nil
	}
	if atomic.LoadInt32(&b.refs) == 1 {
		return b, b.data
	}
	cp := make([]T, len(b.data))
	copy(cp, b.data)
	nb := newBuffer(cp)
	b.release()
	return nb, cp
}
