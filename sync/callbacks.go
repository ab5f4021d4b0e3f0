package sync

import "sort"

// CallbackRegistry maps an entry's starting offset to the one-shot
// completion callback registered for it by an async Log call. Keys
// are unique because offsets are unique; an entry is removed exactly
// when it fires. Callers are expected to hold the Coordinator's
// mutex around every method here — this type has no locking of its
// own.
type CallbackRegistry struct {
	callbacks map[uint64]func(bool)
}

func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{callbacks: make(map[uint64]func(bool))}
}

// Insert registers cb against the offset at which the entry's length
// prefix begins.
func (r *CallbackRegistry) Insert(offset uint64, cb func(bool)) {
	r.callbacks[offset] = cb
}

// Take removes and returns the callback registered at offset, if
// any.
func (r *CallbackRegistry) Take(offset uint64) (func(bool), bool) {
	cb, ok := r.callbacks[offset]
	if ok {
		delete(r.callbacks, offset)
	}
	return cb, ok
}

// Len reports how many callbacks are still pending.
func (r *CallbackRegistry) Len() int {
	return len(r.callbacks)
}

// TakeAll drains every pending callback, in ascending offset order,
// for Shutdown to fire with false.
func (r *CallbackRegistry) TakeAll() []func(bool) {
	offsets := make([]uint64, 0, len(r.callbacks))
	for offset := range r.callbacks {
		offsets = append(offsets, offset)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	cbs := make([]func(bool), 0, len(offsets))
	for _, offset := range offsets {
		cbs = append(cbs, r.callbacks[offset])
		delete(r.callbacks, offset)
	}
	return cbs
}
