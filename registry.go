package corebpe

import "sync"

// Handle identifies a Tokenizer registered with a Registry. It is a plain
// integer so it can cross a foreign-function or RPC boundary that cannot
// carry a native pointer.
type Handle uint64

// Registry hands out Handles for Tokenizer instances so a host runtime that
// cannot hold a native Go pointer can still address one. A Tokenizer is
// immutable and cheap to share, so the registry stores it directly rather
// than reference-counting; Release simply drops the map entry.
//
// The zero value is not usable; construct with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	next    Handle
	entries map[Handle]*Tokenizer
}

// NewRegistry returns an empty Registry ready for use.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]*Tokenizer)}
}

// Register assigns tok a new Handle, valid until Release is called with it.
func (r *Registry) Register(tok *Tokenizer) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := r.next
	r.entries[h] = tok
	return h
}

// Lookup returns the Tokenizer registered under h, or ok == false if h is
// unknown or has been released.
func (r *Registry) Lookup(h Handle) (tok *Tokenizer, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tok, ok = r.entries[h]
	return tok, ok
}

// Release forgets h. Releasing an unknown or already-released handle is a
// no-op.
func (r *Registry) Release(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, h)
}
