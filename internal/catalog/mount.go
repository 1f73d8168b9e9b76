package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Mount scopes one front-end lifetime. Work started under a mount uses its
// context, and results are applied through Run so nothing lands after Close.
type Mount struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewMount opens a mount derived from parent.
func NewMount(parent context.Context) *Mount {
	if parent == nil {
		parent = context.Background()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.WithValue(parent, loadIDKey{}, id))
	return &Mount{id: id, ctx: ctx, cancel: cancel}
}

type loadIDKey struct{}

// LoadIDFromContext returns the ID of the mount ctx was derived from.
func LoadIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(loadIDKey{}).(string)
	return id, ok && id != ""
}

// ID identifies the mount in logs.
func (m *Mount) ID() string {
	return m.id
}

// Context is cancelled when the mount closes or its parent is done.
func (m *Mount) Context() context.Context {
	return m.ctx
}

// Active reports whether results may still be applied.
func (m *Mount) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed && m.ctx.Err() == nil
}

// Run calls fn while holding the mount lock, only if the mount is active.
// It reports whether fn ran.
func (m *Mount) Run(fn func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// Close cancels in-flight work and blocks until any running Run returns.
// It is safe to call more than once.
func (m *Mount) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
}
