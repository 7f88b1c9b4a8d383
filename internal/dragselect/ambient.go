package dragselect

import "sync"

// AmbientGuard suppresses the host surface's native text selection (or
// other default pointer behavior) while a gesture is live. Implementations
// must tolerate Restore without a prior Suppress.
type AmbientGuard interface {
	Suppress()
	Restore()
}

// NopGuard is the default guard for surfaces with no ambient state to
// manage.
type NopGuard struct{}

func (NopGuard) Suppress() {}
func (NopGuard) Restore()  {}

// ambientState wraps a guard with set/clear symmetry: Suppress and Restore
// reach the underlying guard exactly once per suppression, so release can
// always attempt a restore even if another path already did.
type ambientState struct {
	mu     sync.Mutex
	guard  AmbientGuard
	active bool
}

func (a *ambientState) suppress() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active || a.guard == nil {
		return
	}
	a.active = true
	a.guard.Suppress()
}

func (a *ambientState) restore() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || a.guard == nil {
		return
	}
	a.active = false
	a.guard.Restore()
}
