package tenant

import "sync"

// Scope is the request-scoped slot holding the current tenant's company
// code. The request interceptor allocates one Scope per request, sets it at
// most once from the token's companyId claim, and clears it unconditionally
// before the request finishes. Because every request gets its own Scope,
// a stale value can never leak into an unrelated request even when the
// server reuses goroutines.
type Scope struct {
	mu   sync.Mutex
	code int64
	set  bool
}

// NewScope returns an empty tenant scope.
func NewScope() *Scope {
	return &Scope{}
}

// Set stores the current tenant's company code. Called once per request by
// the interceptor before authentication runs.
func (s *Scope) Set(code int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = code
	s.set = true
}

// Get returns the current tenant's company code. ok is false when the slot
// was never set or has been cleared.
func (s *Scope) Get() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code, s.set
}

// Clear empties the slot. Safe to call repeatedly; the interceptor defers it
// so it runs on every exit path, success or failure.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = 0
	s.set = false
}
