package service

import "sync"

// challengeLocks serializes read-modify-append sequences per
// challenge id. "Check for an actionable event, then append" is not
// atomic, so a manual log and the reconciliation job must never
// interleave on the same challenge.
type challengeLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func newChallengeLocks() *challengeLocks {
	return &challengeLocks{m: make(map[int64]*sync.Mutex)}
}

func (l *challengeLocks) lock(id int64) func() {
	l.mu.Lock()
	cm, ok := l.m[id]
	if !ok {
		cm = &sync.Mutex{}
		l.m[id] = cm
	}
	l.mu.Unlock()

	cm.Lock()
	return cm.Unlock
}
