package service

import "sync"

// lockTable hands out one mutex per string key. Entries are created lazily
// and never evicted, matching the lifetime of the wallet table and the
// idempotency cache they guard.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}

// lock acquires the mutex for key and returns its unlock func.
func (t *lockTable) lock(key string) func() {
	l := t.get(key)
	l.Lock()
	return l.Unlock
}

// lockPair acquires the mutexes for two keys in lexicographic order so that
// concurrent transfers over the same wallets cannot deadlock. Both keys must
// differ.
func (t *lockTable) lockPair(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	first, second := t.get(a), t.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
