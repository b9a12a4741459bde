package cache

import (
	"container/list"
	"sync"
	"time"
)

// Store is a capacity-bounded key/value container whose entries expire
// after a fixed TTL. When full, inserting a new key evicts the
// least-recently-inserted entry. Expired entries are purged lazily.
// All methods are safe for concurrent use.
type Store[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[K]*entry[K, V]
	order    *list.List // front = oldest insertion
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	elem      *list.Element
}

func New[K comparable, V any](capacity int, ttl time.Duration) *Store[K, V] {
	return &Store[K, V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[K]*entry[K, V]),
		order:    list.New(),
	}
}

// Set stores value under key with the store's default TTL.
func (s *Store[K, V]) Set(key K, value V) {
	s.SetTTL(key, value, s.ttl)
}

// SetTTL stores value under key with an explicit TTL. Re-setting an
// existing key refreshes its expiry and its position in the eviction
// order, so it counts as a fresh insertion.
func (s *Store[K, V]) SetTTL(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value, ttl)
}

func (s *Store[K, V]) set(key K, value V, ttl time.Duration) {
	now := time.Now()

	if e, ok := s.entries[key]; ok {
		e.value = value
		e.expiresAt = now.Add(ttl)
		s.order.MoveToBack(e.elem)
		return
	}

	s.purgeExpired(now)

	if s.capacity > 0 && len(s.entries) >= s.capacity {
		if front := s.order.Front(); front != nil {
			s.evict(front.Value.(*entry[K, V]))
		}
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: now.Add(ttl)}
	e.elem = s.order.PushBack(e)
	s.entries[key] = e
}

// Get returns the live value for key. Expired entries are removed and
// reported as absent.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		s.evict(e)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Update applies fn to the current value (zero value and ok=false when
// absent or expired) and stores the result under the store's lock,
// so read-modify-write sequences like counter increments do not lose
// updates under concurrency.
func (s *Store[K, V]) Update(key K, fn func(old V, ok bool) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	var old V
	ok := false
	if e, live := s.entries[key]; live {
		if time.Now().After(e.expiresAt) {
			s.evict(e)
		} else {
			old = e.value
			ok = true
		}
	}

	updated := fn(old, ok)
	s.set(key, updated, s.ttl)
	return updated
}

func (s *Store[K, V]) Remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.evict(e)
	}
}

// Keys returns a snapshot of live keys in insertion order.
func (s *Store[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	keys := make([]K, 0, len(s.entries))
	for elem := s.order.Front(); elem != nil; {
		e := elem.Value.(*entry[K, V])
		next := elem.Next()
		if now.After(e.expiresAt) {
			s.evict(e)
		} else {
			keys = append(keys, e.key)
		}
		elem = next
	}
	return keys
}

// Len reports the number of live entries.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpired(time.Now())
	return len(s.entries)
}

func (s *Store[K, V]) purgeExpired(now time.Time) {
	for elem := s.order.Front(); elem != nil; {
		e := elem.Value.(*entry[K, V])
		next := elem.Next()
		if now.After(e.expiresAt) {
			s.evict(e)
		}
		elem = next
	}
}

func (s *Store[K, V]) evict(e *entry[K, V]) {
	s.order.Remove(e.elem)
	delete(s.entries, e.key)
}
