package main

import (
	"sync"
	"time"
)

// TypeError reports that a store operation targeted a key whose stored
// value has a different Kind than the operation requires.
type TypeError struct {
	Key  string
	Have ValueKind
}

func (e *TypeError) Error() string {
	return "WRONGTYPE Operation against a key holding the wrong kind of value"
}

// Store is the shared, thread-safe keyspace. A single coarse mutex guards
// every operation; the lock is held for the duration of one operation and
// never across a socket read or write (see conn.go), satisfying the
// ordering and atomicity requirements of the concurrency model: the
// linearization point of a command is the moment it acquires this lock.
type Store struct {
	mu   sync.Mutex
	data map[string]*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string]*Entry)}
}

// lookup returns the live entry for key, deleting and reporting absence if
// it has expired. Caller must hold s.mu.
func (s *Store) lookup(key string, now time.Time) (*Entry, bool) {
	entry, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if entry.expired(now) {
		delete(s.data, key)
		return nil, false
	}
	return entry, true
}

// Get returns a copy of the String value at key, or ok=false if absent or
// expired. Returns a TypeError if key holds a non-string value.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(key, time.Now())
	if !found {
		return nil, false, nil
	}
	if entry.Kind != KindString {
		return nil, false, &TypeError{Key: key, Have: entry.Kind}
	}

	out := make([]byte, len(entry.Str))
	copy(out, entry.Str)
	return out, true, nil
}

// Set inserts or overwrites key as a String entry. It always discards any
// prior deadline; the new deadline is now+ttl when hasTTL is true, and
// there is none when hasTTL is false (ttl is then ignored).
func (s *Store) Set(key string, value []byte, ttl time.Duration, hasTTL bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	str := make([]byte, len(value))
	copy(str, value)

	entry := &Entry{Kind: KindString, Str: str}
	if hasTTL {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	s.data[key] = entry
}

// RPush appends values to the list at key in order, creating the list if
// absent, and returns the new length. Returns a TypeError (entry
// unmodified) if key holds a non-list value.
func (s *Store) RPush(key string, values [][]byte) (int, error) {
	return s.push(key, values, false)
}

// LPush prepends values to the list at key in order, so the final element
// of values ends up at index 0, and returns the new length. Returns a
// TypeError (entry unmodified) if key holds a non-list value.
func (s *Store) LPush(key string, values [][]byte) (int, error) {
	return s.push(key, values, true)
}

func (s *Store) push(key string, values [][]byte, left bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(key, time.Now())
	if !found {
		entry = &Entry{Kind: KindList, List: NewList()}
		s.data[key] = entry
	} else if entry.Kind != KindList {
		return 0, &TypeError{Key: key, Have: entry.Kind}
	}

	for _, v := range values {
		cp := make([]byte, len(v))
		copy(cp, v)
		if left {
			entry.List.LeftPush(cp)
		} else {
			entry.List.RightPush(cp)
		}
	}
	return entry.List.Length(), nil
}

// LRange returns the inclusive slice of the list at key described by
// start/end, resolving negative indices and clamping out-of-range ones.
// Absent key yields an empty, non-error result. Returns a TypeError if
// key holds a non-list value.
func (s *Store) LRange(key string, start, end int64) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(key, time.Now())
	if !found {
		return [][]byte{}, nil
	}
	if entry.Kind != KindList {
		return nil, &TypeError{Key: key, Have: entry.Kind}
	}

	length := int64(entry.List.Length())
	if length == 0 {
		return [][]byte{}, nil
	}

	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	if start < 0 {
		start = 0
	}
	if end >= length {
		end = length - 1
	}
	if start > end || start >= length {
		return [][]byte{}, nil
	}

	return entry.List.Range(int(start), int(end)), nil
}

// LLen returns the length of the list at key, 0 if absent. Returns a
// TypeError if key holds a non-list value.
func (s *Store) LLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.lookup(key, time.Now())
	if !found {
		return 0, nil
	}
	if entry.Kind != KindList {
		return 0, &TypeError{Key: key, Have: entry.Kind}
	}
	return entry.List.Length(), nil
}

// sweepExpired is an optional background reaper: a permitted optimization
// over pure lazy expiration, never required for correctness and never
// observable by a client (lazy expiration alone defines all semantics).
func (s *Store) sweepExpired(now time.Time) (removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.data {
		if entry.expired(now) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}
