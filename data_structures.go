package main

// List, Set, and Hash are the store's per-key containers. None of them
// lock internally: every access happens while the owning Store holds its
// single coarse lock (see store.go), so a second layer of locking here
// would only add overhead without adding safety.

// List is a doubly-linked list of byte-string values, supporting O(1)
// push at either end and O(n) indexed access. It has no pop operation.
type List struct {
	head   *ListNode
	tail   *ListNode
	length int
}

type ListNode struct {
	value []byte
	prev  *ListNode
	next  *ListNode
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// NewHash creates an empty hash.
func NewHash() *Hash {
	return &Hash{fields: make(map[string][]byte)}
}

// LeftPush inserts value at the head and returns the new length.
func (l *List) LeftPush(value []byte) int {
	node := &ListNode{value: value}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.length++
	return l.length
}

// RightPush inserts value at the tail and returns the new length.
func (l *List) RightPush(value []byte) int {
	node := &ListNode{value: value}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		l.tail.next = node
		node.prev = l.tail
		l.tail = node
	}
	l.length++
	return l.length
}

// Length returns the number of elements.
func (l *List) Length() int {
	return l.length
}

// Range returns the inclusive slice [start, end], both already clamped and
// resolved by the caller (see store.go's LRange, which owns index
// resolution).
func (l *List) Range(start, end int) [][]byte {
	if start > end || start >= l.length || l.length == 0 {
		return [][]byte{}
	}

	result := make([][]byte, 0, end-start+1)
	current := l.head
	for i := 0; i < start; i++ {
		current = current.next
	}
	for i := start; i <= end && current != nil; i++ {
		result = append(result, current.value)
		current = current.next
	}
	return result
}

// Set is an unordered collection of unique byte-strings, keyed by their
// string form. Unexercised by the commands in scope today but kept so the
// store's Value type doesn't need a rewrite when set commands are added.
type Set struct {
	members map[string]struct{}
}

// Add inserts member, returning true if it was not already present.
func (s *Set) Add(member string) bool {
	_, exists := s.members[member]
	s.members[member] = struct{}{}
	return !exists
}

// Remove deletes member, returning true if it was present.
func (s *Set) Remove(member string) bool {
	_, exists := s.members[member]
	if exists {
		delete(s.members, member)
	}
	return exists
}

// Members returns all members in unspecified order.
func (s *Set) Members() []string {
	members := make([]string, 0, len(s.members))
	for member := range s.members {
		members = append(members, member)
	}
	return members
}

// Card returns the number of members.
func (s *Set) Card() int {
	return len(s.members)
}

// IsMember reports whether member is present.
func (s *Set) IsMember(member string) bool {
	_, exists := s.members[member]
	return exists
}

// Hash is a mapping from field names to byte-string values. Unexercised
// by the commands in scope today; kept for the same reason as Set.
type Hash struct {
	fields map[string][]byte
}

// Set stores value under field, returning true if field was new.
func (h *Hash) Set(field string, value []byte) bool {
	_, exists := h.fields[field]
	h.fields[field] = value
	return !exists
}

// Get returns the value stored under field, if any.
func (h *Hash) Get(field string) ([]byte, bool) {
	value, exists := h.fields[field]
	return value, exists
}

// Del removes field, returning true if it was present.
func (h *Hash) Del(field string) bool {
	_, exists := h.fields[field]
	if exists {
		delete(h.fields, field)
	}
	return exists
}

// Len returns the number of fields.
func (h *Hash) Len() int {
	return len(h.fields)
}
