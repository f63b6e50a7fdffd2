package chain

import (
	"maps"
	"slices"
	"sync"

	"dario.cat/mergo"
)

// AppendSlot appends a fresh, empty record to *parent and returns it.
// It is not safe for concurrent use; see [Slots].
func AppendSlot[E any](parent *[]*E) *E {
	e := fresh[E]()
	*parent = append(*parent, e)
	return e
}

// AssignSlot stores a fresh, empty record at key, replacing any previous
// value, and returns it. It is not safe for concurrent use; see [SlotMap].
func AssignSlot[K comparable, E any](parent map[K]*E, key K) *E {
	e := fresh[E]()
	parent[key] = e
	return e
}

// Slots hands out records to concurrently running fan-out items.
// The zero value is ready to use.
type Slots[E any] struct {
	mu    sync.Mutex
	items []*E
}

// Append allocates a record at the end of s.
func (s *Slots[E]) Append() *E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AppendSlot(&s.items)
}

// Items returns the records allocated so far, in allocation order.
func (s *Slots[E]) Items() []*E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Len returns the number of records allocated so far.
func (s *Slots[E]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// SlotMap is Slots keyed by K, typically the fan-out key.
// The zero value is ready to use.
type SlotMap[K comparable, E any] struct {
	mu    sync.Mutex
	items map[K]*E
}

// Assign allocates a record at key, replacing any previous one.
func (s *SlotMap[K, E]) Assign(key K) *E {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[K]*E)
	}
	return AssignSlot(s.items, key)
}

// Get returns the record at key.
func (s *SlotMap[K, E]) Get(key K) (*E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	return e, ok
}

// Items returns a copy of the allocated records.
func (s *SlotMap[K, E]) Items() map[K]*E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.items)
}

// Gather merges the records into dst with mergo, in order. Fields already set
// in dst are kept unless an option such as mergo.WithOverride says otherwise.
func Gather[E any](dst *E, records []*E, opts ...func(*mergo.Config)) error {
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := mergo.Merge(dst, r, opts...); err != nil {
			return err
		}
	}
	return nil
}
