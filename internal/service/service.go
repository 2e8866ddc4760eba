// Package service provides the keyed publish/subscribe store every desk
// component is built on. A Service owns at most one live record per key;
// an update replaces the stored record and fans it out to listeners
// synchronously, in registration order.
package service

import (
	stderrors "errors"

	"github.com/yanun0323/errors"
)

// ErrNotFound is returned by Get when no record exists for a key.
var ErrNotFound = stderrors.New("record not found")

// Record is a value stored in a Service, identified by a stable key.
type Record interface {
	Key() string
}

// Listener receives a record after a Service has stored it.
type Listener[V Record] interface {
	OnAdd(V)
}

// Func adapts a plain function to the Listener interface.
type Func[V Record] func(V)

func (f Func[V]) OnAdd(rec V) { f(rec) }

// Service is a keyed store of records with listener fan-out on update.
type Service[V Record] struct {
	name      string
	records   map[string]V
	listeners []Listener[V]
}

// New creates an empty named Service. The name only appears in error
// context.
func New[V Record](name string) *Service[V] {
	return &Service[V]{
		name:    name,
		records: make(map[string]V),
	}
}

// Name returns the service name.
func (s *Service[V]) Name() string { return s.name }

// Get returns the current record for key.
func (s *Service[V]) Get(key string) (V, error) {
	rec, ok := s.records[key]
	if !ok {
		var zero V
		return zero, errors.Wrap(ErrNotFound, s.name+": "+key)
	}
	return rec, nil
}

// Update stores rec under its key, replacing any existing record, then
// notifies every listener before returning. Propagation is depth-first:
// a listener sees the record before any later-registered listener does.
func (s *Service[V]) Update(rec V) {
	s.records[rec.Key()] = rec
	for _, l := range s.listeners {
		l.OnAdd(rec)
	}
}

// AddListener registers l. Listeners are append-only for the lifetime of
// the service.
func (s *Service[V]) AddListener(l Listener[V]) {
	s.listeners = append(s.listeners, l)
}

// Len reports the number of stored records.
func (s *Service[V]) Len() int { return len(s.records) }
