// Package histdata persists every flow the desk produces for
// end-of-day audit.
package histdata

import (
	"github.com/yanun0323/logs"

	"tradedesk/internal/service"
)

// Kind names one persisted flow. It selects the output file or table
// the records land in.
type Kind string

const (
	Positions  Kind = "positions"
	Risk       Kind = "risk"
	Executions Kind = "executions"
	Streaming  Kind = "streaming"
	Inquiries  Kind = "inquiries"
)

// Record is a service record that can render itself as audit fields.
type Record interface {
	service.Record
	Audit() []string
}

// Store is the persistence backend audit records are appended to.
type Store interface {
	Append(kind Kind, key string, fields []string) error
	Close() error
}

// Service persists one flow of audit records.
type Service[V Record] struct {
	*service.Service[V]
	kind  Kind
	store Store
}

// NewService creates a historical data service for one flow.
func NewService[V Record](kind Kind, store Store) *Service[V] {
	return &Service[V]{
		Service: service.New[V]("historical " + string(kind)),
		kind:    kind,
		store:   store,
	}
}

// PersistData stores a record and appends it to the backing store.
// Store failures are logged; the in-memory record is kept regardless.
func (s *Service[V]) PersistData(rec V) {
	s.Update(rec)
	if err := s.store.Append(s.kind, rec.Key(), rec.Audit()); err != nil {
		logs.Errorf("persisting %s record %s: %+v", s.kind, rec.Key(), err)
	}
}

// Listener persists every record published by an upstream service.
func (s *Service[V]) Listener() service.Listener[V] {
	return service.Func[V](s.PersistData)
}
