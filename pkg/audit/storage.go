package audit

import (
	"context"
	"sync"
)

// Storage persists audit events. Implementations must be safe for
// concurrent use and must treat events as append-only.
type Storage interface {
	// Store persists a single event.
	Store(ctx context.Context, event Event) error

	// Query returns events matching the criteria, newest first.
	Query(ctx context.Context, criteria Criteria) ([]Event, error)
}

// Criteria filters audit queries. Zero-valued fields match everything.
type Criteria struct {
	OrgID  string
	UserID string
	Action string
	Result Result
	Limit  int
}

type memoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryStorage creates an in-memory Storage for tests and small
// single-process deployments.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (s *memoryStorage) Store(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memoryStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Event
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if criteria.OrgID != "" && e.OrgID != criteria.OrgID {
			continue
		}
		if criteria.UserID != "" && e.UserID != criteria.UserID {
			continue
		}
		if criteria.Action != "" && e.Action != criteria.Action {
			continue
		}
		if criteria.Result != "" && e.Result != criteria.Result {
			continue
		}
		result = append(result, e)
		if criteria.Limit > 0 && len(result) >= criteria.Limit {
			break
		}
	}
	return result, nil
}
