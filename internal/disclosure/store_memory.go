package disclosure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps disclosed credit lines in process memory. Used by unit
// tests and local development; semantics mirror the postgres store.
type InMemoryStore struct {
	mu    sync.RWMutex
	lines map[string]*DisclosedCreditLine
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{lines: make(map[string]*DisclosedCreditLine)}
}

func (s *InMemoryStore) Create(_ context.Context, line *DisclosedCreditLine) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := line.Clone()
	stored.StaticID = uuid.NewString()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.DeletedAt = nil
	s.lines[stored.StaticID] = stored
	return stored.StaticID, nil
}

func (s *InMemoryStore) Update(_ context.Context, line *DisclosedCreditLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.lines[line.StaticID]
	if !ok || existing.DeletedAt != nil {
		return ErrNotFound
	}
	stored := line.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	stored.DeletedAt = nil
	s.lines[stored.StaticID] = stored
	return nil
}

func (s *InMemoryStore) FindOne(_ context.Context, owner, counterparty string, pc ProductContext) (*DisclosedCreditLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, line := range s.lines {
		if line.DeletedAt != nil {
			continue
		}
		if line.OwnerStaticID == owner && line.CounterpartyStaticID == counterparty && line.Context == pc {
			return line.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) Get(_ context.Context, staticID string) (*DisclosedCreditLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	line, ok := s.lines[staticID]
	if !ok || line.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return line.Clone(), nil
}

func (s *InMemoryStore) Find(_ context.Context, filter Filter) ([]*DisclosedCreditLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*DisclosedCreditLine
	for _, line := range s.lines {
		if line.DeletedAt != nil {
			continue
		}
		if filter.OwnerStaticID != "" && line.OwnerStaticID != filter.OwnerStaticID {
			continue
		}
		if filter.CounterpartyStaticID != "" && line.CounterpartyStaticID != filter.CounterpartyStaticID {
			continue
		}
		if filter.ProductID != "" && line.Context.ProductID != filter.ProductID {
			continue
		}
		if filter.SubProductID != "" && line.Context.SubProductID != filter.SubProductID {
			continue
		}
		out = append(out, line.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Summarize(_ context.Context, pc ProductContext) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCounterparty := make(map[string]*Summary)
	for _, line := range s.lines {
		if line.DeletedAt != nil || line.Context != pc {
			continue
		}
		sum, ok := byCounterparty[line.CounterpartyStaticID]
		if !ok {
			sum = &Summary{CounterpartyStaticID: line.CounterpartyStaticID}
			byCounterparty[line.CounterpartyStaticID] = sum
		}
		if line.Appetite != nil && *line.Appetite {
			sum.AppetiteCount++
		}
		if line.Availability != nil && *line.Availability {
			sum.AvailabilityCount++
		}
	}

	out := make([]Summary, 0, len(byCounterparty))
	for _, sum := range byCounterparty {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CounterpartyStaticID < out[j].CounterpartyStaticID
	})
	return out, nil
}

// SoftDelete marks a record deleted; administrative operation used by tests
// to exercise the vanished-record update path.
func (s *InMemoryStore) SoftDelete(_ context.Context, staticID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[staticID]
	if !ok || line.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now()
	line.DeletedAt = &now
	return nil
}
