package request

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"creditlines/internal/disclosure"
)

// InMemoryStore keeps requests in process memory for tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[string]*CreditLineRequest
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[string]*CreditLineRequest)}
}

func (s *InMemoryStore) Create(_ context.Context, req *CreditLineRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *req
	stored.StaticID = uuid.NewString()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.requests[stored.StaticID] = &stored
	return stored.StaticID, nil
}

func (s *InMemoryStore) Update(_ context.Context, req *CreditLineRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.requests[req.StaticID]
	if !ok {
		return ErrNotFound
	}
	stored := *req
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	s.requests[stored.StaticID] = &stored
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, staticID string) (*CreditLineRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[staticID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *req
	return &out, nil
}

func (s *InMemoryStore) FindPendingSent(_ context.Context, company, counterparty string, pc disclosure.ProductContext) ([]*CreditLineRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*CreditLineRequest
	for _, req := range s.requests {
		if req.RequestType != TypeRequested || req.Status != StatusPending {
			continue
		}
		if req.CompanyStaticID != company || req.CounterpartyStaticID != counterparty || req.Context != pc {
			continue
		}
		copy := *req
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
