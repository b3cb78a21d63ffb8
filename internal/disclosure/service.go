package disclosure

import (
	"context"
	"log/slog"

	dErrors "creditlines/pkg/domain-errors"
)

// Service is the read-side query surface over disclosed credit lines. The
// reconciliation engine writes through Store directly; HTTP consumers read
// through here.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Get(ctx context.Context, staticID string) (*DisclosedCreditLine, error) {
	if staticID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "static id is required")
	}
	return s.store.Get(ctx, staticID)
}

func (s *Service) Find(ctx context.Context, filter Filter) ([]*DisclosedCreditLine, error) {
	lines, err := s.store.Find(ctx, filter)
	if err != nil {
		s.logger.Error("find disclosed credit lines failed",
			"owner_static_id", filter.OwnerStaticID,
			"counterparty_static_id", filter.CounterpartyStaticID,
			"error", err,
		)
		return nil, err
	}
	return lines, nil
}

func (s *Service) Summarize(ctx context.Context, pc ProductContext) ([]Summary, error) {
	if pc.ProductID == "" || pc.SubProductID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "product context is required")
	}
	return s.store.Summarize(ctx, pc)
}
