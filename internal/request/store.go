package request

import (
	"context"

	"creditlines/internal/disclosure"
	dErrors "creditlines/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "credit line request not found")

// Store is the persistence contract for credit line requests.
type Store interface {
	Create(ctx context.Context, req *CreditLineRequest) (string, error)
	Update(ctx context.Context, req *CreditLineRequest) error
	Get(ctx context.Context, staticID string) (*CreditLineRequest, error)

	// FindPendingSent returns this member's pending sent requests addressed
	// to company about counterparty within the context, oldest first.
	FindPendingSent(ctx context.Context, company, counterparty string, pc disclosure.ProductContext) ([]*CreditLineRequest, error)
}
