package disclosure

import (
	"context"

	dErrors "creditlines/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "disclosed credit line not found")

// Store is the persistence contract the reconciliation engine depends on.
// Every read excludes soft-deleted records; the one place that decides
// liveness is the store, not its callers.
type Store interface {
	// Create assigns a static id, stamps timestamps, and persists the
	// record. It does not deduplicate triples; the engine's find-then-write
	// branch owns that decision.
	Create(ctx context.Context, line *DisclosedCreditLine) (string, error)

	// Update re-reads the live record by static id and overwrites its
	// fields. Returns ErrNotFound when no live record carries that id,
	// which surfaces the find/update race instead of creating a duplicate.
	Update(ctx context.Context, line *DisclosedCreditLine) error

	// FindOne returns the live record for the triple, or ErrNotFound.
	FindOne(ctx context.Context, owner, counterparty string, pc ProductContext) (*DisclosedCreditLine, error)

	// Get returns the live record by static id, or ErrNotFound.
	Get(ctx context.Context, staticID string) (*DisclosedCreditLine, error)

	// Find returns live records matching the filter, newest first.
	Find(ctx context.Context, filter Filter) ([]*DisclosedCreditLine, error)

	// Summarize aggregates live records per counterparty for a context.
	Summarize(ctx context.Context, pc ProductContext) ([]Summary, error)
}
