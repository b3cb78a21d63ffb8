// Package validation resolves and authorizes the parties referenced by an
// inbound credit line event.
package validation

import (
	"context"
	"log/slog"

	"creditlines/internal/feature"
	"creditlines/internal/registry"
	dErrors "creditlines/pkg/domain-errors"
)

// Service checks that event parties exist in the registry and are allowed to
// participate in a disclosure. Failures are authorization errors; the engine
// propagates them unmodified.
type Service struct {
	registry registry.Client
	logger   *slog.Logger
}

func NewService(registryClient registry.Client, logger *slog.Logger) *Service {
	return &Service{registry: registryClient, logger: logger}
}

// ValidateOwner resolves the disclosing institution. Owners must be
// registered financial-institution members of the network.
func (s *Service) ValidateOwner(ctx context.Context, staticID string) (*registry.Company, error) {
	company, err := s.registry.GetCompany(ctx, staticID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.Newf(dErrors.CodeUnauthorized, "owner %s is not registered", staticID)
		}
		return nil, err
	}
	if !company.IsMember || !company.IsFinancialInstitution {
		return nil, dErrors.Newf(dErrors.CodeUnauthorized, "owner %s is not a financial institution member", staticID)
	}
	return company, nil
}

// ValidateCounterparty resolves the disclosure subject. Risk cover admits
// counterparties that are not members of the network; every other context
// requires a registered member.
func (s *Service) ValidateCounterparty(ctx context.Context, staticID string, ft feature.Type) (*registry.Company, error) {
	company, err := s.registry.GetCompany(ctx, staticID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.Newf(dErrors.CodeUnauthorized, "counterparty %s is not registered", staticID)
		}
		return nil, err
	}
	if ft != feature.RiskCover && !company.IsMember {
		return nil, dErrors.Newf(dErrors.CodeUnauthorized, "counterparty %s is not a member", staticID)
	}
	return company, nil
}
