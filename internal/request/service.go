package request

import (
	"context"
	"log/slog"

	"creditlines/internal/disclosure"
	"creditlines/internal/notification"
	"creditlines/internal/registry"
)

// NotificationSender delivers assembled notification payloads.
type NotificationSender interface {
	Send(ctx context.Context, payload notification.Payload) error
}

// Service owns the request lifecycle. The event processors call
// ClosePendingSentRequest once a disclosure lands; the declined flow answers
// counterparties that refuse to share.
type Service struct {
	store         Store
	registry      registry.Client
	resolver      *notification.Resolver
	factory       *notification.Factory
	notifications NotificationSender
	logger        *slog.Logger
}

func NewService(
	store Store,
	registryClient registry.Client,
	resolver *notification.Resolver,
	factory *notification.Factory,
	notifications NotificationSender,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:         store,
		registry:      registryClient,
		resolver:      resolver,
		factory:       factory,
		notifications: notifications,
		logger:        logger,
	}
}

// Create records a new sent request in pending state.
func (s *Service) Create(ctx context.Context, company, counterparty string, pc disclosure.ProductContext, comment string) (string, error) {
	return s.store.Create(ctx, &CreditLineRequest{
		RequestType:          TypeRequested,
		Status:               StatusPending,
		CompanyStaticID:      company,
		CounterpartyStaticID: counterparty,
		Context:              pc,
		Comment:              comment,
	})
}

// ClosePendingSentRequest closes every pending sent request matching the
// triple. disclosed marks them fulfilled; otherwise they are closed without
// a disclosure (revoke).
func (s *Service) ClosePendingSentRequest(ctx context.Context, company, counterparty string, pc disclosure.ProductContext, disclosed bool) error {
	requests, err := s.store.FindPendingSent(ctx, company, counterparty, pc)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return nil
	}

	status := StatusClosed
	if disclosed {
		status = StatusDisclosed
	}
	for _, req := range requests {
		req.Status = status
		if err := s.store.Update(ctx, req); err != nil {
			return err
		}
	}

	s.logger.Info("closed pending credit line requests",
		"count", len(requests),
		"company_static_id", company,
		"counterparty_static_id", counterparty,
		"disclosed", disclosed,
	)
	return nil
}

// RequestDeclined marks the oldest pending sent request declined and
// notifies the requester. A decline with no pending request is logged and
// ignored: the counterparty may decline after the request already closed.
func (s *Service) RequestDeclined(ctx context.Context, company, counterparty string, pc disclosure.ProductContext) error {
	requests, err := s.store.FindPendingSent(ctx, company, counterparty, pc)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		s.logger.Warn("no pending requests to decline",
			"company_static_id", company,
			"counterparty_static_id", counterparty,
			"product_id", pc.ProductID,
			"sub_product_id", pc.SubProductID,
		)
		return nil
	}

	declined := requests[0]
	declined.Status = StatusDeclined
	if err := s.store.Update(ctx, declined); err != nil {
		return err
	}

	companyRecord, err := s.registry.GetCompany(ctx, company)
	if err != nil {
		return err
	}
	counterpartyRecord, err := s.registry.GetCompany(ctx, counterparty)
	if err != nil {
		return err
	}

	notificationType, err := s.resolver.TypeFor(pc, notification.OperationDeclineRequest)
	if err != nil {
		return err
	}
	payload, err := s.factory.GetNotification(notificationType, notification.Subject{
		StaticID:             declined.StaticID,
		OwnerStaticID:        company,
		CounterpartyStaticID: counterparty,
		Context:              pc,
	}, companyRecord.Name, counterpartyRecord.Name)
	if err != nil {
		return err
	}
	return s.notifications.Send(ctx, payload)
}
