package processor

import (
	"log/slog"

	"creditlines/internal/disclosure"
	"creditlines/internal/notification"
	"creditlines/internal/processor/metrics"
)

// RevokeProcessor handles RevokeCreditLine events: the counterparty cleared
// its appetite signal while the rest of the disclosure stays on record.
type RevokeProcessor struct {
	*base
}

func NewRevokeProcessor(
	store disclosure.Store,
	validation ValidationService,
	requests RequestService,
	resolver *notification.Resolver,
	factory *notification.Factory,
	notifications NotificationSender,
	logger *slog.Logger,
	m *metrics.Metrics,
) *RevokeProcessor {
	p := &RevokeProcessor{}
	p.base = newBase(MessageTypeRevokeCreditLine, p, store, validation, requests, resolver, factory, notifications, logger, m)
	return p
}

// projectFields clears only the appetite signal. Currency, limits, and
// availability are carried over from the prior record and persist as stale
// data until the next share.
func (p *RevokeProcessor) projectFields(line *disclosure.DisclosedCreditLine, prior *disclosure.DisclosedCreditLine, _ *EventMessage) {
	if prior != nil {
		line.Currency = prior.Currency
		line.Availability = prior.Availability
		line.AvailabilityAmount = prior.AvailabilityAmount
		line.CreditLimit = prior.CreditLimit
		line.ExtraData = prior.ExtraData
	}
	line.Appetite = nil
}

// selectOperation always reports a revocation regardless of prior state.
func (p *RevokeProcessor) selectOperation(_, _ *disclosure.DisclosedCreditLine) notification.Operation {
	return notification.OperationRevoked
}

func (p *RevokeProcessor) sharing() bool {
	return false
}
