package processor

import (
	"log/slog"

	"creditlines/internal/disclosure"
	"creditlines/internal/notification"
	"creditlines/internal/processor/metrics"
)

// fixed attribute keys projected from the payload data; everything else is
// retained verbatim in the record's extra data.
const (
	dataKeyAppetite           = "appetite"
	dataKeyCurrency           = "currency"
	dataKeyAvailability       = "availability"
	dataKeyAvailabilityAmount = "availabilityAmount"
	dataKeyCreditLimit        = "creditLimit"
)

// ShareProcessor handles ShareCreditLine events: the counterparty asserted
// or refreshed its credit appetite towards a company.
type ShareProcessor struct {
	*base
}

func NewShareProcessor(
	store disclosure.Store,
	validation ValidationService,
	requests RequestService,
	resolver *notification.Resolver,
	factory *notification.Factory,
	notifications NotificationSender,
	logger *slog.Logger,
	m *metrics.Metrics,
) *ShareProcessor {
	p := &ShareProcessor{}
	p.base = newBase(MessageTypeShareCreditLine, p, store, validation, requests, resolver, factory, notifications, logger, m)
	return p
}

// projectFields copies the fixed disclosed attributes from the payload data
// and keeps any remaining keys as extra data. An absent data object leaves
// every attribute unasserted.
func (p *ShareProcessor) projectFields(line *disclosure.DisclosedCreditLine, _ *disclosure.DisclosedCreditLine, msg *EventMessage) {
	data := msg.Payload.Data
	if data == nil {
		return
	}

	line.Appetite = boolValue(data, dataKeyAppetite)
	line.Currency = stringValue(data, dataKeyCurrency)
	line.Availability = boolValue(data, dataKeyAvailability)
	line.AvailabilityAmount = floatValue(data, dataKeyAvailabilityAmount)
	line.CreditLimit = floatValue(data, dataKeyCreditLimit)

	for key, value := range data {
		switch key {
		case dataKeyAppetite, dataKeyCurrency, dataKeyAvailability, dataKeyAvailabilityAmount, dataKeyCreditLimit:
		default:
			if line.ExtraData == nil {
				line.ExtraData = make(map[string]any)
			}
			line.ExtraData[key] = value
		}
	}
}

// selectOperation reports a fresh disclosure when appetite flips from
// falsy to asserted-true; every other change on an existing record is an
// update, even when limits or currency moved.
func (p *ShareProcessor) selectOperation(prior, updated *disclosure.DisclosedCreditLine) notification.Operation {
	if prior == nil {
		return notification.OperationDisclosed
	}
	if !isTrue(prior.Appetite) && isTrue(updated.Appetite) {
		return notification.OperationDisclosed
	}
	return notification.OperationUpdated
}

func (p *ShareProcessor) sharing() bool {
	return true
}

func isTrue(v *bool) bool {
	return v != nil && *v
}

func boolValue(data map[string]any, key string) *bool {
	if v, ok := data[key].(bool); ok {
		return &v
	}
	return nil
}

func stringValue(data map[string]any, key string) *string {
	if v, ok := data[key].(string); ok {
		return &v
	}
	return nil
}

func floatValue(data map[string]any, key string) *float64 {
	switch v := data[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}
