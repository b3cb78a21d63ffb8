package processor

//go:generate mockgen -source=processor.go -destination=mocks/mocks.go -package=mocks ValidationService,RequestService,NotificationSender

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"creditlines/internal/disclosure"
	"creditlines/internal/feature"
	"creditlines/internal/notification"
	"creditlines/internal/processor/metrics"
	"creditlines/internal/registry"
)

// ValidationService resolves and authorizes the parties on an event.
type ValidationService interface {
	ValidateOwner(ctx context.Context, staticID string) (*registry.Company, error)
	ValidateCounterparty(ctx context.Context, staticID string, ft feature.Type) (*registry.Company, error)
}

// RequestService closes pending sent requests once a disclosure lands.
type RequestService interface {
	ClosePendingSentRequest(ctx context.Context, company, counterparty string, pc disclosure.ProductContext, disclosed bool) error
}

// NotificationSender delivers assembled notification payloads.
type NotificationSender interface {
	Send(ctx context.Context, payload notification.Payload) error
}

// Processor handles one event kind. ShouldProcess is a pure predicate the
// dispatcher uses for routing; ProcessMessage performs the reconciliation.
type Processor interface {
	MessageType() MessageType
	ShouldProcess(msg *EventMessage) bool
	ProcessMessage(ctx context.Context, msg *EventMessage) error
}

// variant is the extension seam between the Share and Revoke processors:
// how disclosed attributes are projected, which notification operation
// applies, and whether the event fulfils pending requests.
type variant interface {
	// projectFields overlays the variant's attribute projection onto the
	// base record. prior is the existing live record, nil on first contact;
	// the overlay runs after the live-record lookup so a variant can carry
	// attributes forward.
	projectFields(line *disclosure.DisclosedCreditLine, prior *disclosure.DisclosedCreditLine, msg *EventMessage)

	// selectOperation picks the notification operation given the prior and
	// post-reconciliation records.
	selectOperation(prior, updated *disclosure.DisclosedCreditLine) notification.Operation

	// sharing reports whether the event fulfils pending requests.
	sharing() bool
}

// base orchestrates the per-event state machine shared by both variants.
type base struct {
	messageType   MessageType
	variant       variant
	store         disclosure.Store
	validation    ValidationService
	requests      RequestService
	factory       *notification.Factory
	resolver      *notification.Resolver
	notifications NotificationSender
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
}

func newBase(
	messageType MessageType,
	v variant,
	store disclosure.Store,
	validation ValidationService,
	requests RequestService,
	resolver *notification.Resolver,
	factory *notification.Factory,
	notifications NotificationSender,
	logger *slog.Logger,
	m *metrics.Metrics,
) *base {
	return &base{
		messageType:   messageType,
		variant:       v,
		store:         store,
		validation:    validation,
		requests:      requests,
		factory:       factory,
		resolver:      resolver,
		notifications: notifications,
		logger:        logger,
		metrics:       m,
		tracer:        otel.Tracer("creditlines/processor"),
	}
}

func (b *base) MessageType() MessageType {
	return b.messageType
}

// ShouldProcess accepts events of this processor's type within the feature
// families the engine supports. Pure; safe for dispatcher routing.
func (b *base) ShouldProcess(msg *EventMessage) bool {
	return msg.MessageType == b.messageType && feature.IsSupported(msg.FeatureType)
}

// ProcessMessage runs the full reconciliation for one event. No partial
// commits: any failure is logged with its context and returned for the bus
// consumer's redelivery policy. Reprocessing a delivered event converges to
// the same record state but resends the notification; that duplicate is an
// accepted property of at-least-once delivery.
func (b *base) ProcessMessage(ctx context.Context, msg *EventMessage) error {
	ctx, span := b.tracer.Start(ctx, "processor.ProcessMessage",
		trace.WithAttributes(
			attribute.String("message_type", string(msg.MessageType)),
			attribute.String("owner_static_id", msg.OwnerStaticID),
			attribute.String("counterparty_static_id", msg.Payload.CounterpartyStaticID),
		),
	)
	defer span.End()

	start := time.Now()
	err := b.process(ctx, msg)
	b.metrics.ObserveProcessLatency(string(msg.MessageType), time.Since(start))
	if err != nil {
		b.logger.Error("credit line event processing failed",
			"message_type", msg.MessageType,
			"owner_static_id", msg.OwnerStaticID,
			"counterparty_static_id", msg.Payload.CounterpartyStaticID,
			"error", err,
		)
		span.RecordError(err)
		return err
	}
	return nil
}

func (b *base) process(ctx context.Context, msg *EventMessage) error {
	if !b.ShouldProcess(msg) {
		return errUnexpectedMessage(msg)
	}

	owner, err := b.validation.ValidateOwner(ctx, msg.OwnerStaticID)
	if err != nil {
		return err
	}

	pc := msg.Payload.Context
	ft := feature.ForContext(pc)
	counterparty, err := b.validation.ValidateCounterparty(ctx, msg.Payload.CounterpartyStaticID, ft)
	if err != nil {
		return err
	}

	// The live-record lookup, not the message content, decides create vs
	// update; client-supplied identifiers are never trusted for that.
	prior, err := b.store.FindOne(ctx, owner.StaticID, counterparty.StaticID, pc)
	if err != nil && !errors.Is(err, disclosure.ErrNotFound) {
		return err
	}

	line := &disclosure.DisclosedCreditLine{
		OwnerStaticID:        owner.StaticID,
		CounterpartyStaticID: counterparty.StaticID,
		Context:              pc,
	}
	b.variant.projectFields(line, prior, msg)

	if prior == nil {
		staticID, err := b.store.Create(ctx, line)
		if err != nil {
			return err
		}
		line.StaticID = staticID
	} else {
		line.StaticID = prior.StaticID
		if err := b.store.Update(ctx, line); err != nil {
			return err
		}
	}

	if err := b.requests.ClosePendingSentRequest(ctx, owner.StaticID, counterparty.StaticID, pc, b.variant.sharing()); err != nil {
		return err
	}

	return b.notify(ctx, prior, line, owner.Name, counterparty.Name)
}

func (b *base) notify(ctx context.Context, prior, line *disclosure.DisclosedCreditLine, ownerName, counterpartyName string) error {
	op := b.variant.selectOperation(prior, line)
	notificationType, err := b.resolver.TypeFor(line.Context, op)
	if err != nil {
		return err
	}
	payload, err := b.factory.GetNotification(notificationType, notification.Subject{
		StaticID:             line.StaticID,
		OwnerStaticID:        line.OwnerStaticID,
		CounterpartyStaticID: line.CounterpartyStaticID,
		Context:              line.Context,
	}, ownerName, counterpartyName)
	if err != nil {
		return err
	}
	if err := b.notifications.Send(ctx, payload); err != nil {
		return err
	}
	b.metrics.IncrementProcessed(string(b.messageType), string(op))
	return nil
}
