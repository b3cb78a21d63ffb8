package consumer

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditlines/internal/feature"
	platform "creditlines/internal/platform/kafka/consumer"
	"creditlines/internal/processor"
	dErrors "creditlines/pkg/domain-errors"
)

type stubProcessor struct {
	messageType processor.MessageType
	processErr  error
	processed   []*processor.EventMessage
}

func (s *stubProcessor) MessageType() processor.MessageType { return s.messageType }

func (s *stubProcessor) ShouldProcess(msg *processor.EventMessage) bool {
	return msg.MessageType == s.messageType && feature.IsSupported(msg.FeatureType)
}

func (s *stubProcessor) ProcessMessage(_ context.Context, msg *processor.EventMessage) error {
	s.processed = append(s.processed, msg)
	return s.processErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func shareMessage(t *testing.T) *platform.Message {
	t.Helper()
	return &platform.Message{
		Topic: "credit-lines.events",
		Value: []byte(`{
			"version": 1,
			"messageType": "ShareCreditLine",
			"ownerStaticId": "bank-1",
			"recepientStaticId": "member-1",
			"featureType": "RiskCover",
			"payload": {
				"context": {"productId": "tradeFinance", "subProductId": "rd"},
				"counterpartyStaticId": "corp-1",
				"data": {"appetite": true}
			}
		}`),
	}
}

func TestHandleDispatchesToMatchingProcessor(t *testing.T) {
	share := &stubProcessor{messageType: processor.MessageTypeShareCreditLine}
	revoke := &stubProcessor{messageType: processor.MessageTypeRevokeCreditLine}
	svc := NewService(discardLogger(), share, revoke)

	err := svc.Handle(context.Background(), shareMessage(t))

	require.NoError(t, err)
	require.Len(t, share.processed, 1)
	assert.Empty(t, revoke.processed)
	assert.Equal(t, "bank-1", share.processed[0].OwnerStaticID)
	assert.Equal(t, "corp-1", share.processed[0].Payload.CounterpartyStaticID)
}

func TestHandleAcksUndecodableMessage(t *testing.T) {
	share := &stubProcessor{messageType: processor.MessageTypeShareCreditLine}
	svc := NewService(discardLogger(), share)

	err := svc.Handle(context.Background(), &platform.Message{Value: []byte("{not json")})

	assert.NoError(t, err)
	assert.Empty(t, share.processed)
}

func TestHandleAcksUnroutableMessage(t *testing.T) {
	revoke := &stubProcessor{messageType: processor.MessageTypeRevokeCreditLine}
	svc := NewService(discardLogger(), revoke)

	err := svc.Handle(context.Background(), shareMessage(t))

	assert.NoError(t, err)
	assert.Empty(t, revoke.processed)
}

func TestHandleAcksPermanentFailures(t *testing.T) {
	permanent := []error{
		dErrors.New(dErrors.CodeInvalidInput, "bad payload"),
		dErrors.New(dErrors.CodeUnauthorized, "unknown owner"),
		dErrors.New(dErrors.CodeForbidden, "counterparty not a member"),
		dErrors.New(dErrors.CodeConfigMissing, "Notification type not found based on provided context"),
	}
	for _, procErr := range permanent {
		share := &stubProcessor{messageType: processor.MessageTypeShareCreditLine, processErr: procErr}
		svc := NewService(discardLogger(), share)

		err := svc.Handle(context.Background(), shareMessage(t))

		assert.NoError(t, err, "code %s should be dropped, not redelivered", dErrors.CodeOf(procErr))
		assert.Len(t, share.processed, 1)
	}
}

func TestHandleRequeuesTransientFailures(t *testing.T) {
	transient := errors.New("connection refused")
	share := &stubProcessor{messageType: processor.MessageTypeShareCreditLine, processErr: transient}
	svc := NewService(discardLogger(), share)

	err := svc.Handle(context.Background(), shareMessage(t))

	assert.ErrorIs(t, err, transient)
}
