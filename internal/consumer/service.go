// Package consumer routes bus messages to credit line event processors.
//
// Routing outcomes map onto offset handling: a nil return acknowledges the
// message (offset committed), so undecodable, unroutable, and permanently
// invalid messages are rejected by logging and returning nil. Transient
// failures return the error so the message is redelivered.
package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	platform "creditlines/internal/platform/kafka/consumer"
	"creditlines/internal/processor"
	dErrors "creditlines/pkg/domain-errors"
)

// Service implements the platform consumer's Handler over a set of
// processors, dispatching each event to the first processor that accepts it.
type Service struct {
	processors []processor.Processor
	logger     *slog.Logger
}

func NewService(logger *slog.Logger, processors ...processor.Processor) *Service {
	return &Service{processors: processors, logger: logger}
}

// Handle decodes one bus message and dispatches it.
func (s *Service) Handle(ctx context.Context, msg *platform.Message) error {
	var event processor.EventMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		s.logger.Warn("rejecting undecodable message",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	for _, p := range s.processors {
		if !p.ShouldProcess(&event) {
			continue
		}
		err := p.ProcessMessage(ctx, &event)
		if err == nil {
			return nil
		}
		if isPoison(err) {
			// Redelivery cannot fix these; drop so the partition keeps moving.
			s.logger.Error("rejecting unprocessable message",
				"message_type", event.MessageType,
				"owner_static_id", event.OwnerStaticID,
				"error", err,
			)
			return nil
		}
		return err
	}

	s.logger.Warn("rejecting unroutable message",
		"message_type", event.MessageType,
		"feature_type", event.FeatureType,
	)
	return nil
}

// isPoison reports whether an error is permanent for a given message.
func isPoison(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeInvalidInput) ||
		dErrors.HasCode(err, dErrors.CodeUnauthorized) ||
		dErrors.HasCode(err, dErrors.CodeForbidden) ||
		dErrors.HasCode(err, dErrors.CodeConfigMissing)
}
