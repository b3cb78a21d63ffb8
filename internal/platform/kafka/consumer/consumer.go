// Package consumer wraps franz-go group consumption behind a small Handler
// contract. Offsets are committed only after the handler returns nil, so an
// unhandled failure leaves the message for redelivery (at-least-once).
package consumer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is the unit handed to handlers.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Partition int32
	Offset    int64
}

// Handler processes messages from a topic. Returning nil commits the offset;
// returning an error stops the consumer without committing, leaving the
// message to be redelivered when consumption resumes.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// Consumer is a committed group consumer over a single topic.
type Consumer struct {
	client  *kgo.Client
	handler Handler
	logger  *slog.Logger
}

// New builds a group consumer. Auto-commit is disabled; commits happen
// per-record after successful handling.
func New(brokers []string, group, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}
	return &Consumer{client: client, handler: handler, logger: logger}, nil
}

// Run polls until the context is cancelled or a handler reports an
// unrecoverable error. The caller owns restart/backoff policy.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			// Fatal fetch errors (auth, unknown topic) are not retried here.
			for _, fe := range errs {
				c.logger.Error("kafka fetch error",
					"topic", fe.Topic,
					"partition", fe.Partition,
					"error", fe.Err,
				)
			}
			return fmt.Errorf("kafka fetch: %w", errs[0].Err)
		}

		var handleErr error
		fetches.EachRecord(func(rec *kgo.Record) {
			if handleErr != nil {
				return
			}
			msg := &Message{
				Topic:     rec.Topic,
				Key:       rec.Key,
				Value:     rec.Value,
				Partition: rec.Partition,
				Offset:    rec.Offset,
			}
			if err := c.handler.Handle(ctx, msg); err != nil {
				handleErr = err
				return
			}
			if err := c.client.CommitRecords(ctx, rec); err != nil {
				handleErr = fmt.Errorf("commit offset: %w", err)
			}
		})
		if handleErr != nil {
			return handleErr
		}
	}
}

// Close leaves the group and releases the client.
func (c *Consumer) Close() {
	c.client.Close()
}
