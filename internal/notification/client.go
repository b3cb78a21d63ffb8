package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Publisher is the transport seam; the kafka producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// Client delivers assembled payloads to the notifications topic. Payloads
// are keyed by the credit line owner so one party's notifications stay
// ordered.
type Client struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewClient(publisher Publisher, logger *slog.Logger) *Client {
	return &Client{publisher: publisher, logger: logger}
}

func (c *Client) Send(ctx context.Context, payload Payload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := c.publisher.Publish(ctx, []byte(payload.Context.OwnerStaticID), value); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	c.logger.Info("notification sent",
		"type", payload.Type,
		"owner_static_id", payload.Context.OwnerStaticID,
		"counterparty_static_id", payload.Context.CounterpartyStaticID,
	)
	return nil
}
