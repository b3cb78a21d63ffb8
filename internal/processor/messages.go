// Package processor reconciles inbound credit line events against stored
// disclosures and dispatches one contextual notification per processed
// event.
package processor

import (
	"creditlines/internal/disclosure"
	"creditlines/internal/feature"
)

// MessageType names the bus event kinds this engine understands.
type MessageType string

const (
	MessageTypeShareCreditLine  MessageType = "ShareCreditLine"
	MessageTypeRevokeCreditLine MessageType = "RevokeCreditLine"
)

// EventMessage is the decoded bus envelope. Field names follow the wire
// contract, including the historical "recepientStaticId" spelling.
type EventMessage struct {
	Version           int          `json:"version"`
	MessageType       MessageType  `json:"messageType"`
	StaticID          string       `json:"staticId"`
	OwnerStaticID     string       `json:"ownerStaticId"`
	RecepientStaticID string       `json:"recepientStaticId"`
	FeatureType       feature.Type `json:"featureType"`
	Payload           EventPayload `json:"payload"`
}

// EventPayload carries the disclosure content of an event.
type EventPayload struct {
	Context              disclosure.ProductContext `json:"context"`
	CounterpartyStaticID string                    `json:"counterpartyStaticId"`

	// Data holds the disclosed attributes. Decoded loosely so attributes
	// beyond the fixed set survive into the record's extra data.
	Data map[string]any `json:"data,omitempty"`
}
