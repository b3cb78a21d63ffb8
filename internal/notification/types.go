// Package notification turns reconciliation outcomes into the payloads the
// platform notification service consumes. Type resolution is data-driven
// through a static configuration table; message assembly is pure.
package notification

import (
	"creditlines/internal/disclosure"
	dErrors "creditlines/pkg/domain-errors"
)

// Operation is the axis distinguishing why a notification is sent for the
// same product context.
type Operation string

const (
	OperationDisclosed      Operation = "Disclosed"
	OperationUpdated        Operation = "Updated"
	OperationRevoked        Operation = "Revoked"
	OperationDeclineRequest Operation = "DeclineRequest"
)

// Type tags one (context, operation) combination; it selects the message
// wording and permission mapping.
type Type string

const (
	TypeRiskCoverDisclosed      Type = "RiskCover.Disclosed"
	TypeRiskCoverUpdated        Type = "RiskCover.Updated"
	TypeRiskCoverRevoked        Type = "RiskCover.Revoked"
	TypeRiskCoverDeclineRequest Type = "RiskCover.DeclineRequest"
	TypeBankLineDisclosed       Type = "BankLine.Disclosed"
	TypeBankLineUpdated         Type = "BankLine.Updated"
	TypeBankLineRevoked         Type = "BankLine.Revoked"
	TypeBankLineDeclineRequest  Type = "BankLine.DeclineRequest"
)

// ErrConfigNotFound signals a gap in the static configuration table. It is a
// deployment defect, not a per-message retry target.
var ErrConfigNotFound = dErrors.New(dErrors.CodeConfigMissing, "Notification type not found based on provided context")

// RequiredPermission names the permission a recipient needs to see the
// notification.
type RequiredPermission struct {
	ProductID string `json:"productId"`
	ActionID  string `json:"actionId"`
}

// Context routes the notification to the disclosure it concerns.
type Context struct {
	DisclosedCreditLineID string `json:"disclosedCreditLineId"`
	OwnerStaticID         string `json:"creditLineOwnerStaticId"`
	CounterpartyStaticID  string `json:"creditLineCounterpartyStaticId"`
	ProductID             string `json:"productId"`
	SubProductID          string `json:"subProductId"`
}

// Payload is the outbound notification message.
type Payload struct {
	ProductID          string             `json:"productId"`
	Type               string             `json:"type"`
	Level              string             `json:"level"`
	RequiredPermission RequiredPermission `json:"requiredPermission"`
	Context            Context            `json:"context"`
	Message            string             `json:"message"`
}

// Subject identifies the record a notification is about: a disclosed credit
// line for lifecycle notifications, a credit line request for declines.
type Subject struct {
	StaticID             string
	OwnerStaticID        string
	CounterpartyStaticID string
	Context              disclosure.ProductContext
}
