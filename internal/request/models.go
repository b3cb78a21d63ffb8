// Package request tracks credit line information requests exchanged with
// counterparties and closes them when disclosures arrive.
package request

import (
	"time"

	"creditlines/internal/disclosure"
)

// RequestType distinguishes requests this member sent from ones it received.
type RequestType string

const (
	TypeRequested RequestType = "Requested"
	TypeReceived  RequestType = "Received"
)

// Status is the request lifecycle state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusDisclosed Status = "Disclosed"
	StatusDeclined  Status = "Declined"
	StatusClosed    Status = "Closed"
)

// CreditLineRequest records one ask for credit line information.
// CompanyStaticID is the institution asked to disclose;
// CounterpartyStaticID is the company the information concerns.
type CreditLineRequest struct {
	StaticID             string                    `json:"staticId"`
	RequestType          RequestType               `json:"requestType"`
	Status               Status                    `json:"status"`
	CompanyStaticID      string                    `json:"companyStaticId"`
	CounterpartyStaticID string                    `json:"counterpartyStaticId"`
	Context              disclosure.ProductContext `json:"context"`
	Comment              string                    `json:"comment,omitempty"`
	CreatedAt            time.Time                 `json:"createdAt"`
	UpdatedAt            time.Time                 `json:"updatedAt"`
}
