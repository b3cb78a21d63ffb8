// Package disclosure owns the durable projection of what a counterparty
// institution currently disclosed to this member for a product context.
package disclosure

import "time"

// ProductContext partitions disclosures and keys the notification
// configuration table.
type ProductContext struct {
	ProductID    string `json:"productId"`
	SubProductID string `json:"subProductId"`
}

// DisclosedCreditLine is the stored record for one
// (owner, counterparty, context) triple. Pointer fields distinguish "not
// asserted" from an explicit false/zero.
type DisclosedCreditLine struct {
	StaticID             string         `json:"staticId"`
	OwnerStaticID        string         `json:"ownerStaticId"`
	CounterpartyStaticID string         `json:"counterpartyStaticId"`
	Context              ProductContext `json:"context"`

	Appetite           *bool          `json:"appetite,omitempty"`
	Currency           *string        `json:"currency,omitempty"`
	Availability       *bool          `json:"availability,omitempty"`
	AvailabilityAmount *float64       `json:"availabilityAmount,omitempty"`
	CreditLimit        *float64       `json:"creditLimit,omitempty"`
	ExtraData          map[string]any `json:"extraData,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// Filter narrows read-side queries. Zero-valued fields are ignored.
// Soft-deleted records are always excluded regardless of filter.
type Filter struct {
	OwnerStaticID        string
	CounterpartyStaticID string
	ProductID            string
	SubProductID         string
}

// Summary aggregates live disclosures for one counterparty within a context.
type Summary struct {
	CounterpartyStaticID string `json:"counterpartyStaticId"`
	AppetiteCount        int    `json:"appetiteCount"`
	AvailabilityCount    int    `json:"availabilityCount"`
}

// Clone returns a deep copy so callers can mutate a borrowed record without
// aliasing store-owned state.
func (d *DisclosedCreditLine) Clone() *DisclosedCreditLine {
	if d == nil {
		return nil
	}
	out := *d
	out.Appetite = cloneBool(d.Appetite)
	out.Currency = cloneString(d.Currency)
	out.Availability = cloneBool(d.Availability)
	out.AvailabilityAmount = cloneFloat(d.AvailabilityAmount)
	out.CreditLimit = cloneFloat(d.CreditLimit)
	if d.ExtraData != nil {
		out.ExtraData = make(map[string]any, len(d.ExtraData))
		for k, v := range d.ExtraData {
			out.ExtraData[k] = v
		}
	}
	if d.DeletedAt != nil {
		t := *d.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
