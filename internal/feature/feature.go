// Package feature derives the feature family of a product context. The
// family decides counterparty validation strictness and which notification
// wording applies.
package feature

import "creditlines/internal/disclosure"

// Type is the feature family of an inbound event.
type Type string

const (
	BankLine  Type = "BankLine"
	RiskCover Type = "RiskCover"
)

// supported lists the families this engine processes.
var supported = map[Type]bool{
	BankLine:  true,
	RiskCover: true,
}

// IsSupported reports whether the engine handles events of this family.
func IsSupported(t Type) bool {
	return supported[t]
}

// ForContext maps a product context to its feature family. Receivable
// discounting carries risk cover; every other trade finance sub-product is a
// bank line.
func ForContext(pc disclosure.ProductContext) Type {
	if pc.SubProductID == "rd" {
		return RiskCover
	}
	return BankLine
}
