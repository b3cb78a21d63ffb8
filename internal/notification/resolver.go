package notification

import "creditlines/internal/disclosure"

// Resolver answers type and permission lookups over the static config table.
type Resolver struct {
	entries []ConfigEntry
}

func NewResolver(entries []ConfigEntry) *Resolver {
	return &Resolver{entries: entries}
}

// TypeFor resolves the notification type for a (context, operation) pair.
// Exact match on productId, subProductId, and operation; a miss is a
// configuration-integrity failure.
func (r *Resolver) TypeFor(pc disclosure.ProductContext, op Operation) (Type, error) {
	for _, e := range r.entries {
		if e.Context == pc && e.Operation == op {
			return e.Type, nil
		}
	}
	return "", ErrConfigNotFound
}

// PermissionFor resolves the required permission for a product context by
// its sub-product. All operations within a context share one permission row.
func (r *Resolver) PermissionFor(pc disclosure.ProductContext) (RequiredPermission, error) {
	for _, e := range r.entries {
		if e.Context.SubProductID == pc.SubProductID {
			return RequiredPermission{ProductID: e.Context.ProductID, ActionID: e.RequiredActionID}, nil
		}
	}
	return RequiredPermission{}, ErrConfigNotFound
}
