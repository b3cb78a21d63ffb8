package notification

import "fmt"

// payloadType tags every outbound credit line notification; routing inside
// the notification service keys on it.
const payloadType = "CL.info"

// Factory builds ready-to-send notification payloads. It is a pure function
// of its inputs plus the static config table behind the resolver.
type Factory struct {
	resolver *Resolver

	// strategies selects the message-building family per type. Lifecycle
	// types share one family, declined requests the other.
	strategies map[Type]func(t Type, ownerName, counterpartyName string) string
}

func NewFactory(resolver *Resolver) *Factory {
	f := &Factory{resolver: resolver}
	f.strategies = map[Type]func(Type, string, string) string{
		TypeRiskCoverDisclosed:      f.lifecycleMessage,
		TypeRiskCoverUpdated:        f.lifecycleMessage,
		TypeRiskCoverRevoked:        f.lifecycleMessage,
		TypeBankLineDisclosed:       f.lifecycleMessage,
		TypeBankLineUpdated:         f.lifecycleMessage,
		TypeBankLineRevoked:         f.lifecycleMessage,
		TypeRiskCoverDeclineRequest: f.declinedMessage,
		TypeBankLineDeclineRequest:  f.declinedMessage,
	}
	return f
}

// GetNotification assembles the payload for one processed event. The subject
// carries the post-reconciliation record identity; names are the resolved
// display names of both parties.
func (f *Factory) GetNotification(t Type, subject Subject, ownerName, counterpartyName string) (Payload, error) {
	build, ok := f.strategies[t]
	if !ok {
		return Payload{}, ErrConfigNotFound
	}

	permission, err := f.resolver.PermissionFor(subject.Context)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		ProductID:          subject.Context.ProductID,
		Type:               payloadType,
		Level:              "info",
		RequiredPermission: permission,
		Context: Context{
			DisclosedCreditLineID: subject.StaticID,
			OwnerStaticID:         subject.OwnerStaticID,
			CounterpartyStaticID:  subject.CounterpartyStaticID,
			ProductID:             subject.Context.ProductID,
			SubProductID:          subject.Context.SubProductID,
		},
		Message: build(t, ownerName, counterpartyName),
	}, nil
}

// lifecycleMessage renders disclosure lifecycle wording. Revoked reuses the
// "updated" phrasing: the counterparty sees a revocation as an update to the
// information shared with them.
func (f *Factory) lifecycleMessage(t Type, ownerName, counterpartyName string) string {
	switch t {
	case TypeRiskCoverDisclosed:
		return fmt.Sprintf("%s has added risk cover information on %s", ownerName, counterpartyName)
	case TypeRiskCoverUpdated, TypeRiskCoverRevoked:
		return fmt.Sprintf("%s has updated risk cover information on %s", ownerName, counterpartyName)
	case TypeBankLineDisclosed:
		return fmt.Sprintf("%s has added bank line information on %s", ownerName, counterpartyName)
	default:
		return fmt.Sprintf("%s has updated bank line information on %s", ownerName, counterpartyName)
	}
}

func (f *Factory) declinedMessage(t Type, ownerName, counterpartyName string) string {
	if t == TypeRiskCoverDeclineRequest {
		return fmt.Sprintf("%s has declined a request for risk cover information on %s", ownerName, counterpartyName)
	}
	return fmt.Sprintf("%s has declined a request for bank line information on %s", ownerName, counterpartyName)
}
