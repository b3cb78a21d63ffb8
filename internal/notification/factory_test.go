package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditlines/internal/disclosure"
)

func rdSubject() Subject {
	return Subject{
		StaticID:             "dcl-1",
		OwnerStaticID:        "bank-1",
		CounterpartyStaticID: "corp-1",
		Context:              disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "rd"},
	}
}

func TestGetNotificationAssemblesPayload(t *testing.T) {
	factory := NewFactory(NewResolver(DefaultConfig()))

	payload, err := factory.GetNotification(TypeRiskCoverDisclosed, rdSubject(), "Gold Bank", "Acme Corp")
	require.NoError(t, err)

	assert.Equal(t, "tradeFinance", payload.ProductID)
	assert.Equal(t, "CL.info", payload.Type)
	assert.Equal(t, "info", payload.Level)
	assert.Equal(t, RequiredPermission{ProductID: "tradeFinance", ActionID: "manageRiskCover"}, payload.RequiredPermission)
	assert.Equal(t, Context{
		DisclosedCreditLineID: "dcl-1",
		OwnerStaticID:         "bank-1",
		CounterpartyStaticID:  "corp-1",
		ProductID:             "tradeFinance",
		SubProductID:          "rd",
	}, payload.Context)
	assert.Equal(t, "Gold Bank has added risk cover information on Acme Corp", payload.Message)
}

func TestGetNotificationMessageWording(t *testing.T) {
	factory := NewFactory(NewResolver(DefaultConfig()))
	subject := rdSubject()

	cases := []struct {
		typ  Type
		want string
	}{
		{TypeRiskCoverDisclosed, "Gold Bank has added risk cover information on Acme Corp"},
		{TypeRiskCoverUpdated, "Gold Bank has updated risk cover information on Acme Corp"},
		{TypeRiskCoverRevoked, "Gold Bank has updated risk cover information on Acme Corp"},
		{TypeBankLineDisclosed, "Gold Bank has added bank line information on Acme Corp"},
		{TypeBankLineUpdated, "Gold Bank has updated bank line information on Acme Corp"},
		{TypeBankLineRevoked, "Gold Bank has updated bank line information on Acme Corp"},
		{TypeRiskCoverDeclineRequest, "Gold Bank has declined a request for risk cover information on Acme Corp"},
		{TypeBankLineDeclineRequest, "Gold Bank has declined a request for bank line information on Acme Corp"},
	}
	for _, tc := range cases {
		payload, err := factory.GetNotification(tc.typ, subject, "Gold Bank", "Acme Corp")
		require.NoError(t, err, "type %s", tc.typ)
		assert.Equal(t, tc.want, payload.Message, "type %s", tc.typ)
	}
}

func TestGetNotificationUnknownType(t *testing.T) {
	factory := NewFactory(NewResolver(DefaultConfig()))

	_, err := factory.GetNotification(Type("RiskCover.Archived"), rdSubject(), "Gold Bank", "Acme Corp")

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestGetNotificationUnconfiguredContext(t *testing.T) {
	factory := NewFactory(NewResolver(DefaultConfig()))
	subject := rdSubject()
	subject.Context.SubProductID = "sblc"

	_, err := factory.GetNotification(TypeRiskCoverDisclosed, subject, "Gold Bank", "Acme Corp")

	assert.ErrorIs(t, err, ErrConfigNotFound)
}
