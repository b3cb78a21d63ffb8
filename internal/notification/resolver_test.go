package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditlines/internal/disclosure"
	dErrors "creditlines/pkg/domain-errors"
)

func TestTypeForResolvesEveryConfiguredPair(t *testing.T) {
	resolver := NewResolver(DefaultConfig())
	rd := disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "rd"}
	lc := disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "lc"}

	cases := []struct {
		pc   disclosure.ProductContext
		op   Operation
		want Type
	}{
		{rd, OperationDisclosed, TypeRiskCoverDisclosed},
		{rd, OperationUpdated, TypeRiskCoverUpdated},
		{rd, OperationRevoked, TypeRiskCoverRevoked},
		{rd, OperationDeclineRequest, TypeRiskCoverDeclineRequest},
		{lc, OperationDisclosed, TypeBankLineDisclosed},
		{lc, OperationUpdated, TypeBankLineUpdated},
		{lc, OperationRevoked, TypeBankLineRevoked},
		{lc, OperationDeclineRequest, TypeBankLineDeclineRequest},
	}
	for _, tc := range cases {
		got, err := resolver.TypeFor(tc.pc, tc.op)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestTypeForMissReturnsConfigError(t *testing.T) {
	resolver := NewResolver(DefaultConfig())

	_, err := resolver.TypeFor(disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "sblc"}, OperationDisclosed)

	require.Error(t, err)
	assert.EqualError(t, err, "Notification type not found based on provided context")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfigMissing))
}

func TestTypeForRequiresExactContextMatch(t *testing.T) {
	resolver := NewResolver(DefaultConfig())

	// Right sub-product under the wrong product is still a miss.
	_, err := resolver.TypeFor(disclosure.ProductContext{ProductID: "lending", SubProductID: "rd"}, OperationDisclosed)

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestPermissionFor(t *testing.T) {
	resolver := NewResolver(DefaultConfig())

	perm, err := resolver.PermissionFor(disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "rd"})
	require.NoError(t, err)
	assert.Equal(t, RequiredPermission{ProductID: "tradeFinance", ActionID: "manageRiskCover"}, perm)

	perm, err = resolver.PermissionFor(disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "lc"})
	require.NoError(t, err)
	assert.Equal(t, RequiredPermission{ProductID: "tradeFinance", ActionID: "manageBankLines"}, perm)

	_, err = resolver.PermissionFor(disclosure.ProductContext{ProductID: "tradeFinance", SubProductID: "sblc"})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}
