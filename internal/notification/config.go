package notification

import "creditlines/internal/disclosure"

// ConfigEntry maps one (context, operation) pair to a notification type and
// the permission required to view it.
type ConfigEntry struct {
	Context          disclosure.ProductContext
	Operation        Operation
	Type             Type
	RequiredActionID string
}

const (
	productTradeFinance = "tradeFinance"

	subProductRD = "rd"
	subProductLC = "lc"

	actionManageRiskCover = "manageRiskCover"
	actionManageBankLines = "manageBankLines"
)

// DefaultConfig is the static notification table, loaded once at process
// start and immutable thereafter. Lookups scan linearly; the table has eight
// rows.
func DefaultConfig() []ConfigEntry {
	rd := disclosure.ProductContext{ProductID: productTradeFinance, SubProductID: subProductRD}
	lc := disclosure.ProductContext{ProductID: productTradeFinance, SubProductID: subProductLC}

	return []ConfigEntry{
		{Context: rd, Operation: OperationDisclosed, Type: TypeRiskCoverDisclosed, RequiredActionID: actionManageRiskCover},
		{Context: rd, Operation: OperationUpdated, Type: TypeRiskCoverUpdated, RequiredActionID: actionManageRiskCover},
		{Context: rd, Operation: OperationRevoked, Type: TypeRiskCoverRevoked, RequiredActionID: actionManageRiskCover},
		{Context: rd, Operation: OperationDeclineRequest, Type: TypeRiskCoverDeclineRequest, RequiredActionID: actionManageRiskCover},
		{Context: lc, Operation: OperationDisclosed, Type: TypeBankLineDisclosed, RequiredActionID: actionManageBankLines},
		{Context: lc, Operation: OperationUpdated, Type: TypeBankLineUpdated, RequiredActionID: actionManageBankLines},
		{Context: lc, Operation: OperationRevoked, Type: TypeBankLineRevoked, RequiredActionID: actionManageBankLines},
		{Context: lc, Operation: OperationDeclineRequest, Type: TypeBankLineDeclineRequest, RequiredActionID: actionManageBankLines},
	}
}
