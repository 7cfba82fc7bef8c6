package bot

import "github.com/tajik-krasava/RPP/internal/fsm"

// State tags of all dialog workflows. Each workflow is a strict linear
// chain; no state accepts another workflow's input.
const (
	stateAddName    fsm.State = "add-name"
	stateAddRate    fsm.State = "add-rate"
	stateDeleteName fsm.State = "delete-name"
	stateUpdateName fsm.State = "update-name"
	stateUpdateRate fsm.State = "update-rate"

	stateConvertCurrency fsm.State = "convert-currency"
	stateConvertAmount   fsm.State = "convert-amount"

	stateOperationType fsm.State = "operation-type"
	stateOperationSum  fsm.State = "operation-sum"
	stateOperationDate fsm.State = "operation-date"

	stateRegistrationName fsm.State = "registration-name"
	stateViewCurrency     fsm.State = "view-currency"
)

// Field keys used in session fields.
const (
	fieldCurrencyName = "currency_name"
	fieldRate         = "rate"
	fieldCurrency     = "currency"
	fieldAmount       = "amount"
	fieldKind         = "type_operation"
	fieldSum          = "sum"
	fieldDate         = "date"
	fieldName         = "name"
)
