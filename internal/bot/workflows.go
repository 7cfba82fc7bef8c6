package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tajik-krasava/RPP/internal/backend"
	"github.com/tajik-krasava/RPP/internal/fsm"
	"github.com/tajik-krasava/RPP/internal/storage"
)

// Workflow names double as routing keys for finish-time keyboards.
const (
	wfAddCurrency    = "add_currency"
	wfDeleteCurrency = "delete_currency"
	wfUpdateCurrency = "update_currency"
	wfConvert        = "convert"
	wfRegistration   = "registration"
	wfAddOperation   = "add_operation"
	wfViewOperations = "view_operations"
)

// Backend is the slice of the backend client the workflows need.
type Backend interface {
	LoadCurrency(ctx context.Context, name string, rate float64) error
	UpdateCurrency(ctx context.Context, name string, newRate float64) error
	DeleteCurrency(ctx context.Context, name string) error
	Currencies(ctx context.Context) ([]backend.Currency, error)
	Convert(ctx context.Context, name string, amount float64) (backend.Conversion, error)
	Rate(ctx context.Context, code string) (float64, error)
}

// UserStore is the registration repository surface used by the ledger commands.
type UserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// OperationStore is the ledger repository surface.
type OperationStore interface {
	Insert(ctx context.Context, op storage.Operation) error
	ListByUser(ctx context.Context, chatID int64) ([]storage.Operation, error)
}

// AdminStore answers the boolean admin check.
type AdminStore interface {
	IsAdmin(ctx context.Context, chatID int64) (bool, error)
	List(ctx context.Context) ([]int64, error)
}

// addCurrencyWorkflow: name -> rate -> POST /load. The name step verifies
// against the data service that the currency is not stored yet; a hit
// terminates the dialog since retyping the same name cannot succeed.
func addCurrencyWorkflow(be Backend) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfAddCurrency,
		Steps: []fsm.Step{
			{
				State:        stateAddName,
				Field:        fieldCurrencyName,
				Prompt:       msgEnterCurrencyName,
				InvalidReply: msgEnterCurrencyName,
				Validate:     fsm.CurrencyName,
				Check: func(ctx context.Context, fields map[string]string) error {
					known, err := currencyKnown(ctx, be, fields[fieldCurrencyName])
					if err != nil {
						return err
					}
					if known {
						return fsm.Precondition(msgCurrencyExists)
					}
					return nil
				},
			},
			{
				State:        stateAddRate,
				Field:        fieldRate,
				Prompt:       msgEnterCurrencyRate,
				InvalidReply: msgEnterNumber,
				Validate:     fsm.PositiveDecimal,
			},
		},
		Finish: func(ctx context.Context, _ int64, fields map[string]string) (string, error) {
			name := fields[fieldCurrencyName]
			err := be.LoadCurrency(ctx, name, fsm.ParseDecimal(fields[fieldRate]))
			if errors.Is(err, backend.ErrCurrencyExists) {
				return msgCurrencyExists, nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(msgCurrencyAdded, name), nil
		},
	}
}

// deleteCurrencyWorkflow: name -> POST /delete. The lookup at the name
// step means an unknown name never reaches the delete endpoint.
func deleteCurrencyWorkflow(be Backend) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfDeleteCurrency,
		Steps: []fsm.Step{
			{
				State:        stateDeleteName,
				Field:        fieldCurrencyName,
				Prompt:       msgEnterDeleteName,
				InvalidReply: msgEnterDeleteName,
				Validate:     fsm.CurrencyName,
				Check: func(ctx context.Context, fields map[string]string) error {
					known, err := currencyKnown(ctx, be, fields[fieldCurrencyName])
					if err != nil {
						return err
					}
					if !known {
						return fsm.Precondition(msgCurrencyDeleteFail)
					}
					return nil
				},
			},
		},
		Finish: func(ctx context.Context, _ int64, fields map[string]string) (string, error) {
			name := fields[fieldCurrencyName]
			err := be.DeleteCurrency(ctx, name)
			if errors.Is(err, backend.ErrCurrencyNotFound) {
				return msgCurrencyDeleteFail, nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(msgCurrencyDeleted, name), nil
		},
	}
}

// updateCurrencyWorkflow: name -> new rate -> POST /update_currency. The
// name step verifies the currency exists before asking for a rate.
func updateCurrencyWorkflow(be Backend) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfUpdateCurrency,
		Steps: []fsm.Step{
			{
				State:        stateUpdateName,
				Field:        fieldCurrencyName,
				Prompt:       msgEnterCurrencyName,
				InvalidReply: msgEnterCurrencyName,
				Validate:     fsm.CurrencyName,
				Check: func(ctx context.Context, fields map[string]string) error {
					known, err := currencyKnown(ctx, be, fields[fieldCurrencyName])
					if err != nil {
						return err
					}
					if !known {
						return fsm.Precondition(msgCurrencyMissing)
					}
					return nil
				},
			},
			{
				State:        stateUpdateRate,
				Field:        fieldRate,
				Prompt:       msgEnterNewRate,
				InvalidReply: msgEnterNumber,
				Validate:     fsm.PositiveDecimal,
			},
		},
		Finish: func(ctx context.Context, _ int64, fields map[string]string) (string, error) {
			name := fields[fieldCurrencyName]
			err := be.UpdateCurrency(ctx, name, fsm.ParseDecimal(fields[fieldRate]))
			if errors.Is(err, backend.ErrCurrencyNotFound) {
				return msgCurrencyMissing, nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(msgCurrencyUpdated, name), nil
		},
	}
}

// convertWorkflow: currency -> amount -> GET /convert.
func convertWorkflow(be Backend) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfConvert,
		Steps: []fsm.Step{
			{
				State:        stateConvertCurrency,
				Field:        fieldCurrency,
				Prompt:       msgEnterCurrencyName,
				InvalidReply: msgEnterCurrencyName,
				Validate:     fsm.CurrencyName,
			},
			{
				State:        stateConvertAmount,
				Field:        fieldAmount,
				Prompt:       msgEnterConvertAmount,
				InvalidReply: msgEnterNumber,
				Validate:     fsm.Decimal,
			},
		},
		Finish: func(ctx context.Context, _ int64, fields map[string]string) (string, error) {
			name := fields[fieldCurrency]
			conv, err := be.Convert(ctx, name, fsm.ParseDecimal(fields[fieldAmount]))
			if errors.Is(err, backend.ErrCurrencyNotFound) {
				return msgConvertFailed, nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf(msgConvertResult,
				fields[fieldAmount], name, formatAmount(conv.ConvertedAmount)), nil
		},
	}
}

// registrationWorkflow: name -> INSERT INTO users.
func registrationWorkflow(users UserStore) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfRegistration,
		Steps: []fsm.Step{
			{
				State:        stateRegistrationName,
				Field:        fieldName,
				Prompt:       msgEnterName,
				InvalidReply: msgEnterName,
				Validate: func(raw string) (string, error) {
					name := strings.TrimSpace(raw)
					if name == "" {
						return "", errors.New("empty name")
					}
					return name, nil
				},
			},
		},
		Finish: func(ctx context.Context, userID int64, fields map[string]string) (string, error) {
			err := users.Insert(ctx, userID, fields[fieldName])
			if errors.Is(err, storage.ErrExists) {
				return msgAlreadyRegistered, nil
			}
			if err != nil {
				return "", err
			}
			return msgRegistered, nil
		},
	}
}

// addOperationWorkflow: type -> sum -> date -> INSERT INTO operations.
func addOperationWorkflow(ops OperationStore) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfAddOperation,
		Steps: []fsm.Step{
			{
				State:        stateOperationType,
				Field:        fieldKind,
				Prompt:       msgChooseOperationType,
				InvalidReply: msgChooseFromKeyboard,
				Validate:     fsm.OneOf(btnExpense, btnIncome),
			},
			{
				State:        stateOperationSum,
				Field:        fieldSum,
				Prompt:       msgEnterOperationSum,
				InvalidReply: msgEnterOperationNum,
				Validate:     fsm.Decimal,
			},
			{
				State:        stateOperationDate,
				Field:        fieldDate,
				Prompt:       msgEnterOperationDate,
				InvalidReply: msgBadDate,
				Validate:     fsm.Date,
			},
		},
		Finish: func(ctx context.Context, userID int64, fields map[string]string) (string, error) {
			date, err := time.Parse("2006-01-02", fields[fieldDate])
			if err != nil {
				return "", fmt.Errorf("parse validated date: %w", err)
			}
			err = ops.Insert(ctx, storage.Operation{
				Date:   date,
				Sum:    fsm.ParseDecimal(fields[fieldSum]),
				ChatID: userID,
				Kind:   fields[fieldKind],
			})
			if err != nil {
				return "", err
			}
			return msgOperationAdded, nil
		},
	}
}

// viewOperationsWorkflow: currency choice -> list operations, converting
// through the data service for non-ruble views.
func viewOperationsWorkflow(ops OperationStore, be Backend) *fsm.Workflow {
	return &fsm.Workflow{
		Name: wfViewOperations,
		Steps: []fsm.Step{
			{
				State:        stateViewCurrency,
				Field:        fieldCurrency,
				Prompt:       msgChooseViewCurrency,
				InvalidReply: msgChooseViewFromList,
				Validate:     fsm.OneOf(btnRUB, btnUSD, btnEUR),
			},
		},
		Finish: func(ctx context.Context, userID int64, fields map[string]string) (string, error) {
			list, err := ops.ListByUser(ctx, userID)
			if err != nil {
				return "", err
			}
			if len(list) == 0 {
				return msgNoOperations, nil
			}

			code := fields[fieldCurrency]
			rate := 1.0
			if code != btnRUB {
				rate, err = be.Rate(ctx, code)
				if errors.Is(err, backend.ErrCurrencyNotFound) {
					return msgRateFetchFailed, nil
				}
				if err != nil {
					return "", err
				}
			}

			var sb strings.Builder
			sb.WriteString(msgOperationsHeader)
			sb.WriteString("\n\n")
			for _, op := range list {
				sb.WriteString(fmt.Sprintf("%s | %.2f %s | %s\n",
					op.Date.Format("2006-01-02"), op.Sum/rate, code, op.Kind))
			}
			return sb.String(), nil
		},
	}
}

// currencyKnown asks the data service whether a name is stored. Names are
// compared case-insensitively; the store keeps them uppercased.
func currencyKnown(ctx context.Context, be Backend, name string) (bool, error) {
	list, err := be.Currencies(ctx)
	if err != nil {
		return false, err
	}
	for _, cur := range list {
		if strings.EqualFold(cur.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
