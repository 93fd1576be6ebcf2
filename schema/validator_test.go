package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/lucaschema/model"
)

const (
	accountID   = "00000000-0000-0000-0000-000000000001"
	categoryID  = "00000000-0000-0000-0000-000000000002"
	recurringID = "00000000-0000-0000-0000-000000000003"
	eventID     = "00000000-0000-0000-0000-000000000004"
	txID        = "00000000-0000-0000-0000-000000000005"
	journalID   = "00000000-0000-0000-0000-000000000006"
	entityID    = "00000000-0000-0000-0000-000000000007"
	createdAt   = "2024-01-01T00:00:00Z"
)

func validTransaction() model.Transaction {
	return model.Transaction{
		ID:               txID,
		PayorID:          accountID,
		PayeeID:          entityID,
		Amount:           10050,
		Date:             "2024-01-15",
		Description:      "Groceries",
		TransactionState: model.StateCompleted,
		EntryType:        model.Debit,
		JournalEntryID:   journalID,
		CreatedAt:        createdAt,
	}
}

func validDocument() *model.Document {
	occurrences := 12
	return &model.Document{
		SchemaVersion: "2.2.0",
		Accounts: []model.Account{{
			ID: accountID, Name: "Checking", AccountType: model.AccountAsset, IsActive: true, CreatedAt: createdAt,
		}},
		Entities: []model.Entity{{
			ID: entityID, Name: "Grocer", EntityType: model.EntityRetailer, EntityStatus: model.EntityActive, CreatedAt: createdAt,
		}},
		Categories: []model.Category{{
			ID: categoryID, Name: "Food", CategoryType: model.CategoryDefault, CreatedAt: createdAt,
		}},
		Transactions: []model.Transaction{validTransaction()},
		RecurringTransactions: []model.RecurringTransaction{{
			ID: recurringID, PayorID: accountID, PayeeID: entityID, Amount: 5000,
			Frequency: model.FrequencyMonth, Interval: 1, Occurrences: &occurrences,
			StartOn: "2024-01-01", RecurringTransactionState: model.RecurringActive, CreatedAt: createdAt,
		}},
		RecurringTransactionEvents: []model.RecurringTransactionEvent{{
			ID: eventID, RecurringTransactionID: recurringID, ExpectedDate: "2024-02-01",
			EventState: model.EventDeleted, CreatedAt: createdAt,
		}},
	}
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr
}

func TestValidateDocument(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(validDocument()))
	})

	t.Run("EmptyCollections", func(t *testing.T) {
		assert.NoError(t, v.Validate(&model.Document{SchemaVersion: "2.2.0"}))
	})

	t.Run("Nil", func(t *testing.T) {
		verr := validationError(t, v.Validate(nil))
		assert.Equal(t, SchemaErrorType, verr.Errors[0].Type)
	})

	t.Run("FieldPaths", func(t *testing.T) {
		doc := validDocument()
		second := validTransaction()
		second.ID = "not-a-uuid"
		second.Date = "2024/01/15"
		doc.Transactions = append(doc.Transactions, second)
		doc.Accounts[0].AccountType = "CASH"

		verr := validationError(t, v.Validate(doc))
		assert.Equal(t, model.SchemaLucaSchema, verr.Schema)
		assert.Equal(t, []string{
			"accounts[0].accountType",
			"transactions[1].id",
			"transactions[1].date",
		}, verr.Fields())
	})
}

func TestValidateRules(t *testing.T) {
	v := New()
	tests := []struct {
		name       string
		mutate     func(*model.Transaction)
		field      string
		code       string
		severity   Severity
		suggestion string
	}{
		{
			name:       "MissingID",
			mutate:     func(tx *model.Transaction) { tx.ID = "" },
			field:      "id",
			code:       "REQUIRED",
			severity:   SeverityHigh,
			suggestion: `The field "id" is required`,
		},
		{
			name:       "BadUUID",
			mutate:     func(tx *model.Transaction) { tx.PayorID = "user-1" },
			field:      "payorId",
			code:       "INVALID_FORMAT",
			severity:   SeverityMedium,
			suggestion: `Provide a valid UUID (e.g., "123e4567-e89b-12d3-a456-426614174000")`,
		},
		{
			name:       "BadCategoryPointer",
			mutate:     func(tx *model.Transaction) { c := "food"; tx.CategoryID = &c },
			field:      "categoryId",
			code:       "INVALID_FORMAT",
			severity:   SeverityMedium,
			suggestion: `Provide a valid UUID (e.g., "123e4567-e89b-12d3-a456-426614174000")`,
		},
		{
			name:       "ImpossibleDate",
			mutate:     func(tx *model.Transaction) { tx.Date = "2024-02-30" },
			field:      "date",
			code:       "INVALID_FORMAT",
			severity:   SeverityMedium,
			suggestion: `Provide a valid date in YYYY-MM-DD format (e.g., "2024-01-01")`,
		},
		{
			name:       "FixableDate",
			mutate:     func(tx *model.Transaction) { tx.Date = "2024/02/03" },
			field:      "date",
			code:       "INVALID_FORMAT",
			severity:   SeverityMedium,
			suggestion: `Rewrite the date as "2024-02-03" (luca fix does this)`,
		},
		{
			name:       "BadTimestamp",
			mutate:     func(tx *model.Transaction) { tx.CreatedAt = "yesterday" },
			field:      "createdAt",
			code:       "INVALID_FORMAT",
			severity:   SeverityMedium,
			suggestion: `Provide a valid timestamp in RFC 3339 format (e.g., "2024-01-01T00:00:00Z")`,
		},
		{
			name:       "AmountTooLarge",
			mutate:     func(tx *model.Transaction) { tx.Amount = model.MaxSafeAmount + 1 },
			field:      "amount",
			code:       "OUT_OF_RANGE",
			severity:   SeverityHigh,
			suggestion: "Value must be at most 9007199254740991",
		},
		{
			name:       "AmountTooSmall",
			mutate:     func(tx *model.Transaction) { tx.Amount = -model.MaxSafeAmount - 1 },
			field:      "amount",
			code:       "OUT_OF_RANGE",
			severity:   SeverityHigh,
			suggestion: "Value must be at least -9007199254740991",
		},
		{
			name:       "ZeroAmount",
			mutate:     func(tx *model.Transaction) { tx.Amount = 0 },
			field:      "amount",
			code:       "ZERO_AMOUNT",
			severity:   SeverityHigh,
			suggestion: "Record the amount in minor units (e.g., 100.50 → 10050) or remove the posting",
		},
		{
			name:       "UnknownEntryType",
			mutate:     func(tx *model.Transaction) { tx.EntryType = "DR" },
			field:      "entryType",
			code:       "INVALID_ENUM",
			severity:   SeverityMedium,
			suggestion: "Value must be one of: DEBIT, CREDIT",
		},
		{
			name:       "DescriptionTooLong",
			mutate:     func(tx *model.Transaction) { tx.Description = strings.Repeat("x", 1001) },
			field:      "description",
			code:       "OUT_OF_RANGE",
			severity:   SeverityLow,
			suggestion: "Value must be at most 1000 characters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			verr := validationError(t, v.ValidateRecord(model.SchemaTransaction, tx))
			assert.Equal(t, 1, len(verr.Errors))
			fe := verr.Errors[0]
			assert.Equal(t, ValidationErrorType, fe.Type)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.code, fe.Code)
			assert.Equal(t, tt.severity, fe.Severity)
			assert.Equal(t, tt.suggestion, fe.Suggestion)
		})
	}
}

func TestValidateRecord(t *testing.T) {
	v := New()

	t.Run("Pointer", func(t *testing.T) {
		tx := validTransaction()
		assert.NoError(t, v.ValidateRecord(model.SchemaTransaction, &tx))
	})

	t.Run("NilPointer", func(t *testing.T) {
		var tx *model.Transaction
		verr := validationError(t, v.ValidateRecord(model.SchemaTransaction, tx))
		assert.Equal(t, "INVALID_SCHEMA", verr.Errors[0].Code)
	})

	t.Run("WrongType", func(t *testing.T) {
		verr := validationError(t, v.ValidateRecord(model.SchemaAccount, validTransaction()))
		assert.Equal(t, SchemaErrorType, verr.Errors[0].Type)
		assert.Equal(t, SeverityHigh, verr.Errors[0].Severity)
		assert.Contains(t, verr.Error(), "expected model.Account")
	})

	t.Run("UnknownSchema", func(t *testing.T) {
		err := v.ValidateRecord("statement", validTransaction())
		assert.EqualError(t, err, `unknown schema "statement"`)
	})

	t.Run("RecurringInterval", func(t *testing.T) {
		rt := validDocument().RecurringTransactions[0]
		rt.Interval = 0
		verr := validationError(t, v.ValidateRecord(model.SchemaRecurringTransaction, rt))
		assert.Equal(t, "interval", verr.Errors[0].Field)
		assert.Equal(t, "Value must be at least 1", verr.Errors[0].Suggestion)
	})

	t.Run("ZeroAmountMessage", func(t *testing.T) {
		tx := model.NewTransaction("00000000-0000-0000-0000-000000000010", 0, model.Debit,
			model.WithParties("00000000-0000-0000-0000-000000000001", "00000000-0000-0000-0000-000000000002"))
		tx.CreatedAt = "2024-01-15T10:00:00Z"
		err := v.ValidateRecord(model.SchemaTransaction, tx)
		assert.EqualError(t, err, "amount: must not be zero")

		rt := validDocument().RecurringTransactions[0]
		rt.Amount = 0
		verr := validationError(t, v.ValidateRecord(model.SchemaRecurringTransaction, rt))
		assert.Equal(t, "ZERO_AMOUNT", verr.Errors[0].Code)
	})

	t.Run("EventStatus", func(t *testing.T) {
		ev := validDocument().RecurringTransactionEvents[0]
		ev.EventState = "SKIPPED"
		verr := validationError(t, v.ValidateRecord(model.SchemaRecurringTransactionEvent, ev))
		assert.Equal(t, "Value must be one of: MODIFIED, DELETED", verr.Errors[0].Suggestion)
	})
}

func TestValidationErrorMessage(t *testing.T) {
	tx := validTransaction()
	tx.ID = ""
	tx.EntryType = "DR"

	err := New().ValidateRecord(model.SchemaTransaction, tx)
	assert.EqualError(t, err, "validation failed with 2 errors: id: is required, entryType: must be one of DEBIT, CREDIT")

	verr := validationError(t, err)
	var fe FieldError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "id", fe.Field)
	assert.Equal(t, 2, len(verr.Unwrap()))
}

func TestFieldErrorJSON(t *testing.T) {
	fe := TypeError("transactions[0].amount", "integer", json.Number("100.5"))
	data, err := json.Marshal(fe)
	assert.NoError(t, err)
	assert.Equal(t,
		`{"type":"TYPE_ERROR","severity":"MEDIUM","code":"TYPE_MISMATCH","field":"transactions[0].amount","rule":"type","message":"must be integer","value":100.5,"suggestion":"Convert decimal amount to integer cents (e.g., 100.50 → 10050)"}`,
		string(data))
}

func TestValidatorConcurrentUse(t *testing.T) {
	v := New()
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := validDocument()
			if i%2 == 1 {
				doc.Transactions[0].EntryType = "BOTH"
			}
			errs[i] = v.Validate(doc)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 1 {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}
