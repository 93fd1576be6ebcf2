package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionOption configures a Transaction built by NewTransaction.
type TransactionOption func(*Transaction)

// NewTransaction builds a completed posting with fresh payor and payee ids.
// An empty id is replaced with a random UUID.
func NewTransaction(id string, amount int64, entryType EntryType, opts ...TransactionOption) Transaction {
	if id == "" {
		id = uuid.NewString()
	}
	t := Transaction{
		ID:               id,
		PayorID:          uuid.NewString(),
		PayeeID:          uuid.NewString(),
		Amount:           amount,
		Date:             time.Now().UTC().Format(DateLayout),
		TransactionState: StateCompleted,
		EntryType:        entryType,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewDebit builds a debit posting in journal entry journalID.
func NewDebit(amount int64, journalID string, opts ...TransactionOption) Transaction {
	return NewTransaction("", amount, Debit, append([]TransactionOption{WithJournalEntry(journalID)}, opts...)...)
}

// NewCredit builds a credit posting in journal entry journalID.
func NewCredit(amount int64, journalID string, opts ...TransactionOption) Transaction {
	return NewTransaction("", amount, Credit, append([]TransactionOption{WithJournalEntry(journalID)}, opts...)...)
}

func WithJournalEntry(id string) TransactionOption {
	return func(t *Transaction) { t.JournalEntryID = id }
}

func WithDate(date time.Time) TransactionOption {
	return func(t *Transaction) { t.Date = date.Format(DateLayout) }
}

func WithDescription(description string) TransactionOption {
	return func(t *Transaction) { t.Description = description }
}

func WithState(state TransactionState) TransactionOption {
	return func(t *Transaction) { t.TransactionState = state }
}

func WithCategory(id string) TransactionOption {
	return func(t *Transaction) { t.CategoryID = &id }
}

func WithParties(payorID, payeeID string) TransactionOption {
	return func(t *Transaction) {
		t.PayorID = payorID
		t.PayeeID = payeeID
	}
}

// AccountOption configures an Account built by NewAccount.
type AccountOption func(*Account)

// NewAccount builds an active root asset account. An empty id is replaced
// with a random UUID.
func NewAccount(id, name string, opts ...AccountOption) Account {
	if id == "" {
		id = uuid.NewString()
	}
	a := Account{
		ID:          id,
		Name:        name,
		AccountType: AccountAsset,
		IsActive:    true,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func WithParent(id string) AccountOption {
	return func(a *Account) { a.ParentAccountID = id }
}

func WithAccountType(t AccountType) AccountOption {
	return func(a *Account) { a.AccountType = t }
}

func WithAccountNumber(number string) AccountOption {
	return func(a *Account) { a.AccountNumber = number }
}

func Inactive() AccountOption {
	return func(a *Account) { a.IsActive = false }
}
