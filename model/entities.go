package model

// Transaction is one posting: a single debit or credit line of a journal entry.
// Postings that share a JournalEntryID form one journal entry; an empty
// JournalEntryID leaves the posting ungrouped.
type Transaction struct {
	ID               string           `json:"id" yaml:"id" validate:"required,id"`
	PayorID          string           `json:"payorId" yaml:"payorId" validate:"required,id"`
	PayeeID          string           `json:"payeeId" yaml:"payeeId" validate:"required,id"`
	CategoryID       *string          `json:"categoryId" yaml:"categoryId" validate:"omitempty,id"`
	Amount           int64            `json:"amount" yaml:"amount" validate:"nonzero,amount"`
	Date             string           `json:"date" yaml:"date" validate:"required,date"`
	Description      string           `json:"description" yaml:"description" validate:"max=1000"`
	TransactionState TransactionState `json:"transactionState" yaml:"transactionState" validate:"required,enum=transactionstate"`
	EntryType        EntryType        `json:"entryType" yaml:"entryType" validate:"required,enum=entrytype"`
	JournalEntryID   string           `json:"journalEntryId,omitempty" yaml:"journalEntryId,omitempty" validate:"omitempty,id"`
	CreatedAt        string           `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt        *string          `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// IsDebit reports whether the posting sits on the debit side.
func (t Transaction) IsDebit() bool { return t.EntryType == Debit }

// IsCredit reports whether the posting sits on the credit side.
func (t Transaction) IsCredit() bool { return t.EntryType == Credit }

// Account is a node in the chart of accounts. An empty ParentAccountID marks a
// root account.
type Account struct {
	ID              string      `json:"id" yaml:"id" validate:"required,id"`
	Name            string      `json:"name" yaml:"name" validate:"required,max=255"`
	Description     *string     `json:"description" yaml:"description" validate:"omitempty,max=1000"`
	AccountNumber   string      `json:"accountNumber" yaml:"accountNumber" validate:"max=64"`
	AccountType     AccountType `json:"accountType" yaml:"accountType" validate:"required,enum=accounttype"`
	ParentAccountID string      `json:"parentAccountId,omitempty" yaml:"parentAccountId,omitempty" validate:"omitempty,id"`
	IsActive        bool        `json:"isActive" yaml:"isActive"`
	CreatedAt       string      `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt       *string     `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool { return a.ParentAccountID == "" }

// NormalBalance returns the side that increases the account.
func (a Account) NormalBalance() EntryType { return a.AccountType.NormalBalance() }

type Category struct {
	ID                string       `json:"id" yaml:"id" validate:"required,id"`
	Name              string       `json:"name" yaml:"name" validate:"required,max=255"`
	Description       *string      `json:"description" yaml:"description" validate:"omitempty,max=1000"`
	ParentID          *string      `json:"parentId" yaml:"parentId" validate:"omitempty,id"`
	DefaultCategoryID *string      `json:"defaultCategoryId" yaml:"defaultCategoryId" validate:"omitempty,id"`
	CategoryType      CategoryType `json:"categoryType" yaml:"categoryType" validate:"required,enum=categorytype"`
	CreatedAt         string       `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt         *string      `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// Entity is a counterparty: a retailer, a person, a utility and so on.
type Entity struct {
	ID           string       `json:"id" yaml:"id" validate:"required,id"`
	Name         string       `json:"name" yaml:"name" validate:"required,max=255"`
	Description  *string      `json:"description" yaml:"description" validate:"omitempty,max=1000"`
	EntityType   EntityType   `json:"entityType" yaml:"entityType" validate:"required,enum=entitytype"`
	EntityStatus EntityStatus `json:"entityStatus" yaml:"entityStatus" validate:"required,enum=entitystatus"`
	CreatedAt    string       `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt    *string      `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// RecurringTransaction is a template that produces a posting every Interval
// units of Frequency, starting on StartOn.
type RecurringTransaction struct {
	ID                        string                        `json:"id" yaml:"id" validate:"required,id"`
	PayorID                   string                        `json:"payorId" yaml:"payorId" validate:"required,id"`
	PayeeID                   string                        `json:"payeeId" yaml:"payeeId" validate:"required,id"`
	CategoryID                *string                       `json:"categoryId" yaml:"categoryId" validate:"omitempty,id"`
	Amount                    int64                         `json:"amount" yaml:"amount" validate:"nonzero,amount"`
	Description               string                        `json:"description" yaml:"description" validate:"max=1000"`
	Frequency                 RecurringTransactionFrequency `json:"frequency" yaml:"frequency" validate:"required,enum=frequency"`
	Interval                  int                           `json:"interval" yaml:"interval" validate:"min=1"`
	Occurrences               *int                          `json:"occurrences" yaml:"occurrences" validate:"omitempty,min=1"`
	StartOn                   string                        `json:"startOn" yaml:"startOn" validate:"required,date"`
	EndOn                     *string                       `json:"endOn" yaml:"endOn" validate:"omitempty,date"`
	RecurringTransactionState RecurringTransactionState     `json:"recurringTransactionState" yaml:"recurringTransactionState" validate:"required,enum=recurringstate"`
	CreatedAt                 string                        `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt                 *string                       `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// RecurringTransactionEvent records a deviation of one occurrence from its
// template: the occurrence was either modified (TransactionID points at the
// replacement posting) or deleted.
type RecurringTransactionEvent struct {
	ID                     string                          `json:"id" yaml:"id" validate:"required,id"`
	TransactionID          *string                         `json:"transactionId" yaml:"transactionId" validate:"omitempty,id"`
	RecurringTransactionID string                          `json:"recurringTransactionId" yaml:"recurringTransactionId" validate:"required,id"`
	ExpectedDate           string                          `json:"expectedDate" yaml:"expectedDate" validate:"required,date"`
	EventState             RecurringTransactionEventStatus `json:"eventState" yaml:"eventState" validate:"required,enum=eventstatus"`
	CreatedAt              string                          `json:"createdAt" yaml:"createdAt" validate:"required,timestamp"`
	UpdatedAt              *string                         `json:"updatedAt" yaml:"updatedAt" validate:"omitempty,timestamp"`
}

// Document is the root of a Luca data file.
type Document struct {
	SchemaVersion              string                      `json:"schemaVersion" yaml:"schemaVersion" validate:"required"`
	Accounts                   []Account                   `json:"accounts" yaml:"accounts" validate:"dive"`
	Entities                   []Entity                    `json:"entities" yaml:"entities" validate:"dive"`
	Categories                 []Category                  `json:"categories" yaml:"categories" validate:"dive"`
	Transactions               []Transaction               `json:"transactions" yaml:"transactions" validate:"dive"`
	RecurringTransactions      []RecurringTransaction      `json:"recurringTransactions" yaml:"recurringTransactions" validate:"dive"`
	RecurringTransactionEvents []RecurringTransactionEvent `json:"recurringTransactionEvents" yaml:"recurringTransactionEvents" validate:"dive"`
}
