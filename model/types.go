// Package model defines the Luca financial data model: accounts, postings,
// categories, entities and recurring transactions, together with the closed
// enumerations their fields draw from.
//
// Enumerations are string types so that documents decode without loss. A value
// outside the declared set decodes fine and is rejected later by the schema
// validator, which can then point at the offending field.
package model

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// EntryType classifies a posting as a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

var entryTypes = []EntryType{Debit, Credit}

// EntryTypes returns every entry type in declaration order.
func EntryTypes() []EntryType { return slices.Clone(entryTypes) }

func (t EntryType) IsValid() bool  { return slices.Contains(entryTypes, t) }
func (t EntryType) String() string { return string(t) }

// Opposite returns the other side of the entry, or the value unchanged when it
// is not a known entry type.
func (t EntryType) Opposite() EntryType {
	switch t {
	case Debit:
		return Credit
	case Credit:
		return Debit
	default:
		return t
	}
}

// TransactionState is the lifecycle state of a posting.
type TransactionState string

const (
	StatePlanned   TransactionState = "PLANNED"
	StateScheduled TransactionState = "SCHEDULED"
	StatePending   TransactionState = "PENDING"
	StateCompleted TransactionState = "COMPLETED"
	StateCancelled TransactionState = "CANCELLED"
	StateFailed    TransactionState = "FAILED"
	StateDisputed  TransactionState = "DISPUTED"
	StateRefunded  TransactionState = "REFUNDED"
	StateTentative TransactionState = "TENTATIVE"
	StateUpcoming  TransactionState = "UPCOMING"
	StateDeleted   TransactionState = "DELETED"
)

var transactionStates = []TransactionState{
	StatePlanned, StateScheduled, StatePending, StateCompleted, StateCancelled,
	StateFailed, StateDisputed, StateRefunded, StateTentative, StateUpcoming, StateDeleted,
}

func TransactionStates() []TransactionState { return slices.Clone(transactionStates) }

func (s TransactionState) IsValid() bool  { return slices.Contains(transactionStates, s) }
func (s TransactionState) String() string { return string(s) }

// AccountType places an account in the accounting equation.
type AccountType string

const (
	AccountAsset     AccountType = "ASSET"
	AccountLiability AccountType = "LIABILITY"
	AccountEquity    AccountType = "EQUITY"
	AccountRevenue   AccountType = "REVENUE"
	AccountExpense   AccountType = "EXPENSE"
)

var accountTypes = []AccountType{AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense}

func AccountTypes() []AccountType { return slices.Clone(accountTypes) }

func (t AccountType) IsValid() bool  { return slices.Contains(accountTypes, t) }
func (t AccountType) String() string { return string(t) }

// NormalBalance returns the side that increases an account of this type.
// Assets and expenses grow with debits; liabilities, equity and revenue with credits.
func (t AccountType) NormalBalance() EntryType {
	switch t {
	case AccountAsset, AccountExpense:
		return Debit
	default:
		return Credit
	}
}

// CategoryType tells system categories apart from user-made ones.
type CategoryType string

const (
	CategoryDefault  CategoryType = "DEFAULT"
	CategoryModified CategoryType = "MODIFIED"
	CategoryCustom   CategoryType = "CUSTOM"
)

var categoryTypes = []CategoryType{CategoryDefault, CategoryModified, CategoryCustom}

func CategoryTypes() []CategoryType { return slices.Clone(categoryTypes) }

func (t CategoryType) IsValid() bool  { return slices.Contains(categoryTypes, t) }
func (t CategoryType) String() string { return string(t) }

// EntityType describes a counterparty.
type EntityType string

const (
	EntityAccount    EntityType = "ACCOUNT"
	EntityRetailer   EntityType = "RETAILER"
	EntityService    EntityType = "SERVICE"
	EntityIndividual EntityType = "INDIVIDUAL"
	EntityUtility    EntityType = "UTILITY"
	EntityGovernment EntityType = "GOVERNMENT"
)

var entityTypes = []EntityType{EntityAccount, EntityRetailer, EntityService, EntityIndividual, EntityUtility, EntityGovernment}

func EntityTypes() []EntityType { return slices.Clone(entityTypes) }

func (t EntityType) IsValid() bool  { return slices.Contains(entityTypes, t) }
func (t EntityType) String() string { return string(t) }

// EntityStatus is the lifecycle state of a counterparty.
type EntityStatus string

const (
	EntityActive    EntityStatus = "ACTIVE"
	EntityInactive  EntityStatus = "INACTIVE"
	EntitySuspended EntityStatus = "SUSPENDED"
	EntityDeleted   EntityStatus = "DELETED"
	EntityClosed    EntityStatus = "CLOSED"
)

var entityStatuses = []EntityStatus{EntityActive, EntityInactive, EntitySuspended, EntityDeleted, EntityClosed}

func EntityStatuses() []EntityStatus { return slices.Clone(entityStatuses) }

func (s EntityStatus) IsValid() bool  { return slices.Contains(entityStatuses, s) }
func (s EntityStatus) String() string { return string(s) }

// RecurringTransactionFrequency is the unit a recurrence interval counts in.
type RecurringTransactionFrequency string

const (
	FrequencyDay   RecurringTransactionFrequency = "DAY"
	FrequencyWeek  RecurringTransactionFrequency = "WEEK"
	FrequencyMonth RecurringTransactionFrequency = "MONTH"
	FrequencyYear  RecurringTransactionFrequency = "YEAR"
)

var frequencies = []RecurringTransactionFrequency{FrequencyDay, FrequencyWeek, FrequencyMonth, FrequencyYear}

func RecurringTransactionFrequencies() []RecurringTransactionFrequency {
	return slices.Clone(frequencies)
}

func (f RecurringTransactionFrequency) IsValid() bool  { return slices.Contains(frequencies, f) }
func (f RecurringTransactionFrequency) String() string { return string(f) }

// RecurringTransactionState is the lifecycle state of a recurrence template.
type RecurringTransactionState string

const (
	RecurringActive    RecurringTransactionState = "ACTIVE"
	RecurringPaused    RecurringTransactionState = "PAUSED"
	RecurringCompleted RecurringTransactionState = "COMPLETED"
	RecurringCancelled RecurringTransactionState = "CANCELLED"
)

var recurringStates = []RecurringTransactionState{RecurringActive, RecurringPaused, RecurringCompleted, RecurringCancelled}

func RecurringTransactionStates() []RecurringTransactionState { return slices.Clone(recurringStates) }

func (s RecurringTransactionState) IsValid() bool  { return slices.Contains(recurringStates, s) }
func (s RecurringTransactionState) String() string { return string(s) }

// RecurringTransactionEventStatus records how one occurrence deviates from its template.
type RecurringTransactionEventStatus string

const (
	EventModified RecurringTransactionEventStatus = "MODIFIED"
	EventDeleted  RecurringTransactionEventStatus = "DELETED"
)

var eventStatuses = []RecurringTransactionEventStatus{EventModified, EventDeleted}

func RecurringTransactionEventStatuses() []RecurringTransactionEventStatus {
	return slices.Clone(eventStatuses)
}

func (s RecurringTransactionEventStatus) IsValid() bool  { return slices.Contains(eventStatuses, s) }
func (s RecurringTransactionEventStatus) String() string { return string(s) }

// SchemaType names a record kind that can be validated on its own.
type SchemaType string

const (
	SchemaAccount                   SchemaType = "account"
	SchemaCategory                  SchemaType = "category"
	SchemaEntity                    SchemaType = "entity"
	SchemaLucaSchema                SchemaType = "lucaSchema"
	SchemaRecurringTransaction      SchemaType = "recurringTransaction"
	SchemaRecurringTransactionEvent SchemaType = "recurringTransactionEvent"
	SchemaTransaction               SchemaType = "transaction"
)

var schemaTypes = []SchemaType{
	SchemaAccount, SchemaCategory, SchemaEntity, SchemaLucaSchema,
	SchemaRecurringTransaction, SchemaRecurringTransactionEvent, SchemaTransaction,
}

func SchemaTypes() []SchemaType { return slices.Clone(schemaTypes) }

func (s SchemaType) IsValid() bool  { return slices.Contains(schemaTypes, s) }
func (s SchemaType) String() string { return string(s) }

// ParseSchemaType looks up a schema type by name, ignoring case.
func ParseSchemaType(name string) (SchemaType, error) {
	for _, s := range schemaTypes {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown schema type %q", name)
}

// EnumValues returns the allowed values of the enumeration named by tag, as
// used in validation tags ("entrytype", "accounttype", ...). It returns nil for
// an unknown tag.
func EnumValues(tag string) []string {
	switch tag {
	case "entrytype":
		return toStrings(entryTypes)
	case "transactionstate":
		return toStrings(transactionStates)
	case "accounttype":
		return toStrings(accountTypes)
	case "categorytype":
		return toStrings(categoryTypes)
	case "entitytype":
		return toStrings(entityTypes)
	case "entitystatus":
		return toStrings(entityStatuses)
	case "frequency":
		return toStrings(frequencies)
	case "recurringstate":
		return toStrings(recurringStates)
	case "eventstatus":
		return toStrings(eventStatuses)
	default:
		return nil
	}
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
