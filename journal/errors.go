package journal

import (
	"errors"
	"fmt"
)

// ErrUnbalanced matches every reason a journal entry can fail to balance.
var ErrUnbalanced = errors.New("journal entry does not balance")

// Balance failures, each matching ErrUnbalanced under errors.Is.
var (
	// ErrNoPostings is returned for an entry without postings.
	ErrNoPostings = &entryError{msg: "no postings provided"}
	// ErrNoDebits is returned when no posting of the entry is a DEBIT.
	ErrNoDebits = &entryError{msg: "no debit entries found"}
	// ErrNoCredits is returned when debits are present but no CREDIT is.
	ErrNoCredits = &entryError{msg: "no credit entries found"}
	// ErrAmountOverflow is returned when a side's total or the difference
	// does not fit in an int64. Amounts within model.MaxSafeAmount never
	// overflow in practice.
	ErrAmountOverflow = &entryError{msg: "amounts overflow a 64-bit total"}
)

type entryError struct{ msg string }

func (e *entryError) Error() string        { return e.msg }
func (e *entryError) Is(target error) bool { return target == ErrUnbalanced }

// ImbalanceError is returned when both sides are present but their totals differ.
type ImbalanceError struct {
	Debits     int64
	Credits    int64
	Difference int64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("debits (%d) do not equal credits (%d): difference %d", e.Debits, e.Credits, e.Difference)
}

func (e *ImbalanceError) Is(target error) bool { return target == ErrUnbalanced }

// EntryError names the journal entry a balance failure belongs to.
type EntryError struct {
	Key      string // Journal entry id, NullKey for ungrouped postings
	Postings int
	Err      error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("journal entry %s: %s", DisplayKey(e.Key), e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// ValidationErrors wraps the failures of every unbalanced entry.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d journal entries do not balance", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// DisplayKey renders a group key for people, spelling out the null key.
func DisplayKey(key string) string {
	if key == NullKey {
		return "(none)"
	}
	return key
}
