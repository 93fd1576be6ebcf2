package journal

import (
	"github.com/robinvdvleuten/lucaschema/model"
)

// Result is the outcome of validating one journal entry.
type Result struct {
	TotalDebits  int64 `json:"totalDebits"`
	TotalCredits int64 `json:"totalCredits"`
	Difference   int64 `json:"difference"` // TotalDebits - TotalCredits
	DebitCount   int   `json:"debitCount"`
	CreditCount  int   `json:"creditCount"`
	Valid        bool  `json:"isValid"`
	Err          error `json:"-"` // nil iff Valid
}

// ValidateEntry checks that the postings of one journal entry balance.
//
// Postings with an entry type other than DEBIT or CREDIT are skipped; the
// schema validator rejects them before they get here. When the entry does
// not balance, Err carries the first failing reason in this order:
// ErrNoPostings, ErrNoDebits, ErrNoCredits, ErrAmountOverflow, then
// *ImbalanceError. After an overflow the totals hold the last sums that fit.
func ValidateEntry(postings []model.Transaction) Result {
	if len(postings) == 0 {
		return Result{Err: ErrNoPostings}
	}

	var r Result
	overflow := false
	for _, p := range postings {
		switch p.EntryType {
		case model.Debit:
			r.DebitCount++
			if sum, ok := add(r.TotalDebits, p.Amount); ok {
				r.TotalDebits = sum
			} else {
				overflow = true
			}
		case model.Credit:
			r.CreditCount++
			if sum, ok := add(r.TotalCredits, p.Amount); ok {
				r.TotalCredits = sum
			} else {
				overflow = true
			}
		}
	}
	if diff, ok := sub(r.TotalDebits, r.TotalCredits); ok {
		r.Difference = diff
	} else {
		overflow = true
	}

	switch {
	case r.DebitCount == 0:
		r.Err = ErrNoDebits
	case r.CreditCount == 0:
		r.Err = ErrNoCredits
	case overflow:
		r.Err = ErrAmountOverflow
	case r.Difference != 0:
		r.Err = &ImbalanceError{
			Debits:     r.TotalDebits,
			Credits:    r.TotalCredits,
			Difference: r.Difference,
		}
	default:
		r.Valid = true
	}
	return r
}

// add returns a+b and false when the sum does not fit in an int64.
func add(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// sub returns a-b and false when the difference does not fit in an int64.
func sub(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}
	return diff, true
}

// Message returns the failure reason, or an empty string for a valid entry.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
