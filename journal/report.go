package journal

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/telemetry"
)

// Entry is one validated journal entry.
type Entry struct {
	Key      string
	Postings []model.Transaction
	Result   Result
}

// Report holds the validation result of every journal entry, in the order the
// entries first appear in the input.
type Report struct {
	entries []Entry
	index   map[string]int
}

// ValidateAll groups postings by journal entry and validates each group.
func ValidateAll(postings []model.Transaction) *Report {
	r, _ := Validate(context.Background(), postings)
	return r
}

// Validate is ValidateAll with cancellation and timing. It only fails when ctx
// is done; unbalanced entries are reported through the returned Report.
func Validate(ctx context.Context, postings []model.Transaction) (*Report, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("journal.validate (%d postings)", len(postings)))
	defer timer.End()

	groupTimer := timer.Child("journal.group")
	groups := Group(postings)
	groupTimer.End()

	r := &Report{
		entries: make([]Entry, 0, groups.Len()),
		index:   make(map[string]int, groups.Len()),
	}
	for key, group := range groups.All() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r.index[key] = len(r.entries)
		r.entries = append(r.entries, Entry{
			Key:      key,
			Postings: group,
			Result:   ValidateEntry(group),
		})
	}
	return r, nil
}

// Entries returns every entry in report order.
func (r *Report) Entries() []Entry { return r.entries }

// Get returns the entry for a journal entry id.
func (r *Report) Get(key string) (Entry, bool) {
	i, ok := r.index[key]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Len returns the number of journal entries.
func (r *Report) Len() int { return len(r.entries) }

// Valid reports whether every entry balances. An empty report is valid.
func (r *Report) Valid() bool {
	for _, e := range r.entries {
		if !e.Result.Valid {
			return false
		}
	}
	return true
}

// Invalid returns the keys of the entries that do not balance.
func (r *Report) Invalid() []string {
	var keys []string
	for _, e := range r.entries {
		if !e.Result.Valid {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Err returns a *ValidationErrors holding an *EntryError per unbalanced entry,
// or nil when every entry balances.
func (r *Report) Err() error {
	var errs []error
	for _, e := range r.entries {
		if e.Result.Valid {
			continue
		}
		errs = append(errs, &EntryError{Key: e.Key, Postings: len(e.Postings), Err: e.Result.Err})
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationErrors{Errors: errs}
}
