// Package journal groups postings into journal entries and checks that every
// entry balances.
//
// A journal entry is the set of postings that share a JournalEntryID. An entry
// balances when the sum of its debit amounts equals the sum of its credit
// amounts and it has at least one posting on each side. The side of a posting
// comes from its EntryType; amounts are added as given.
//
// Example usage:
//
//	report := journal.ValidateAll(doc.Transactions)
//	if err := report.Err(); err != nil {
//	    var verrs *journal.ValidationErrors
//	    if errors.As(err, &verrs) {
//	        for _, e := range verrs.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
package journal

import (
	"iter"

	"github.com/robinvdvleuten/lucaschema/model"
)

// NullKey is the group key of postings without a journal entry id. They are
// kept together in one group of their own.
const NullKey = ""

// Groups is a partition of postings by journal entry id. Keys iterate in order
// of first occurrence and postings keep their input order within a group.
type Groups struct {
	keys    []string
	buckets map[string][]model.Transaction
	count   int
}

// Group partitions postings by JournalEntryID. It does not validate anything.
func Group(postings []model.Transaction) *Groups {
	g := &Groups{buckets: make(map[string][]model.Transaction)}
	for _, p := range postings {
		key := p.JournalEntryID
		if _, seen := g.buckets[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.buckets[key] = append(g.buckets[key], p)
		g.count++
	}
	return g
}

// Keys returns the group keys in order of first occurrence.
func (g *Groups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the postings of one group.
func (g *Groups) Get(key string) ([]model.Transaction, bool) {
	postings, ok := g.buckets[key]
	return postings, ok
}

// All iterates over the groups in key order.
func (g *Groups) All() iter.Seq2[string, []model.Transaction] {
	return func(yield func(string, []model.Transaction) bool) {
		for _, key := range g.keys {
			if !yield(key, g.buckets[key]) {
				return
			}
		}
	}
}

// Len returns the number of groups.
func (g *Groups) Len() int { return len(g.keys) }

// Count returns the number of postings across all groups.
func (g *Groups) Count() int { return g.count }
