// Package hierarchy answers tree questions about a chart of accounts: who an
// account's parents and children are, where it sits and how deep.
//
// Accounts point at their parent through ParentAccountID. The tree is indexed
// once by New and every query walks that index. Cycles and dangling parent
// references are tolerated: walks stop at an account they have already seen
// or at a parent id that does not exist. Cycles reports the accounts caught in
// a parent loop.
package hierarchy

import (
	"github.com/robinvdvleuten/lucaschema/model"
)

// Tree is an indexed chart of accounts. It is read-only after New and safe for
// concurrent use.
type Tree struct {
	accounts []model.Account
	byID     map[string]int
	children map[string][]int
}

// New indexes accounts. When two accounts share an id the later one wins.
func New(accounts []model.Account) *Tree {
	t := &Tree{
		accounts: accounts,
		byID:     make(map[string]int, len(accounts)),
		children: make(map[string][]int),
	}
	for i, a := range accounts {
		t.byID[a.ID] = i
		if a.ParentAccountID != "" {
			t.children[a.ParentAccountID] = append(t.children[a.ParentAccountID], i)
		}
	}
	return t
}

// Len returns the number of accounts in the tree.
func (t *Tree) Len() int { return len(t.accounts) }

// Get returns the account with the given id.
func (t *Tree) Get(id string) (model.Account, bool) {
	i, ok := t.byID[id]
	if !ok {
		return model.Account{}, false
	}
	return t.accounts[i], true
}

// Ancestors returns the parents of an account, nearest first. It stops at a
// parent id that does not resolve or that was already visited.
func (t *Tree) Ancestors(id string) []model.Account {
	current, ok := t.Get(id)
	if !ok {
		return nil
	}

	var ancestors []model.Account
	seen := map[string]bool{current.ID: true}
	for current.ParentAccountID != "" {
		parent, ok := t.Get(current.ParentAccountID)
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		ancestors = append(ancestors, parent)
		current = parent
	}
	return ancestors
}

// Descendants returns every account below id, depth-first with siblings in
// input order. The account id itself never appears, even inside a cycle.
func (t *Tree) Descendants(id string) []model.Account {
	var out []model.Account
	seen := map[string]bool{id: true}

	var visit func(parent string)
	visit = func(parent string) {
		for _, i := range t.children[parent] {
			child := t.accounts[i]
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			out = append(out, child)
			visit(child.ID)
		}
	}
	visit(id)
	return out
}

// Children returns the direct children of an account in input order.
func (t *Tree) Children(id string) []model.Account {
	idx := t.children[id]
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.Account, len(idx))
	for n, i := range idx {
		out[n] = t.accounts[i]
	}
	return out
}

// Roots returns the accounts without a parent.
func (t *Tree) Roots() []model.Account {
	var out []model.Account
	for _, a := range t.accounts {
		if a.IsRoot() {
			out = append(out, a)
		}
	}
	return out
}

// Orphans returns the accounts whose parent id does not resolve.
func (t *Tree) Orphans() []model.Account {
	var out []model.Account
	for _, a := range t.accounts {
		if a.IsRoot() {
			continue
		}
		if _, ok := t.byID[a.ParentAccountID]; !ok {
			out = append(out, a)
		}
	}
	return out
}

// IsLeaf reports whether no account names id as its parent.
func (t *Tree) IsLeaf(id string) bool {
	return len(t.children[id]) == 0
}

// Path returns the account names from the root down to the account itself,
// or nil when id is unknown.
func (t *Tree) Path(id string) []string {
	account, ok := t.Get(id)
	if !ok {
		return nil
	}
	ancestors := t.Ancestors(id)
	path := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		path = append(path, ancestors[i].Name)
	}
	return append(path, account.Name)
}

// Depth returns the number of ancestors of an account; roots have depth 0.
func (t *Tree) Depth(id string) int {
	return len(t.Ancestors(id))
}

// ByType returns the accounts of one type in input order.
func (t *Tree) ByType(accountType model.AccountType) []model.Account {
	var out []model.Account
	for _, a := range t.accounts {
		if a.AccountType == accountType {
			out = append(out, a)
		}
	}
	return out
}

// Cycles returns the accounts whose parent chain leads back to themselves, in
// input order. Such accounts are neither roots nor orphans.
func (t *Tree) Cycles() []model.Account {
	var out []model.Account
	for _, a := range t.accounts {
		if t.onCycle(a) {
			out = append(out, a)
		}
	}
	return out
}

func (t *Tree) onCycle(a model.Account) bool {
	seen := map[string]bool{a.ID: true}
	current := a
	for current.ParentAccountID != "" {
		if current.ParentAccountID == a.ID {
			return true
		}
		parent, ok := t.Get(current.ParentAccountID)
		if !ok || seen[parent.ID] {
			return false
		}
		seen[parent.ID] = true
		current = parent
	}
	return false
}

// Walk calls fn for every account, depth-first. Roots come first, then
// orphans at depth 0, then each parent cycle entered at its first account in
// input order at depth 0. Returning false from fn skips the account's subtree.
func (t *Tree) Walk(fn func(account model.Account, depth int) bool) {
	seen := make(map[string]bool, len(t.accounts))

	var visit func(a model.Account, depth int)
	visit = func(a model.Account, depth int) {
		if seen[a.ID] {
			return
		}
		seen[a.ID] = true
		if !fn(a, depth) {
			return
		}
		for _, child := range t.Children(a.ID) {
			visit(child, depth+1)
		}
	}

	for _, a := range append(t.Roots(), t.Orphans()...) {
		visit(a, 0)
	}

	// A skipped cycle account hides the rest of its cycle too.
	covered := make(map[string]bool)
	for _, a := range t.Cycles() {
		if seen[a.ID] || covered[a.ID] {
			continue
		}
		for _, d := range t.Descendants(a.ID) {
			covered[d.ID] = true
		}
		visit(a, 0)
	}
}
