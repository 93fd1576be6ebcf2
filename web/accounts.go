package web

import (
	"net/http"

	"github.com/robinvdvleuten/lucaschema/hierarchy"
	"github.com/robinvdvleuten/lucaschema/model"
)

// AccountNode is one account of the chart with its subtree.
type AccountNode struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	AccountType   model.AccountType `json:"accountType"`
	NormalBalance model.EntryType   `json:"normalBalance"`
	IsActive      bool              `json:"isActive"`
	Depth         int               `json:"depth"`
	Path          []string          `json:"path"`
	Children      []*AccountNode    `json:"children"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []*AccountNode `json:"accounts"`
	Orphans  []string       `json:"orphans"`
	Cycles   []string       `json:"cycles"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns the chart of accounts as a tree; accounts whose parent is missing
// appear at the top level and are listed in orphans. Each parent cycle appears
// at the top level too, entered at its first account, and its members are
// listed in cycles.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	var accounts []model.Account
	if s.report != nil && s.report.Document != nil {
		accounts = s.report.Document.Accounts
	}
	s.mu.RUnlock()

	writeJSONResponse(w, buildAccounts(hierarchy.New(accounts)))
}

func buildAccounts(tree *hierarchy.Tree) *AccountsResponse {
	response := &AccountsResponse{
		Accounts: []*AccountNode{},
		Orphans:  []string{},
		Cycles:   []string{},
	}
	for _, a := range tree.Orphans() {
		response.Orphans = append(response.Orphans, a.ID)
	}
	for _, a := range tree.Cycles() {
		response.Cycles = append(response.Cycles, a.ID)
	}

	// Walk is depth-first, so the last node opened at depth-1 is the parent.
	var stack []*AccountNode
	tree.Walk(func(a model.Account, depth int) bool {
		node := &AccountNode{
			ID:            a.ID,
			Name:          a.Name,
			AccountType:   a.AccountType,
			NormalBalance: a.NormalBalance(),
			IsActive:      a.IsActive,
			Depth:         depth,
			Path:          tree.Path(a.ID),
			Children:      []*AccountNode{},
		}
		stack = append(stack[:depth], node)
		if depth == 0 {
			response.Accounts = append(response.Accounts, node)
		} else {
			parent := stack[depth-1]
			parent.Children = append(parent.Children, node)
		}
		return true
	})
	return response
}
