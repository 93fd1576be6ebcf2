// Large Luca Document Generator
//
// This tool generates a large Luca JSON document for performance testing and
// profiling. Every journal entry it writes balances, so `luca check` on the
// output exercises the full decode, schema and journal path.
//
// Usage:
//
//	go run main.go > large.json
//	go run main.go 20000000 > large.json  # Specify target size in bytes
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/robinvdvleuten/lucaschema/model"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
	schemaVersion     = "2.2.0"
)

type chartEntry struct {
	name        string
	parent      string
	accountType model.AccountType
}

var (
	chart = []chartEntry{
		{"Assets", "", model.AccountAsset},
		{"Checking", "Assets", model.AccountAsset},
		{"Savings", "Assets", model.AccountAsset},
		{"Brokerage", "Assets", model.AccountAsset},
		{"Liabilities", "", model.AccountLiability},
		{"Visa", "Liabilities", model.AccountLiability},
		{"Amex", "Liabilities", model.AccountLiability},
		{"Revenue", "", model.AccountRevenue},
		{"Salary", "Revenue", model.AccountRevenue},
		{"Dividends", "Revenue", model.AccountRevenue},
		{"Expenses", "", model.AccountExpense},
		{"Groceries", "Expenses", model.AccountExpense},
		{"Restaurants", "Expenses", model.AccountExpense},
		{"Rent", "Expenses", model.AccountExpense},
		{"Utilities", "Expenses", model.AccountExpense},
		{"Transit", "Expenses", model.AccountExpense},
		{"Equity", "", model.AccountEquity},
		{"Opening Balances", "Equity", model.AccountEquity},
	}

	payees = []string{
		"Whole Foods", "Trader Joe's", "Starbucks", "Shell", "Amazon",
		"Landlord", "City Utilities", "Metro Transit", "Employer Inc", "Café Überall",
	}

	pendingStates = []model.TransactionState{model.StatePending, model.StateScheduled, model.StateTentative}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	stats, err := generate(os.Stdout, targetSize, time.Now().UnixNano())
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d postings in %d journal entries\n",
		stats.bytes, stats.postings, stats.entries)
}

type stats struct {
	bytes    int
	postings int
	entries  int
}

type countingWriter struct {
	w *bufio.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

type generator struct {
	rng      *rand.Rand
	accounts map[string]model.Account
	date     time.Time
}

// generate writes a document of at least targetSize bytes to w. The same seed
// always produces the same document.
func generate(w io.Writer, targetSize int, seed int64) (stats, error) {
	g := &generator{
		rng:      rand.New(rand.NewSource(seed)),
		accounts: make(map[string]model.Account, len(chart)),
		date:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	out := &countingWriter{w: bufio.NewWriter(w)}
	var s stats

	accounts := make([]model.Account, 0, len(chart))
	for i, c := range chart {
		opts := []model.AccountOption{
			model.WithAccountType(c.accountType),
			model.WithAccountNumber(strconv.Itoa(1000 + i*10)),
		}
		if c.parent != "" {
			opts = append(opts, model.WithParent(g.accounts[c.parent].ID))
		}
		a := model.NewAccount(g.id(), c.name, opts...)
		a.CreatedAt = g.timestamp()
		g.accounts[c.name] = a
		accounts = append(accounts, a)
	}

	chartJSON, err := json.MarshalIndent(accounts, "  ", "  ")
	if err != nil {
		return s, err
	}
	if _, err := fmt.Fprintf(out, "{\n  \"schemaVersion\": %q,\n  \"accounts\": %s,\n  \"transactions\": [\n", schemaVersion, chartJSON); err != nil {
		return s, err
	}

	first := true
	for out.n < targetSize {
		var postings []model.Transaction
		switch g.rng.Intn(10) {
		case 0, 1, 2, 3: // 40% - Card purchase
			postings = g.purchase()
		case 4, 5: // 20% - Purchase split across categories
			postings = g.split()
		case 6: // 10% - Paycheck
			postings = g.transfer("Salary", "Checking", 250000, 500000)
		case 7: // 10% - Card payment
			postings = g.transfer("Checking", "Visa", 10000, 200000)
		case 8: // 10% - Savings
			postings = g.transfer("Checking", "Savings", 5000, 100000)
		case 9: // 10% - Dividend still pending
			postings = g.transfer("Dividends", "Brokerage", 100, 20000)
			state := pendingStates[g.rng.Intn(len(pendingStates))]
			for i := range postings {
				postings[i].TransactionState = state
			}
		}

		for _, p := range postings {
			line, err := json.Marshal(p)
			if err != nil {
				return s, err
			}
			sep := ",\n    "
			if first {
				sep = "    "
				first = false
			}
			if _, err := fmt.Fprintf(out, "%s%s", sep, line); err != nil {
				return s, err
			}
		}
		s.postings += len(postings)
		s.entries++

		// Advance date by 0-2 days
		g.date = g.date.AddDate(0, 0, g.rng.Intn(3))
	}

	if _, err := io.WriteString(out, "\n  ]\n}\n"); err != nil {
		return s, err
	}
	s.bytes = out.n
	return s, out.w.Flush()
}

// id returns a UUID drawn from the generator's random source.
func (g *generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

func (g *generator) timestamp() string {
	return g.date.Add(time.Duration(g.rng.Intn(86400)) * time.Second).Format(time.RFC3339)
}

func (g *generator) amount(lo, hi int64) int64 {
	return lo + g.rng.Int63n(hi-lo+1)
}

// postingFunc is model.NewDebit or model.NewCredit.
type postingFunc func(amount int64, journalID string, opts ...model.TransactionOption) model.Transaction

func (g *generator) posting(build postingFunc, amount int64, journalID, payor, payee, description string) model.Transaction {
	id := g.id()
	t := build(amount, journalID,
		func(t *model.Transaction) { t.ID = id },
		model.WithParties(g.accounts[payor].ID, g.accounts[payee].ID),
		model.WithDate(g.date),
		model.WithDescription(description))
	t.CreatedAt = g.timestamp()
	return t
}

func (g *generator) expense() string {
	expenses := []string{"Groceries", "Restaurants", "Rent", "Utilities", "Transit"}
	return expenses[g.rng.Intn(len(expenses))]
}

func (g *generator) card() string {
	if g.rng.Intn(2) == 0 {
		return "Visa"
	}
	return "Amex"
}

func (g *generator) purchase() []model.Transaction {
	journalID := g.id()
	amount := g.amount(100, 25000)
	payee := payees[g.rng.Intn(len(payees))]
	card, expense := g.card(), g.expense()
	return []model.Transaction{
		g.posting(model.NewDebit, amount, journalID, card, expense, payee),
		g.posting(model.NewCredit, amount, journalID, card, expense, payee),
	}
}

func (g *generator) split() []model.Transaction {
	journalID := g.id()
	payee := payees[g.rng.Intn(len(payees))]
	card := g.card()

	parts := 2 + g.rng.Intn(3)
	postings := make([]model.Transaction, 0, parts+1)
	var total int64
	for range parts {
		amount := g.amount(100, 10000)
		total += amount
		postings = append(postings, g.posting(model.NewDebit, amount, journalID, card, g.expense(), payee))
	}
	return append(postings, g.posting(model.NewCredit, total, journalID, card, "Expenses", payee))
}

func (g *generator) transfer(from, to string, lo, hi int64) []model.Transaction {
	journalID := g.id()
	amount := g.amount(lo, hi)
	description := fmt.Sprintf("%s to %s", from, to)
	return []model.Transaction{
		g.posting(model.NewDebit, amount, journalID, from, to, description),
		g.posting(model.NewCredit, amount, journalID, from, to, description),
	}
}
