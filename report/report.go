// Package report runs the full check of a Luca document: decoding, type and
// schema rules, then the balance of every journal entry. The CLI and the web
// server both render the resulting Report.
package report

import (
	"context"
	"errors"

	"github.com/robinvdvleuten/lucaschema/journal"
	"github.com/robinvdvleuten/lucaschema/loader"
	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/schema"
)

// Report is the outcome of checking one document. Problems holds decode,
// type and schema errors; when there are any, the journal is not checked.
type Report struct {
	File     string              `json:"file"`
	Valid    bool                `json:"isValid"`
	Problems []schema.FieldError `json:"problems"`
	Journal  *journal.Summary    `json:"journal,omitempty"`

	Document *model.Document `json:"-"`
	Entries  *journal.Report `json:"-"`
}

// Checker checks documents. It is safe for concurrent use.
type Checker struct {
	loader *loader.Loader
}

// NewChecker returns a Checker that validates documents with v.
func NewChecker(v *schema.Validator) *Checker {
	return &Checker{loader: loader.New(loader.WithSchemaValidation(v))}
}

// Check decodes and checks data. Problems with the document end up in the
// Report; the error is reserved for an unsupported format or a cancelled
// context.
func (c *Checker) Check(ctx context.Context, filename string, data []byte) (*Report, error) {
	r := &Report{File: filename, Problems: []schema.FieldError{}}

	result, err := c.loader.LoadBytes(ctx, filename, data)
	if err != nil {
		problems, ok := problemsOf(err)
		if !ok {
			return nil, err
		}
		r.Problems = problems
		return r, nil
	}
	r.Document = result.Document

	entries, err := journal.Validate(ctx, result.Document.Transactions)
	if err != nil {
		return nil, err
	}
	summary := entries.Summary()
	r.Entries = entries
	r.Journal = &summary
	r.Valid = summary.Valid
	return r, nil
}

func problemsOf(err error) ([]schema.FieldError, bool) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return verr.Errors, true
	}

	var derr *loader.DecodeError
	if errors.As(err, &derr) {
		return []schema.FieldError{{
			Type:     schema.SchemaErrorType,
			Severity: schema.SeverityCritical,
			Code:     "INVALID_SYNTAX",
			Message:  derr.Error(),
		}}, true
	}
	return nil, false
}
