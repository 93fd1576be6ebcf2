package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/lucaschema/journal"
	"github.com/robinvdvleuten/lucaschema/loader"
	"github.com/robinvdvleuten/lucaschema/output"
)

// DoctorCmd provides doctor utilities for debugging Luca documents.
type DoctorCmd struct {
	Dump    DumpCmd    `cmd:"" help:"Show the decoded document."`
	Journal JournalCmd `cmd:"" help:"Show postings grouped by journal entry."`
}

// DumpCmd prints the decoded document without validating it.
type DumpCmd struct {
	File FileOrStdin `help:"Luca document, JSON or YAML (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, "doctor dump")
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(result.Document)

	return nil
}

// JournalCmd prints each journal entry with its postings and balance result.
type JournalCmd struct {
	File FileOrStdin `help:"Luca document, JSON or YAML (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the journal command.
func (cmd *JournalCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, "doctor journal")
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	entries, err := journal.Validate(runCtx, result.Document.Transactions)
	if err != nil {
		return err
	}

	styles := output.NewStyles(ctx.Stdout)
	p := repr.New(ctx.Stdout, repr.Indent("  "), repr.OmitEmpty(true))
	for _, e := range entries.Entries() {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n", styles.Keyword("entry"), styles.Account(journal.DisplayKey(e.Key)))
		p.Println(e.Result)
		for _, posting := range e.Postings {
			p.Println(posting)
		}
	}

	return nil
}
