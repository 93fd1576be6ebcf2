package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/lucaschema/journal"
	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/output"
	"github.com/robinvdvleuten/lucaschema/report"
	"github.com/robinvdvleuten/lucaschema/schema"
)

type CheckCmd struct {
	File   FileOrStdin `help:"Luca document, JSON or YAML (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format." enum:"text,json" default:"text" short:"o"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	logger, err := globals.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	sourceContent, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	checker := report.NewChecker(schema.New())
	rep, err := checker.Check(runCtx, cmd.File.Filename, sourceContent)
	if err != nil {
		return err
	}
	logger.Debug("document checked",
		zap.String("file", cmd.File.Filename),
		zap.Int("problems", len(rep.Problems)),
		zap.Bool("valid", rep.Valid))

	if cmd.Format == "json" {
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
		if !rep.Valid {
			reportTelemetry()
			return NewCommandError(1, "document is not valid")
		}
		return nil
	}

	if len(rep.Problems) > 0 {
		renderer := NewErrorRenderer(ctx.Stderr, cmd.File.Filename, sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(rep.Problems))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d problem(s) found", len(rep.Problems)))

		reportTelemetry()
		return NewCommandError(1, "schema problems")
	}

	if err := renderEntries(ctx.Stdout, rep.Entries); err != nil {
		return err
	}

	if !rep.Valid {
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d of %d journal entries do not balance", rep.Journal.InvalidCount, rep.Journal.EntryCount))

		reportTelemetry()
		return NewCommandError(1, "unbalanced journal entries")
	}

	printSuccess(ctx.Stdout, "Check passed")

	return nil
}

// renderEntries writes one table row per journal entry. Nothing is written for
// a document without transactions.
func renderEntries(w io.Writer, entries *journal.Report) error {
	if entries == nil || entries.Len() == 0 {
		return nil
	}

	styles := output.NewStyles(w)
	table := &output.Table{Columns: []output.Column{
		{Header: "Entry"},
		{Header: "Postings", Align: output.AlignRight},
		{Header: "Debits", Align: output.AlignRight},
		{Header: "Credits", Align: output.AlignRight},
		{Header: "Difference", Align: output.AlignRight},
		{Header: "Status"},
	}}

	for _, e := range entries.Entries() {
		status := output.Cell{Text: "ok", Style: styles.Success}
		if !e.Result.Valid {
			status = output.Cell{Text: e.Result.Message(), Style: styles.Error}
		}
		table.AddStyledRow(
			output.Cell{Text: journal.DisplayKey(e.Key), Style: styles.Account},
			output.Cell{Text: strconv.Itoa(len(e.Postings))},
			output.Cell{Text: model.FormatMinorUnits(e.Result.TotalDebits), Style: styles.Amount},
			output.Cell{Text: model.FormatMinorUnits(e.Result.TotalCredits), Style: styles.Amount},
			output.Cell{Text: model.FormatMinorUnits(e.Result.Difference), Style: styles.Amount},
			status,
		)
	}

	if err := table.Render(w, styles); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
