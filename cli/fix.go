package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/lucaschema/loader"
	"github.com/robinvdvleuten/lucaschema/output"
)

// FixCmd rewrites fixable dates in place. Everything else in the file,
// comments and layout included, is left untouched.
type FixCmd struct {
	File   FileOrStdin `help:"Luca document, JSON or YAML (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Yes    bool        `help:"Apply fixes without asking for confirmation." short:"y"`
	DryRun bool        `help:"List the fixes without writing them." short:"n"`
}

func (cmd *FixCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, fmt.Sprintf("fix %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	sourceContent, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	result, err := cmd.File.Load(runCtx, loader.New())
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1, "document did not load")
	}

	// Fixed documents on stdin are echoed so the command works in a pipe.
	if cmd.File.IsStdin() {
		fixed, err := loader.Rewrite(result.Format, sourceContent, result.Fixes)
		if err != nil {
			return err
		}
		_, err = ctx.Stdout.Write(fixed)
		return err
	}

	if len(result.Fixes) == 0 {
		printSuccess(ctx.Stdout, "Nothing to fix")
		return nil
	}

	styles := output.NewStyles(ctx.Stdout)
	for _, f := range result.Fixes {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s  %s %s %s\n",
			styles.Account(f.Field), styles.Dim(f.From), styles.Dim(infoSymbol), styles.Amount(f.To))
	}

	if cmd.DryRun {
		printInfof(ctx.Stdout, "%d fix(es) available", len(result.Fixes))
		return nil
	}

	if !cmd.Yes {
		confirmed, err := promptYesNo(fmt.Sprintf("Apply %d fix(es) to %s?", len(result.Fixes), filepath.Base(cmd.File.Filename)))
		if err != nil {
			return err
		}
		if !confirmed {
			printWarning(ctx.Stdout, "No changes written")
			return nil
		}
	}

	fixed, err := loader.Rewrite(result.Format, sourceContent, result.Fixes)
	if err != nil {
		return err
	}

	if err := writeFilePreservingMode(cmd.File.Filename, fixed); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Fixed %d date(s) in %s", len(result.Fixes), styles.FilePath(cmd.File.Filename)))

	return nil
}

func writeFilePreservingMode(filename string, data []byte) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
