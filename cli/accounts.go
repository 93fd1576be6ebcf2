package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/lucaschema/hierarchy"
	"github.com/robinvdvleuten/lucaschema/loader"
	"github.com/robinvdvleuten/lucaschema/model"
	"github.com/robinvdvleuten/lucaschema/output"
	"github.com/robinvdvleuten/lucaschema/schema"
)

type AccountsCmd struct {
	File     FileOrStdin       `help:"Luca document, JSON or YAML (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Type     model.AccountType `help:"Only list accounts of this type (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)."`
	Inactive bool              `help:"Include inactive accounts."`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Type != "" && !cmd.Type.IsValid() {
		return fmt.Errorf("unknown account type %q", cmd.Type)
	}

	runCtx, reportTelemetry := startTelemetry(ctx, globals, "accounts")
	defer reportTelemetry()

	result, err := cmd.File.Load(runCtx, loader.New(loader.WithSchemaValidation(schema.New())))
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1, "document did not load")
	}

	tree := hierarchy.New(result.Document.Accounts)
	if tree.Len() == 0 {
		printInfof(ctx.Stdout, "No accounts")
		return nil
	}

	return writeAccountTree(ctx.Stdout, tree, cmd.Type, cmd.Inactive)
}

// writeAccountTree prints every account indented by its depth. Filtering by
// type keeps the ancestors of matching accounts so the tree stays readable.
func writeAccountTree(w io.Writer, tree *hierarchy.Tree, accountType model.AccountType, inactive bool) error {
	styles := output.NewStyles(w)

	orphans := make(map[string]bool)
	for _, a := range tree.Orphans() {
		orphans[a.ID] = true
	}
	cycles := make(map[string]bool)
	for _, a := range tree.Cycles() {
		cycles[a.ID] = true
	}

	var err error
	tree.Walk(func(a model.Account, depth int) bool {
		if !a.IsActive && !inactive {
			return false
		}
		if accountType != "" && !hasTypeBelow(tree, a, accountType) {
			return false
		}

		line := strings.Repeat("  ", depth) + styles.Account(a.Name)
		if a.AccountNumber != "" {
			line += " " + styles.Dim("#"+a.AccountNumber)
		}
		line += " " + styles.Keyword(a.AccountType.String())
		if !a.IsActive {
			line += " " + styles.Dim("(inactive)")
		}
		if orphans[a.ID] {
			line += " " + styles.Warning("(missing parent "+a.ParentAccountID+")")
		}
		if cycles[a.ID] {
			line += " " + styles.Warning("(parent cycle)")
		}
		if _, werr := fmt.Fprintln(w, line); werr != nil {
			err = werr
			return false
		}
		return true
	})
	return err
}

func hasTypeBelow(tree *hierarchy.Tree, a model.Account, accountType model.AccountType) bool {
	if a.AccountType == accountType {
		return true
	}
	for _, d := range tree.Descendants(a.ID) {
		if d.AccountType == accountType {
			return true
		}
	}
	return false
}
