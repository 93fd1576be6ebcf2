package cli

import (
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/lucaschema/logging"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations." env:"LUCA_TELEMETRY"`
	LogLevel  string `help:"Minimum log level (debug, info, warn, error)." default:"warn" env:"LUCA_LOG_LEVEL"`
	LogFormat string `help:"Log output format." enum:"${log_formats}" default:"console" env:"LUCA_LOG_FORMAT"`
	EnvFile   string `help:"Environment file loaded before flags are parsed." default:".env" placeholder:"PATH"`
}

// Vars holds the interpolation variables the Globals tags refer to.
func Vars() kong.Vars {
	return kong.Vars{"log_formats": strings.Join(logging.Formats, ",")}
}

// Logger builds the logger selected by the global flags. Logs go to stderr.
func (g *Globals) Logger() (*zap.Logger, error) {
	return logging.New(logging.Config{
		Format: g.LogFormat,
		Level:  g.LogLevel,
		Output: "stderr",
	})
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Check a Luca document against the schema and balance every journal entry."`
	Fix      FixCmd      `cmd:"" help:"Rewrite YYYY/MM/DD dates in a Luca document to YYYY-MM-DD."`
	Accounts AccountsCmd `cmd:"" help:"Print the chart of accounts as a tree."`
	Serve    ServeCmd    `cmd:"" help:"Start an HTTP API that checks documents."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging Luca documents."`
}
