package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/lucaschema/output"
	"github.com/robinvdvleuten/lucaschema/telemetry"
	"github.com/robinvdvleuten/lucaschema/web"
)

type ServeCmd struct {
	File    string `help:"Luca document to serve." arg:"" type:"existingfile"`
	Port    int    `help:"Port to listen on." default:"8080" env:"LUCA_PORT"`
	Host    string `help:"Host to bind to." default:"127.0.0.1" env:"LUCA_HOST"`
	NoWatch bool   `help:"Do not reload the document when it changes on disk."`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := globals.Logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if globals.Telemetry {
		runCtx = telemetry.WithCollector(runCtx, telemetry.NewLogCollector(logger))
	}

	documentFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, documentFile, version, commitSHA)
	server.Host = cmd.Host
	server.WatchEnabled = !cmd.NoWatch
	server.Logger = logger

	styles := output.NewStyles(ctx.Stdout)
	printInfof(ctx.Stdout, "Starting server on http://%s:%d", server.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving document: %s", styles.FilePath(documentFile))

	return server.Start(runCtx)
}
