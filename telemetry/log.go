package telemetry

import (
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/robinvdvleuten/lucaschema/output"
)

// LogCollector logs every finished operation at debug level instead of
// keeping a tree. Long-running processes such as the web server use it, where
// a report at exit would come too late to be useful.
type LogCollector struct {
	logger *zap.Logger
}

func NewLogCollector(logger *zap.Logger) *LogCollector {
	return &LogCollector{logger: logger}
}

func (c *LogCollector) Start(name string) Timer {
	return &logTimer{logger: c.logger, path: []string{name}, start: time.Now()}
}

// Report does nothing; operations were logged as they finished.
func (c *LogCollector) Report(io.Writer, *output.Styles) {}

type logTimer struct {
	logger *zap.Logger
	path   []string
	start  time.Time
}

func (t *logTimer) End() {
	t.logger.Debug("operation finished",
		zap.String("operation", strings.Join(t.path, " > ")),
		zap.Duration("duration", time.Since(t.start)),
	)
}

func (t *logTimer) Child(name string) Timer {
	path := append(append([]string(nil), t.path...), name)
	return &logTimer{logger: t.logger, path: path, start: time.Now()}
}
