package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps read "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// publishLog collects the artifacts written by one command and logs a
// summary with the elapsed time. Not safe for concurrent use.
type publishLog struct {
	logger *log.Logger
	start  time.Time
	files  []string
	bytes  int
}

func newPublishLog(l *log.Logger) *publishLog {
	return &publishLog{logger: l, start: time.Now()}
}

// add records one written artifact.
func (p *publishLog) add(location string, size int) {
	p.files = append(p.files, location)
	p.bytes += size
	p.logger.Debug("published", "location", location, "bytes", size)
}

// summary returns e.g. "Wrote 2 file(s), 48,213 bytes".
func (p *publishLog) summary() string {
	return fmt.Sprintf("Wrote %d file(s), %s bytes", len(p.files), formatCount(p.bytes))
}

// done logs the summary with the elapsed time.
func (p *publishLog) done() {
	p.logger.Infof("%s (%s)", p.summary(), time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
