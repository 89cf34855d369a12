package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Reporter prints operator feedback, one "> " prefixed line per event.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) Reporter {
	return Reporter{out: out}
}

// StdoutReporter reports to os.Stdout.
func StdoutReporter() Reporter {
	return Reporter{out: os.Stdout}
}

// DiscardReporter drops every line, it is used in tests.
func DiscardReporter() Reporter {
	return Reporter{out: io.Discard}
}

func (r Reporter) Printf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	slog.Debug("report", "line", line)
	if r.out == nil {
		return
	}
	fmt.Fprintf(r.out, "> %s\n", line)
}

func (r Reporter) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
}
