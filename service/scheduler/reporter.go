package scheduler

import (
	"github.com/chaptersix/taskgrid/common/log"
	"github.com/chaptersix/taskgrid/common/log/tag"
)

type loggingAbortReporter struct {
	logger log.Logger
}

// NewLoggingAbortReporter returns an AbortReporter that writes each abort,
// with its stack trace, to the logger. Hosts with richer failure surfaces
// (in-world tracebacks, notifications) supply their own reporter.
func NewLoggingAbortReporter(logger log.Logger) AbortReporter {
	return &loggingAbortReporter{logger: logger}
}

func (r *loggingAbortReporter) ReportAbort(report AbortReport) {
	locations := make([]string, len(report.Stack))
	for i, frame := range report.Stack {
		locations[i] = frame.Location
	}
	r.logger.Error("task aborted",
		tag.TaskID(string(report.TaskID)),
		tag.Owner(report.Owner),
		tag.TaskKind(report.Kind.String()),
		tag.AbortCause(report.Cause.String()),
		tag.Attempt(report.Attempt),
		tag.Error(report.Err),
		tag.Stack(locations),
	)
}
