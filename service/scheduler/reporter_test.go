package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/chaptersix/taskgrid/common/log"
	"github.com/chaptersix/taskgrid/interp"
)

func TestLoggingAbortReporter(t *testing.T) {
	t.Parallel()

	logger, logs := log.NewObservedLogger()
	reporter := NewLoggingAbortReporter(logger)

	reporter.ReportAbort(AbortReport{
		TaskID:  "task-7",
		Owner:   "wizard",
		Kind:    KindCommand,
		Cause:   AbortCauseTickLimit,
		Err:     errors.New("out of ticks"),
		Attempt: 2,
		Stack: []interp.Frame{
			{Location: "look:3"},
			{Location: "describe:1"},
		},
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	require.Equal(t, "task aborted", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "task-7", fields["task-id"])
	require.Equal(t, "wizard", fields["owner"])
	require.Equal(t, "tick-limit", fields["abort-cause"])
	require.Equal(t, []any{"look:3", "describe:1"}, fields["stack"])
}
