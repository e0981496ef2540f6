package tag

import (
	"time"

	"go.uber.org/zap"
)

// Tag is a typed structured logging field. Components attach tags to log
// calls instead of formatting values into the message string.
type Tag struct {
	field zap.Field
}

// Field returns the underlying zap field.
func (t Tag) Field() zap.Field {
	return t.field
}

func newStringTag(key string, value string) Tag {
	return Tag{field: zap.String(key, value)}
}

func newIntTag(key string, value int) Tag {
	return Tag{field: zap.Int(key, value)}
}

func newDurationTag(key string, value time.Duration) Tag {
	return Tag{field: zap.Duration(key, value)}
}

func newTimeTag(key string, value time.Time) Tag {
	return Tag{field: zap.Time(key, value)}
}

// Error tags an error value.
func Error(err error) Tag {
	return Tag{field: zap.Error(err)}
}

// TaskID tags the identity of a task.
func TaskID(id string) Tag {
	return newStringTag("task-id", id)
}

// TaskKind tags the kind of a task (command, forked, reading, ...).
func TaskKind(kind string) Tag {
	return newStringTag("task-kind", kind)
}

// Owner tags the identity that owns a task.
func Owner(owner string) Tag {
	return newStringTag("owner", owner)
}

// Attempt tags the execution attempt number of a task.
func Attempt(attempt int) Tag {
	return newIntTag("attempt", attempt)
}

// AbortCause tags the reason a task was aborted.
func AbortCause(cause string) Tag {
	return newStringTag("abort-cause", cause)
}

// WakeTime tags the absolute time a queued task becomes runnable.
func WakeTime(t time.Time) Tag {
	return newTimeTag("wake-time", t)
}

// Delay tags a suspension delay.
func Delay(d time.Duration) Tag {
	return newDurationTag("delay", d)
}

// RequestID tags an external worker request identifier.
func RequestID(id string) Tag {
	return newStringTag("request-id", id)
}

// WorkerCount tags the size of the worker pool.
func WorkerCount(n int) Tag {
	return newIntTag("worker-count", n)
}

// QueueSize tags the number of entries in a queue.
func QueueSize(n int) Tag {
	return newIntTag("queue-size", n)
}

// TicksRemaining tags a task's remaining tick budget.
func TicksRemaining(n int) Tag {
	return newIntTag("ticks-remaining", n)
}

// Stack tags the call-stack frame locations in an abort report.
func Stack(locations []string) Tag {
	return Tag{field: zap.Strings("stack", locations)}
}

// ConfigPath tags the path of a loaded configuration file.
func ConfigPath(path string) Tag {
	return newStringTag("config-path", path)
}
