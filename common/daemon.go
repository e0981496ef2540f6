package common

// Daemon status values used with atomic compare-and-swap to guard
// Start/Stop idempotency on long-running components.
const (
	DaemonStatusInitialized int32 = iota
	DaemonStatusStarted
	DaemonStatusStopped
)

// Daemon is a component with a Start/Stop lifecycle.
type Daemon interface {
	Start()
	Stop()
}
