package scheduler

import (
	"fmt"

	"github.com/google/uuid"
)

// NewTaskID returns a fresh task identity.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// GenerateWorkerRequestID returns a deterministic identifier for one
// worker-wait suspension. It is deterministic per (task, attempt) so a
// duplicate dispatch of the same suspension can be deduplicated by the
// external worker.
func GenerateWorkerRequestID(id TaskID, workerKind string, attempt int) string {
	return fmt.Sprintf("worker-%s-%s-%d", workerKind, id, attempt)
}
