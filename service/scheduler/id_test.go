package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTaskIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[TaskID]struct{})
	for i := 0; i < 100; i++ {
		id := NewTaskID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestGenerateWorkerRequestID(t *testing.T) {
	t.Parallel()

	first := GenerateWorkerRequestID("task-1", "geocode", 1)
	require.Equal(t, "worker-geocode-task-1-1", first)
	require.Equal(t, first, GenerateWorkerRequestID("task-1", "geocode", 1))
	require.NotEqual(t, first, GenerateWorkerRequestID("task-1", "geocode", 2))
	require.NotEqual(t, first, GenerateWorkerRequestID("task-2", "geocode", 1))
}
