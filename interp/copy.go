package interp

import (
	"github.com/mitchellh/copystructure"

	"github.com/chaptersix/taskgrid/store"
)

// CopyFrames returns a deep copy of a call stack. Guest values have no
// aliasing, so the copy is inert and safe to hand to another goroutine.
func CopyFrames(frames []Frame) ([]Frame, error) {
	if len(frames) == 0 {
		return nil, nil
	}
	copied, err := copystructure.Copy(frames)
	if err != nil {
		return nil, err
	}
	return copied.([]Frame), nil
}

// CopyBindings returns a deep copy of a binding set, used to capture a
// by-value snapshot of locals at fork time.
func CopyBindings(bindings map[string]store.Value) (map[string]store.Value, error) {
	if len(bindings) == 0 {
		return map[string]store.Value{}, nil
	}
	copied, err := copystructure.Copy(bindings)
	if err != nil {
		return nil, err
	}
	return copied.(map[string]store.Value), nil
}
