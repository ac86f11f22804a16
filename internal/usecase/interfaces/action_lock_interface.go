package interfaces

import (
	"context"
	"errors"
)

var ErrActionInProgress = errors.New("action already in progress")

// ReleaseFunc releases a lock obtained from IActionLock.
type ReleaseFunc func(ctx context.Context) error

// IActionLock serializes one kind of action per key (usually per user) so a
// double click cannot run the same submission twice.
//
// Acquire returns ErrActionInProgress when the key is already held.
type IActionLock interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}
