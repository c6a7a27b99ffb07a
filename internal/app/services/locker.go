package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/timetabler/internal/pkg/apperrors"
)

// Locker serializes import runs. Lock does not wait: a held lock yields an
// error wrapping apperrors.ErrImportInProgress.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker serializes runs within one process.
type LocalLocker struct {
	mu sync.Mutex
}

// NewLocalLocker returns an unlocked LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

// Lock implements Locker.
func (l *LocalLocker) Lock(context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, fmt.Errorf("local import lock is held: %w", apperrors.ErrImportInProgress)
	}
	return l.mu.Unlock, nil
}

type chainLocker []Locker

// ChainLockers takes every lock in order and releases them in reverse.
func ChainLockers(lockers ...Locker) Locker {
	return chainLocker(lockers)
}

func (c chainLocker) Lock(ctx context.Context) (func(), error) {
	unlocks := make([]func(), 0, len(c))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, l := range c {
		unlock, err := l.Lock(ctx)
		if err != nil {
			release()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
