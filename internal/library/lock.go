package library

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".shellac.lock"

// ErrLocked reports that another process holds the library lock.
var ErrLocked = errors.New("another shellac instance is using this library")

// Lock is an exclusive advisory lock on a library directory, held while a
// process mutates library files.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the library's advisory lock without blocking.
func (l *Library) AcquireLock() (*Lock, error) {
	fl := flock.New(filepath.Join(l.path, lockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil receiver.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
