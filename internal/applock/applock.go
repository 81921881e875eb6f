// Package applock takes an advisory, exclusive filesystem lock on a save
// path for the duration of an open-mutate-write cycle. The codec itself is
// not thread-safe (spec: single-process, single-writer); this is the
// caller-side guard around that contract.
package applock

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"

	"github.com/pkroam/pkroam/internal/rlog"
)

// Lock wraps an acquired (or best-effort-attempted) flock.Flock.
type Lock struct {
	fl       *flock.Flock
	acquired bool
}

// Acquire takes an exclusive, non-blocking lock on path+".lock", retrying a
// bounded number of times with a short constant backoff. If the underlying
// filesystem does not support flock, acquisition failure is logged and the
// caller proceeds anyway — the tool then assumes no concurrent editor, per
// the single-writer resource model.
func Acquire(path string) *Lock {
	fl := flock.New(path + ".lock")

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 5)
	acquired := false
	err := backoff.Retry(func() error {
		ok, err := fl.TryLock()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errLockHeld
		}
		acquired = true
		return nil
	}, policy)

	if err != nil || !acquired {
		rlog.Warn("could not acquire advisory lock, proceeding without it",
			rlog.F("path", path), rlog.F("error", err))
	}

	return &Lock{fl: fl, acquired: acquired}
}

// Release unlocks the save path, if a lock was actually acquired.
func (l *Lock) Release() {
	if l == nil || !l.acquired {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		rlog.Warn("failed to release advisory lock", rlog.F("error", err))
	}
}

type lockHeldError struct{}

func (lockHeldError) Error() string { return "applock: lock already held" }

var errLockHeld = lockHeldError{}
