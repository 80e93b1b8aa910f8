package storage

import (
	"errors"

	"github.com/lib/pq"
)

// ErrBusy is returned when a row lock cannot be acquired within the
// bounded wait. The operation performed no mutation and may be retried.
var ErrBusy = errors.New("storage: lock wait timed out")

// pqLockNotAvailable is the Postgres error code raised when lock_timeout
// expires.
const pqLockNotAvailable = "55P03"

// MapError normalizes driver-specific failures onto the storage error
// vocabulary. Unrecognized errors pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqLockNotAvailable {
		return ErrBusy
	}
	return err
}
