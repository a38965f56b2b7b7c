package whitelist

import (
	"errors"
	"fmt"
)

// ErrStorage matches every StorageError with errors.Is.
var ErrStorage = errors.New("whitelist storage error")

// StorageError reports a failed read or write of the persisted whitelist.
// When it is returned by a mutation, the in-memory whitelist is unchanged.
type StorageError struct {
	Op  string // "load", "add", "remove", "replace"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("whitelist %s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
