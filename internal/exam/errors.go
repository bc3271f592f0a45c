package exam

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrMalformedData = errors.New("malformed data")
	ErrUnknownUser   = errors.New("unknown user")
	ErrValidation    = errors.New("validation failed")
	ErrStorage       = errors.New("storage failure")
)

// StorageError tags a driver error as ErrStorage while keeping it
// inspectable. Errors already tagged are returned as is.
func StorageError(op string, err error) error {
	if err == nil || errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
