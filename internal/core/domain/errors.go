package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported output format")
	ErrConversionInFlight = errors.New("conversion already running")
	ErrNothingToConvert   = errors.New("nothing to convert")
	ErrDecodeFailure      = errors.New("image decode failure")
	ErrInvalidInput       = errors.New("invalid input")
	ErrItemNotFound       = errors.New("item not found")
	ErrIndexOutOfRange    = errors.New("index out of range")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
