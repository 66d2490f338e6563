package gradient

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input image")

// InvalidInputError reports an image the engine cannot process.
type InvalidInputError struct {
	Width  int
	Height int
	Msg    string
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Msg)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalidf(width, height int, format string, args ...any) error {
	return &InvalidInputError{Width: width, Height: height, Msg: fmt.Sprintf(format, args...)}
}
