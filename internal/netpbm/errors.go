package netpbm

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed PGM data")
	ErrTruncated   = errors.New("truncated PGM data")
	ErrUnsupported = errors.New("unsupported Netpbm format")
)

// DecodeError reports why input bytes are not a valid PGM image. Kind is one
// of ErrMalformed, ErrTruncated or ErrUnsupported; Offset is the byte
// position where decoding stopped.
type DecodeError struct {
	Kind   error
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s at byte %d", e.Kind.Error(), e.Offset)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Kind.Error(), e.Offset, e.Msg)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

// EncodeError wraps a failure to write an encoded image.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("failed to encode PGM: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
