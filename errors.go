package lzwpack

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the interface implemented by every error the codec packages
// return. All of them are terminal: nothing is retried internally.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrCorruptStream is returned when a code stream references a code that is
// neither in the dictionary nor the next code to be allocated, or when there
// are no codes at all.
var ErrCorruptStream = rootError.WithMessage("Corrupt code stream")

// ErrLengthMismatch is returned when the number of decoded symbols disagrees
// with the dimensions declared in the container header.
var ErrLengthMismatch = rootError.WithMessage("Decoded length mismatch")

// ErrMalformedHeader is returned when a container is truncated or one of its
// fields is structurally inconsistent.
var ErrMalformedHeader = rootError.WithMessage("Malformed container header")

var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrNotSupported = rootError.WithMessage("Operation not supported")

// ErrEmptyInput is returned when asked to encode zero symbols. The dictionary
// coder has nothing to emit for an empty input and the decoder would have no
// first code to start from, so empty input is rejected up front.
var ErrEmptyInput = ErrInvalidArgument.WithMessage("empty input is not supported")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
