package render

import (
	"errors"
	"fmt"
)

var ErrLineTooLong = errors.New("line too long")

// LineTooLongError reports a rendered line wider than the configured maximum.
type LineTooLongError struct {
	Line  int
	Width int
	Max   int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line %d: rendered width %d exceeds maximum %d", e.Line, e.Width, e.Max)
}

func (e *LineTooLongError) Unwrap() error {
	return ErrLineTooLong
}

var ErrInvalidEncoding = errors.New("invalid UTF-8")

// InvalidEncodingError reports an input line that is not valid UTF-8.
type InvalidEncodingError struct {
	Line int
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, ErrInvalidEncoding)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidEncoding
}
