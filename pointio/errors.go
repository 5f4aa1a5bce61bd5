package pointio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for lines that are not a pair of finite numbers.
	ErrMalformed = errors.New("pointio: malformed point")

	// ErrShortInput is returned when WithLimit asks for more points than present.
	ErrShortInput = errors.New("pointio: short input")
)

// ParseError describes a malformed line.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pointio: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}
