package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors ordered from innermost to outermost.
type Error []error

// ErrConfig reports a configuration directory or file that cannot be used.
var ErrConfig = MakeErrorf("configuration error")

// MakeError flattens errs into a chain. Nil errors are skipped and errors
// that wrap others contribute their whole chain, innermost first.
func MakeError(errs ...error) Error {
	var chain Error

	for _, err := range errs {
		chain = append(chain, UnwrapErrors(err)...)
	}

	return chain
}

// MakeErrorf makes a chain of one formatted error.
func MakeErrorf(format string, args ...any) Error {
	return Error{fmt.Errorf(format, args...)}
}

// Error joins the messages of the chain with ": ".
func (e Error) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, ": ")
}

// Wrap returns e extended with errs. The receiver is not modified.
func (e Error) Wrap(errs ...error) Error {
	return append(slices.Clip(e), errs...)
}

// Wrapf returns e extended with a formatted error.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error { return e }

// UnwrapErrors returns the chain of err, innermost first, ending with err.
func UnwrapErrors(err error) Error {
	var chain Error

	switch w := err.(type) {
	case nil:
		return nil
	case interface{ Unwrap() []error }:
		for _, inner := range w.Unwrap() {
			chain = append(chain, UnwrapErrors(inner)...)
		}
	case interface{ Unwrap() error }:
		chain = UnwrapErrors(w.Unwrap())
	}

	return append(chain, err)
}
