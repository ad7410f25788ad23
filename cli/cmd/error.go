package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure.
//
// The package-level sentinels carry only a message. Errors derived from a
// sentinel through [Error.Wrap] or [Error.With] match it under [errors.Is]
// and add the failing cause and attributes describing the input.
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
}

var (
	ErrReadBindings = &Error{msg: "read variable bindings"}
	ErrEvaluate     = &Error{msg: "evaluate expression"}
	ErrAssign       = &Error{msg: "assign expression"}
	ErrOutput       = &Error{msg: "write output"}
	ErrWriteConfig  = &Error{msg: "write configuration file"}
	ErrFileExists   = &Error{msg: "file exists (use --force to overwrite)"}
)

func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	s, ok := target.(*Error)

	return ok && s.cause == nil && s.msg != "" && s.msg == e.msg
}

// LogValue groups the message, cause and attributes of e.
func (e *Error) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.msg)}
	if e.cause != nil {
		attrs = append(attrs, slog.Any("cause", e.cause))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = slices.Concat(e.attrs, attrs)

	return &c
}
