package typeinfo

import (
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrNilReceiver    = NewError("nil receiver")
	ErrNotAddressable = NewError("receiver is not addressable")
	ErrReadOnly       = NewError("member is read-only")
	ErrWriteOnly      = NewError("member is write-only")
	ErrArgumentCount  = NewError("argument count mismatch")
	ErrArgumentType   = NewError("argument type mismatch")
	ErrNotCallable    = NewError("member is not callable")
	ErrNotIndexable   = NewError("member is not an indexer")
	ErrCallPanicked   = NewError("call panicked")
	ErrInstantiate    = NewError("generic instantiation failed")
	ErrUnexported     = NewError("member is reached through an unexported field")
	ErrRegister       = NewError("type registration failed")
)

// Error represents a reflective access error with structured logging
// attributes.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg == e.msg && t.msg != ""
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
