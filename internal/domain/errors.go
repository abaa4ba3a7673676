package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories a simulation call can
// report. None of them is fatal to the process.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindTransport
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the usual op/message context.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationError(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func NotFoundError(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

func TransportError(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message of a domain error, falling back
// to err.Error() for anything else.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Msg != "" {
		return de.Msg
	}
	return err.Error()
}
