// Package golderr holds the error type used across the server and CLI
// layers that sit above the core grammar engine (SPEC_FULL §10). It does
// not touch the core engine's own typed errors
// (table.LoadError/lex.LexError/lex.GroupError/parse.ParseError): those
// stay concrete structs per spec.md §7 so a caller can inspect exactly
// what went wrong (an offset, a rule, a stack snapshot); Error here is for
// the ambient "something failed, here's why, here's what it's equivalent
// to for errors.Is purposes" cases a server or CLI wraps those in.
package golderr

import "errors"

// Error is compatible with errors.Is: checking it against any of the
// errors it holds as a cause returns true, without the caller needing to
// type-assert.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns every cause, for Go 1.20+'s multi-error errors.Is/As.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is reports whether target equals e or any of e's causes, for Go 1.19's
// single-target errors.Is.
func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok {
		if e.msg != other.msg || len(e.cause) != len(other.cause) {
			return false
		}
		for i := range e.cause {
			if e.cause[i] != other.cause[i] {
				return false
			}
		}
		return true
	}
	for _, c := range e.cause {
		if c == target {
			return true
		}
	}
	return false
}

// New creates an Error with the given message and, optionally, causes that
// errors.Is will match against.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.cause = append([]error(nil), causes...)
	}
	return e
}

// Sentinel errors shared by every server/CLI package above the core
// engine, mirroring server/serr's role for the teacher's own API layer.
var (
	ErrNotFound      = errors.New("the requested entity could not be found")
	ErrAlreadyExists = errors.New("a resource with the same identifying information already exists")
	ErrBadArgument   = errors.New("one or more arguments is invalid")
	ErrPermissions   = errors.New("you don't have permission to do that")
	ErrDB            = errors.New("an error occurred with the cache database")
	ErrBodyUnmarshal = errors.New("malformed data in request body")
)

// WrapDB creates an Error that wraps err as a cause and also carries
// ErrDB, so callers can check errors.Is(err, golderr.ErrDB) without caring
// about the specific driver error underneath.
func WrapDB(msg string, err error) Error {
	return Error{msg: msg, cause: []error{err, ErrDB}}
}
