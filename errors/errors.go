package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever a party tries to act on something it
	// has no rights to, for example cancelling somebody else's ask.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is used when a requested operation cannot be completed
	// due to missing data.
	ErrNotFound = Register(3, "not found")

	// ErrModel is returned whenever a stored record is invalid and cannot
	// be used (ie. persisted).
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when there is a record already that has the same
	// unique key/index used
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when application reaches a code path which should not
	// ever be reached if the code was written as expected
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a value fails a not empty assertion
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an object is in invalid state
	ErrState = Register(10, "invalid state")

	// ErrType is returned whenever the type is not what was expected
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a holder balance is lower than
	// the amount that is to be moved.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount stands for invalid amount of whatever
	ErrAmount = Register(13, "invalid amount")

	// ErrInput stands for general input problems indication
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the underlying storage fails.
	ErrDatabase = Register(17, "database")

	// ErrIteratorDone is returned when an iterator has no more values to
	// return.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrTransfer is returned when a single asset movement of a fill
	// cannot be completed. The ledger error is appended to it.
	ErrTransfer = Register(19, "transfer failed")

	// ErrNotApproved is returned when a spender moves assets it was never
	// granted access to.
	ErrNotApproved = Register(20, "not approved")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info
	ErrPanic = Register(111222, "panic")
)

// Register declares a new root error kind. Codes are unique and
// registering a code twice panics, so call it only from package level var
// declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registered[code]; ok {
		panic(fmt.Sprintf("error code %d already used by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// registered maps codes to root kinds. Code 1 is kept for errors that do not
// wrap any kind.
var registered = map[uint32]*Error{
	internalCode: {code: internalCode, desc: internalLog},
}

// Error is a root error kind. Errors returned at runtime wrap one of them so
// that callers can test the kind with Is and clients get a stable code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the registered code of this kind.
func (e Error) Code() uint32 {
	return e.code
}

// New returns an error of this kind with given description. It is the same
// as Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if err is of this kind. Wrapped errors are unwrapped and
// every member of an Append group is checked. A nil kind matches only nil
// errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return walk(err, func(x error) bool {
		return x == e
	})
}

// Is returns true if err is of the given kind.
func Is(err error, kind *Error) bool {
	return kind.Is(err)
}

// Wrap adds a description to err. The first wrap in a chain records the
// stack trace. Wrapping nil returns nil, so it is safe to use on a return
// statement.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	parent error
	msg    string
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Unwrap lets the standard library errors package see the chain.
func (e *wrappedError) Unwrap() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the name of the type of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

type causer interface {
	Cause() error
}

// unpacker is implemented by errors grouping several errors together.
type unpacker interface {
	Unpack() []error
}

// walk calls visit with err and then with every error it wraps until visit
// returns true. Members of a group are visited in order, each with its own
// chain, and the group itself is not unwrapped any further.
func walk(err error, visit func(error) bool) bool {
	for err != nil {
		if visit(err) {
			return true
		}
		switch e := err.(type) {
		case unpacker:
			for _, member := range e.Unpack() {
				if walk(member, visit) {
					return true
				}
			}
			return false
		case causer:
			err = e.Cause()
		default:
			return false
		}
	}
	return false
}

// isNilErr is true for nil and for typed nil pointers hidden in an error
// interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
