package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode declares that the processing was successful and no
	// error is returned.
	SuccessCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

// Code returns the code of the first registered kind found in err. For an
// Append group that is the kind of the first member that has one. Errors that
// do not wrap any registered kind return 1.
func Code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}
	code := internalCode
	walk(err, func(x error) bool {
		c, ok := x.(coder)
		if ok {
			code = c.Code()
		}
		return ok
	})
	return code
}

// Info returns the code and the message that should be presented to a client
// of the engine. When not running in a debug mode all messages of errors that
// do not provide code information are replaced with generic "internal
// error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	// Only non-internal errors information can be exposed.
	if code := Code(err); code != internalCode {
		if debug {
			// Try to trigger full information formatting. This
			// might produce a stacktrace.
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

// Redact replace all errors that do not wrap a registered kind with a
// generic internal error instance.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
