package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field wraps err with the name of the field it is about. It returns nil if
// err is nil.
//
// Field names use Go naming, dots for nested fields and element indexes
// for sequences, for example Asker, AskerFungible.Tokens or
// FillerNonFungible.TokenIDs.2.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds a field error to errs. Nothing is added if fieldErr is
// nil, so validation code can call it for every field unconditionally.
func AppendField(errs error, fieldName string, fieldErr error) error {
	return Append(errs, Field(fieldName, fieldErr, ""))
}

// FieldErrors returns all errors in err reported for given field.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	var found []error
	walk(err, func(x error) bool {
		if f, ok := x.(*fieldError); ok && f.field == fieldName {
			found = append(found, x)
		}
		return false
	})
	return found
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Unwrap() error {
	return e.parent
}

// Field returns the name of the field this error was reported for.
func (e *fieldError) Field() string {
	return e.field
}
