// Package assert provides the small set of assertions used by swapsies
// tests. Every helper stops the test on failure.
package assert

import (
	"reflect"
	"testing"

	"github.com/swapsies/swapsies/errors"
)

// Tester is the part of testing.TB the helpers need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if value is not nil. Typed nil pointers, maps, slices
// and such count as nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of an error.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// True fails the test if cond is false. An optional format and arguments
// describe the condition.
func True(t Tester, cond bool, msgAndArgs ...interface{}) {
	t.Helper()
	if cond {
		return
	}
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			t.Fatalf("condition not met: "+format, msgAndArgs[1:]...)
		}
	}
	t.Fatal("condition not met")
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the want kind. A nil want expects
// no error.
func IsErr(t Tester, want *errors.Error, got error) {
	t.Helper()
	if !want.Is(got) {
		t.Fatalf("want %q error, got %+v", describe(want), got)
	}
}

func describe(kind *errors.Error) string {
	if kind == nil {
		return "no"
	}
	return kind.Error()
}

// FieldError fails the test unless err carries exactly one error for given
// field and that error is of the want kind. A nil want expects no error for
// the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %q field error, got %q", fieldName, errs)
		}
		return
	}
	switch len(errs) {
	case 0:
		t.Fatalf("no %q field error in %+v", fieldName, err)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q field error of kind %q, got %q", fieldName, want, errs[0])
		}
	default:
		t.Fatalf("want one %q field error, got %d: %q", fieldName, len(errs), errs)
	}
}
