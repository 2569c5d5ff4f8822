package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. If only a single error is
// given, it is returned as it is. The result of Append can be tested with Is
// for any of the collected kinds.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten so that Unpack always returns leaf errors.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(m), strings.Join(points, "\n\t"))
}

// Unpack returns all errors this instance is grouping.
func (m multiErr) Unpack() []error {
	return m
}

var _ unpacker = multiErr(nil)
