package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createdHere() error {
	return ErrNotApproved.New("spender")
}

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"wrapped kind": {
			err:     Wrap(ErrDuplicate, "ask"),
			wantMsg: "ask: duplicate",
		},
		"kind created with New in a helper": {
			err:     createdHere(),
			wantMsg: "spender: not approved",
		},
		"wrapped stdlib error": {
			err:     Wrap(errors.New("disk full"), "write transfers"),
			wantMsg: "write transfers: disk full",
		},
		"formatted wrap": {
			err:     Wrapf(fmt.Errorf("closed"), "leg %d", 2),
			wantMsg: "leg 2: closed",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())
			assert.NotNil(t, stackTrace(tc.err))
			assert.Equal(t, tc.wantMsg, fmt.Sprintf("%s", tc.err))

			full := fmt.Sprintf("%+v", tc.err)
			assert.Contains(t, full, "errors/stacktrace_test.go")
			assert.Contains(t, full, tc.wantMsg)

			short := fmt.Sprintf("%v", tc.err)
			assert.True(t, strings.HasPrefix(short, tc.wantMsg))
			assert.NotContains(t, short, "\n")
			assert.Contains(t, short, "errors/stacktrace_test.go:")
		})
	}
}

func TestStackTraceRecordedOnce(t *testing.T) {
	inner := Wrap(ErrState, "inner")
	outer := Wrap(inner, "outer")
	assert.Equal(t, stackTrace(inner), stackTrace(outer))
	assert.Equal(t, "outer: inner: invalid state", outer.Error())
}
