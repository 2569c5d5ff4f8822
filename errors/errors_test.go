package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type customError struct{}

func (*customError) Error() string { return "custom error" }

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"same kind": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"other kind": {
			kind: ErrNotFound,
			err:  ErrModel,
			want: false,
		},
		"wrapped once": {
			kind: ErrUnauthorized,
			err:  Wrap(ErrUnauthorized, "only the asker can cancel"),
			want: true,
		},
		"wrapped twice": {
			kind: ErrTransfer,
			err:  Wrap(Wrapf(ErrTransfer, "leg %d", 1), "fill"),
			want: true,
		},
		"wrapped by pkg/errors": {
			kind: ErrNotFound,
			err:  errors.Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"wrapped other kind": {
			kind: ErrNotFound,
			err:  Wrap(ErrOverflow, "too big"),
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  fmt.Errorf("stdlib"),
			want: false,
		},
		"wrapped stdlib error": {
			kind: ErrNotFound,
			err:  Wrap(fmt.Errorf("stdlib"), "wrapped"),
			want: false,
		},
		"field error": {
			kind: ErrInput,
			err:  Field("Asker", ErrInput, "bad"),
			want: true,
		},
		"group member": {
			kind: ErrNotApproved,
			err:  Append(ErrTransfer, ErrNotApproved),
			want: true,
		},
		"wrapped group member": {
			kind: ErrNotApproved,
			err:  Append(ErrTransfer, Wrap(ErrNotApproved, "spender")),
			want: true,
		},
		"group behind a wrap": {
			kind: ErrOverflow,
			err:  Wrap(Append(ErrState, ErrOverflow), "outer"),
			want: true,
		},
		"group without the kind": {
			kind: ErrNotFound,
			err:  Append(ErrState, ErrOverflow),
			want: false,
		},
		"empty group": {
			kind: ErrNotFound,
			err:  Append(nil, nil),
			want: false,
		},
		"nil kind and nil": {
			kind: nil,
			err:  nil,
			want: true,
		},
		"nil kind and typed nil": {
			kind: nil,
			err:  (*customError)(nil),
			want: true,
		},
		"nil kind and an error": {
			kind: nil,
			err:  ErrNotFound,
			want: false,
		},
		"nil kind and a group": {
			kind: nil,
			err:  Append(ErrState, ErrOverflow),
			want: false,
		},
		"kind and nil": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Is(tc.err))
			assert.Equal(t, tc.want, Is(tc.err, tc.kind))
		})
	}
}

func TestCause(t *testing.T) {
	std := stdlib.New("disk full")
	assert.Equal(t, std, errors.Cause(Wrap(std, "write transfers")))
	assert.Equal(t, ErrNotFound, errors.Cause(Wrapf(ErrNotFound, "ask %s", "0x01")))
	assert.Equal(t, ErrNotFound, errors.Cause(ErrNotFound))
}

func TestStdlibUnwrap(t *testing.T) {
	std := stdlib.New("disk full")
	err := Wrap(Wrap(std, "inner"), "outer")
	assert.True(t, stdlib.Is(err, std))

	var target *customError
	assert.True(t, stdlib.As(Field("Asker", &customError{}, ""), &target))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestWithType(t *testing.T) {
	err := WithType(ErrModel, &customError{})
	assert.Equal(t, "*errors.customError: invalid model", err.Error())
	assert.True(t, ErrModel.Is(err))
}

func TestRegisterDuplicatedCode(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.Code(), "another not found")
	})
	assert.Panics(t, func() {
		Register(internalCode, "internal")
	})
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	assert.True(t, ErrPanic.Is(err))
	assert.Equal(t, "boom: panic", err.Error())
}
