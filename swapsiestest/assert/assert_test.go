package assert

import (
	"fmt"
	"testing"

	"github.com/swapsies/swapsies/errors"
)

// recorder is a Tester noting whether the assertion failed. Fatal does not
// stop the calling goroutine.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     *errors.Error
		got      error
		wantFail bool
	}{
		"same kind": {
			want: errors.ErrEmpty,
			got:  errors.ErrEmpty,
		},
		"wrapped": {
			want: errors.ErrEmpty,
			got:  errors.Wrap(errors.ErrEmpty, "asker"),
		},
		"one of appended": {
			want: errors.ErrNotApproved,
			got:  errors.Append(errors.ErrTransfer, errors.ErrNotApproved),
		},
		"both nil": {
			want: nil,
			got:  nil,
		},
		"nil want": {
			want:     nil,
			got:      errors.ErrEmpty,
			wantFail: true,
		},
		"nil got": {
			want:     errors.ErrEmpty,
			got:      nil,
			wantFail: true,
		},
		"other kind": {
			want:     errors.ErrEmpty,
			got:      errors.Wrap(errors.ErrState, "asker"),
			wantFail: true,
		},
		"stdlib error": {
			want:     errors.ErrEmpty,
			got:      fmt.Errorf("empty"),
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			IsErr(&r, tc.want, tc.got)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var (
		nilMap map[string]int
		nilPtr *recorder
		nilErr error
	)
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"untyped nil":   {value: nil},
		"nil map":       {value: nilMap},
		"nil pointer":   {value: nilPtr},
		"nil error":     {value: nilErr},
		"zero int":      {value: 0, wantFail: true},
		"empty string":  {value: "", wantFail: true},
		"error":         {value: errors.ErrEmpty, wantFail: true},
		"non nil slice": {value: []int{}, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqualAndTrue(t *testing.T) {
	var r recorder
	Equal(&r, []byte("ask"), []byte("ask"))
	True(&r, 1 < 2)
	if r.failed {
		t.Fatal("unexpected failure")
	}

	Equal(&r, uint64(1), 1)
	if !r.failed {
		t.Fatal("values of different types must not be equal")
	}

	r = recorder{}
	True(&r, false, "balance %d", 3)
	if !r.failed {
		t.Fatal("false condition must fail")
	}
}

func TestPanics(t *testing.T) {
	var r recorder
	Panics(&r, func() { panic("boom") })
	if r.failed {
		t.Fatal("panic not recovered")
	}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("missing panic not reported")
	}
}
