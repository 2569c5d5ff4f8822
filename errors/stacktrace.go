package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace recorded closest to err, or nil.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(x error) bool {
		t, ok := x.(stackTracer)
		if ok {
			st = t.StackTrace()
		}
		return ok
	})
	return st
}

// internalFrames are dropped from the top of a stack trace. They point to
// this package or to the runtime after a recovered panic.
var internalFrames = []string{"/errors/errors.go", "/errors/field.go", "/runtime/", "/_test/"}

// callerFrames drops frames of this package and of the runtime, so that
// the trace starts where the error was created.
func callerFrames(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && inFile(st[0], internalFrames) {
		st = st[1:]
	}
	for len(st) > 1 && inFile(st[len(st)-1], []string{"/runtime/"}) {
		st = st[:len(st)-1]
	}
	return st
}

func inFile(f errors.Frame, paths []string) bool {
	file, _ := frameSource(f)
	for _, p := range paths {
		if strings.Contains(file, p) {
			return true
		}
	}
	return false
}

func frameSource(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

// Format supports the following verbs:
//	%s   the error message
//	%v   the message followed by [file:line] of where the error was created
//	%+v  the full stack trace followed by the message
func (e *wrappedError) Format(s fmt.State, verb rune) {
	st := callerFrames(stackTrace(e))
	full := verb == 'v' && s.Flag('+')
	if full {
		fmt.Fprintf(s, "%+v\n", st)
	}
	io.WriteString(s, e.Error())
	if verb == 'v' && !full && len(st) > 0 {
		file, line := frameSource(st[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}
