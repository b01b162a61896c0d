// Package buildlog defines the fatal error raised by build steps.
package buildlog

import "fmt"

// Error is a fatal build error. It carries a descriptive message and,
// optionally, the underlying cause.
type Error struct {
	Msg string
	Err error
}

// Errorf returns an *Error whose message is formatted from format and args.
// cause may be nil.
func Errorf(cause error, format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
