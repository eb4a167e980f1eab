// Package result provides a discriminated success/failure wrapper used for
// expected failure paths in the conversion pipeline. Unexpected failures
// (programming errors) still use panics and error returns as usual.
package result

// Result holds either a value or a failure message, never both.
type Result[T any] struct {
	value T
	err   string
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps a failure message.
func Err[T any](msg string) Result[T] {
	return Result[T]{err: msg}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the wrapped value. It is only meaningful when IsOk is true.
func (r Result[T]) Value() T {
	return r.value
}

// ErrMsg returns the failure message, or "" for a success.
func (r Result[T]) ErrMsg() string {
	return r.err
}

// Get returns the value and whether it is present, comma-ok style.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}
