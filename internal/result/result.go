package result

// Result holds either a success value or an error, never both.
// The zero value is a failure with a nil error; construct through Ok and Err.
type Result[T any, E error] struct {
	value T
	err   E
	ok    bool
}

// Ok wraps a success value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

// Err wraps a failure.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

func (r Result[T, E]) IsOk() bool {
	return r.ok
}

func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Value returns the success payload, or the zero value for failures.
func (r Result[T, E]) Value() T {
	return r.value
}

// Error returns the failure payload, or the zero error for successes.
func (r Result[T, E]) Error() E {
	return r.err
}

// Unwrap returns the payload together with an ok flag, comma-ok style.
func (r Result[T, E]) Unwrap() (T, bool) {
	return r.value, r.ok
}

// Map applies f to the success value; failures pass through unchanged.
// Package-level because Go methods cannot introduce type parameters.
func Map[T, U any, E error](r Result[T, E], f func(T) U) Result[U, E] {
	if !r.ok {
		return Result[U, E]{err: r.err}
	}
	return Ok[U, E](f(r.value))
}

// FlatMap applies a Result-returning f to the success value and flattens;
// failures pass through unchanged.
func FlatMap[T, U any, E error](r Result[T, E], f func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Result[U, E]{err: r.err}
	}
	return f(r.value)
}

// MapError transforms the failure payload; successes pass through unchanged.
func MapError[T any, E, F error](r Result[T, E], f func(E) F) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.value)
	}
	return Err[T, F](f(r.err))
}
