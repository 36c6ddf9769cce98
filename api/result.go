package api

// Result separates a failed call from a successful one with an empty payload.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Failure returns the reason the call failed, or nil.
func (r Result[T]) Failure() error {
	return r.Err
}

func resultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}
