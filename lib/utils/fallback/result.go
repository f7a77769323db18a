package fallback

type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Result значение с указанием ветки, которая его произвела.
// Reason заполняется только для Fallback и хранит причину отказа удалённого вызова.
type Result[T any] struct {
	Value  T
	Source Source
	Reason error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value, Source: SourceBackend}
}

func Fallback[T any](value T, reason error) Result[T] {
	return Result[T]{Value: value, Source: SourceFallback, Reason: reason}
}

func (r Result[T]) IsFallback() bool {
	return r.Source == SourceFallback
}
