package polynomial

// Optional is a value that may be absent. The zero value is absent.
type Optional[T comparable] struct {
	value T
	set   bool
}

func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func (o Optional[T]) Get() (T, bool) { return o.value, o.set }
func (o Optional[T]) IsSet() bool    { return o.set }

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// orElse returns o when set, otherwise other.
func (o Optional[T]) orElse(other Optional[T]) Optional[T] {
	if o.set {
		return o
	}
	return other
}
