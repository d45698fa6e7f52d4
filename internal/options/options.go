// Package options implements generic functional options.
//
// Each configurable type T exposes option constructors returning
// options.Option[T]; constructors apply them in order with Apply.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to the Option interface.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) Option[T] {
	return Func[T](fn)
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return Func[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
