package utils

import "context"

// Get returns the context value stored under key when it has type T.
func Get[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}
