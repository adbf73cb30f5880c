// Package ptesting provides fluent assertions for functions returning a value and an error.
package ptesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Result[T any] struct {
	v   T
	err error
	t   testing.TB
}

// R wraps the results of a call, e.g. R(c.Auth(ctx)).
func R[T any](v T, err error) *Result[T] {
	return &Result[T]{v: v, err: err}
}

// NoError stops the test if there is an error.
func (r *Result[T]) NoError(t testing.TB) *Result[T] {
	t.Helper()
	require.NoError(t, r.err)
	r.t = t
	return r
}

// V returns the value.
func (r *Result[T]) V() T {
	return r.v
}

func (r *Result[T]) Err() error {
	return r.err
}

// Equal asserts the value, it must be called after [Result.NoError].
func (r *Result[T]) Equal(expected T) *Result[T] {
	r.t.Helper()
	assert.Equal(r.t, expected, r.v)
	return r
}

// Do calls f with the value, it must be called after [Result.NoError].
func (r *Result[T]) Do(f func(t *testing.T, it T)) *Result[T] {
	r.t.Helper()
	t, ok := r.t.(*testing.T)
	if !ok {
		r.t.Fatal("ptesting: Do needs a *testing.T")
	}
	f(t, r.v)
	return r
}

func (r *Result[T]) EqualError(t testing.TB, msg string) *Result[T] {
	t.Helper()
	require.EqualError(t, r.err, msg)
	r.t = t
	return r
}

func (r *Result[T]) ErrorAs(t testing.TB, target any) *Result[T] {
	t.Helper()
	require.ErrorAs(t, r.err, target)
	r.t = t
	return r
}

func (r *Result[T]) ErrorIs(t testing.TB, target error) *Result[T] {
	t.Helper()
	require.ErrorIs(t, r.err, target)
	r.t = t
	return r
}
