// Package sequence holds small combinators over iter.Seq.
package sequence

import "iter"

// From yields the elements of a slice.
func From[T any](data []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range data {
			if !yield(v) {
				return
			}
		}
	}
}

// Filter yields the elements for which keep returns true.
func Filter[T any](seq iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// FlatMap yields every element of fn(v) for each v.
func FlatMap[T, R any](seq iter.Seq[T], fn func(T) iter.Seq[R]) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			for r := range fn(v) {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// OfType yields the elements that are of type R.
func OfType[R, T any](seq iter.Seq[T]) iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range seq {
			if r, ok := any(v).(R); ok && !yield(r) {
				return
			}
		}
	}
}

// First returns the first element, if any.
func First[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// Collect exhausts seq into a slice.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}
