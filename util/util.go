package util

import (
	"fmt"
	"os"

	"golang.org/x/exp/constraints"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	return nil
}

func Map[A, B any](xs []A, fn func(A) B) []B {
	res := make([]B, 0, len(xs))
	for _, x := range xs {
		res = append(res, fn(x))
	}
	return res
}

// Convert changes the element type of an integer slice. Values are converted
// with Go's usual wraparound rules.
func Convert[B, A constraints.Integer](nums []A) []B {
	return Map(nums, func(v A) B { return B(v) })
}

// InRange reports whether every value lies within [lo, hi], returning the
// index of the first one that does not.
func InRange[A constraints.Integer](nums []A, lo, hi A) (int, bool) {
	for i, v := range nums {
		if v < lo || v > hi {
			return i, false
		}
	}
	return -1, true
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}
