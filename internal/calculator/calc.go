// Package calculator provides basic arithmetic operations.
package calculator

// Number is the set of native numeric types the arithmetic helpers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Add returns the sum of a and b.
func Add[T Number](a, b T) T {
	return a + b
}

// Subtract returns a minus b.
func Subtract[T Number](a, b T) T {
	return a - b
}

// Multiply returns a times b.
func Multiply[T Number](a, b T) T {
	return a * b
}
