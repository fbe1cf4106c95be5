// Package mathutil holds the small integer helpers (gcd/lcm with overflow
// checking) shared by the analyzer's critical-time-point computation and
// the simulator's hyperperiod computation (spec.md §9: "lcm over many task
// periods may be large... compute it over integers with overflow
// checking").
package mathutil

import "math"

// GCD returns the greatest common divisor of a and b (both treated as
// non-negative).
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b, or math.MaxInt64 if the
// true result would overflow a signed 64-bit integer. a and b must be
// positive.
func LCM(a, b int64) int64 {
	g := GCD(a, b)
	if g == 0 {
		return 0
	}
	quotient := a / g
	if quotient != 0 && b > math.MaxInt64/quotient {
		return math.MaxInt64
	}
	return quotient * b
}

// LCMAll returns the least common multiple of all values, or
// math.MaxInt64 on overflow. Returns 0 for an empty input.
func LCMAll(values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	result := values[0]
	for _, v := range values[1:] {
		result = LCM(result, v)
		if result == math.MaxInt64 {
			return math.MaxInt64
		}
	}
	return result
}
