// Package bdr implements the Bounded-Delay Resource abstraction of
// spec.md §4.2: the value type (rate α, delay Δ), its supply bound
// function, and the half-half / compositional-test combinators.
package bdr

// BDR is an immutable bounded-delay resource interface (α, Δ) with
// 0 <= α <= 1 and Δ >= 0.
type BDR struct {
	Alpha float64
	Delta float64
}

// New constructs a BDR interface.
func New(alpha, delta float64) BDR {
	return BDR{Alpha: alpha, Delta: delta}
}

// SBF is the supply bound function: 0 below Δ, then linear with slope α.
// Monotone non-decreasing in t.
func (b BDR) SBF(t float64) float64 {
	if t < b.Delta {
		return 0
	}
	return b.Alpha * (t - b.Delta)
}

// HalfHalf is the PRM→BDR conversion (Theorem 3): given a periodic supply
// (Q, P), derive the conservative BDR interface α' = Q/P, Δ' = 2(P-Q).
func HalfHalf(budget, period float64) BDR {
	return BDR{
		Alpha: budget / period,
		Delta: 2 * (period - budget),
	}
}

// InverseHalfHalf is the BDR→PRM conversion: recover a (budget, period)
// pair whose half-half transform approximates b. Special cases: α>=1
// returns full CPU (1,1); α==0 returns (0,0).
func (b BDR) InverseHalfHalf() (budget, period float64) {
	if b.Alpha >= 1 {
		return 1, 1
	}
	if b.Alpha == 0 {
		return 0, 0
	}
	period = b.Delta / (2 * (1 - b.Alpha))
	budget = b.Alpha * period
	return budget, period
}

// CanSchedule implements the compositional test (Theorem 1): parent can
// host children iff sum(child.Alpha) <= parent.Alpha AND every child's
// Delta exceeds parent's Delta — except when parent.Delta == 0 (a root or
// full-CPU parent), where the delay condition is trivially satisfied and
// only the rate sum is checked.
func (parent BDR) CanSchedule(children []BDR) bool {
	sumAlpha := 0.0
	for _, c := range children {
		sumAlpha += c.Alpha
	}
	if sumAlpha > parent.Alpha {
		return false
	}
	if parent.Delta == 0 {
		return true
	}
	for _, c := range children {
		if c.Delta <= parent.Delta {
			return false
		}
	}
	return true
}
