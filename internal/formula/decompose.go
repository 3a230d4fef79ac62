package formula

import (
	"errors"
	"fmt"
)

// ErrDivideAtZero is returned when the division decomposer is asked to split
// zero. BuildChain substitutes multiplication before that can happen.
var ErrDivideAtZero = errors.New("division decomposition undefined at zero")

// Rand is the random source consumed by the decomposers. *rand.Rand from
// pgregory.net/rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
}

// Limits is the configured value range of a worksheet.
type Limits struct {
	Lower int
	Upper int
}

// Policy holds the decomposition switches that differ between worksheets.
type Policy struct {
	// ForbidZeroOperand keeps the subtraction decomposer from choosing a
	// minuend equal to the remaining value, which would make the subtrahend 0.
	ForbidZeroOperand bool
}

// Decomposer splits remaining into an operand a and the value rest such that
// "a OP rest" evaluates to remaining.
type Decomposer func(rng Rand, remaining int, lim Limits, pol Policy) (a, rest int, err error)

var decomposers = [...]Decomposer{
	Plus:   DecomposePlus,
	Minus:  DecomposeMinus,
	Times:  DecomposeTimes,
	Divide: DecomposeDivide,
}

// Decompose dispatches to the decomposer registered for op.
func Decompose(op Operator, rng Rand, remaining int, lim Limits, pol Policy) (int, int, error) {
	if !op.valid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}
	return decomposers[op](rng, remaining, lim, pol)
}

// between returns a uniform value in [lo, hi]. An empty range collapses to lo.
func between(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// DecomposePlus picks a in [1, remaining], stepping down by one when the pick
// equals remaining so the split is never "remaining + 0". Zero splits as 0 + 0.
func DecomposePlus(rng Rand, remaining int, _ Limits, _ Policy) (int, int, error) {
	if remaining <= 0 {
		return 0, remaining, nil
	}
	a := between(rng, 1, remaining)
	if a == remaining {
		a--
	}
	return a, remaining - a, nil
}

// DecomposeMinus picks a minuend a in [remaining, upper]. With
// ForbidZeroOperand a pick equal to remaining is bumped by one, which may
// exceed the upper limit.
func DecomposeMinus(rng Rand, remaining int, lim Limits, pol Policy) (int, int, error) {
	a := between(rng, remaining, lim.Upper)
	if pol.ForbidZeroOperand && a == remaining {
		a++
	}
	return a, a - remaining, nil
}

// DecomposeTimes picks a random divisor of remaining as the first factor.
func DecomposeTimes(rng Rand, remaining int, _ Limits, _ Policy) (int, int, error) {
	divs := Divisors(remaining)
	if len(divs) == 0 {
		return 0, 0, fmt.Errorf("no divisors for %d", remaining)
	}
	a := divs[rng.Intn(len(divs))]
	return a, remaining / a, nil
}

// DecomposeDivide picks a multiplier r in [1, floor(upper/remaining)] and
// returns the dividend remaining*r with r as divisor.
func DecomposeDivide(rng Rand, remaining int, lim Limits, _ Policy) (int, int, error) {
	if remaining <= 0 {
		return 0, 0, ErrDivideAtZero
	}
	r := between(rng, 1, lim.Upper/remaining)
	return remaining * r, r, nil
}
