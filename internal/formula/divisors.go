package formula

import "sort"

// Divisors returns the distinct positive divisors of n in ascending order,
// including 1 and n itself.
//
// Trial division runs from 2 to floor(sqrt(n)) and records each divisor
// together with its complement. For n == 0 the loop yields nothing and the
// result is just [1]; callers must not treat that as a complete divisor set.
// Negative n returns nil.
func Divisors(n int) []int {
	if n < 0 {
		return nil
	}
	divs := []int{1}
	for i := 2; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		divs = append(divs, i)
		if c := n / i; c != i {
			divs = append(divs, c)
		}
	}
	if n > 1 {
		divs = append(divs, n)
	}
	sort.Ints(divs)
	return divs
}
