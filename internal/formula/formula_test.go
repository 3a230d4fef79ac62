package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed list of draws, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func script(vals ...int) *seqRand { return &seqRand{vals: vals} }

// =============================================================================
// OPERATORS
// =============================================================================

func TestParseOperator(t *testing.T) {
	for sym, want := range map[string]Operator{
		"+": Plus, "-": Minus, "*": Times, "/": Divide, "×": Times, "÷": Divide, " + ": Plus,
	} {
		got, err := ParseOperator(sym)
		require.NoError(t, err, sym)
		assert.Equal(t, want, got, sym)
	}

	_, err := ParseOperator("%")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestParseOperators_Dedupes(t *testing.T) {
	ops, err := ParseOperators([]string{"*", "+", "×", "+"})
	require.NoError(t, err)
	assert.Equal(t, []Operator{Times, Plus}, ops)
	assert.Equal(t, []string{"*", "+"}, Symbols(ops))
}

func TestOperatorGlyph(t *testing.T) {
	assert.Equal(t, "+", Plus.Glyph())
	assert.Equal(t, "×", Times.Glyph())
	assert.Equal(t, "÷", Divide.Glyph())
	assert.Equal(t, "?", Operator(9).Symbol())
}

// =============================================================================
// DIVISORS
// =============================================================================

func TestDivisors(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{12, []int{1, 2, 3, 4, 6, 12}},
		{1, []int{1}},
		{7, []int{1, 7}},
		{16, []int{1, 2, 4, 8, 16}},
		{36, []int{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{0, []int{1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Divisors(tt.n)); diff != "" {
			t.Errorf("Divisors(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
	assert.Nil(t, Divisors(-4))
}

func TestDivisors_MatchBruteForce(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("divisors equal {d : n % d == 0}", prop.ForAll(
		func(n int) bool {
			var want []int
			for d := 1; d <= n; d++ {
				if n%d == 0 {
					want = append(want, d)
				}
			}
			return cmp.Equal(want, Divisors(n))
		},
		gen.IntRange(1, 5000),
	))

	properties.TestingRun(t)
}

// =============================================================================
// DECOMPOSERS
// =============================================================================

var lim10 = Limits{Lower: 1, Upper: 10}

func TestDecomposePlus(t *testing.T) {
	// pick 1+6 == remaining, stepped down to 6
	a, rest, err := DecomposePlus(script(6), 7, lim10, Policy{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 1}, [2]int{a, rest})

	a, rest, _ = DecomposePlus(script(2), 7, lim10, Policy{})
	assert.Equal(t, [2]int{3, 4}, [2]int{a, rest})

	a, rest, _ = DecomposePlus(script(), 0, lim10, Policy{})
	assert.Equal(t, [2]int{0, 0}, [2]int{a, rest})

	a, rest, _ = DecomposePlus(script(), 1, lim10, Policy{})
	assert.Equal(t, [2]int{0, 1}, [2]int{a, rest})
}

func TestDecomposeMinus(t *testing.T) {
	a, rest, err := DecomposeMinus(script(0), 4, lim10, Policy{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 0}, [2]int{a, rest}, "zero subtrahend allowed by default")

	a, rest, _ = DecomposeMinus(script(0), 4, lim10, Policy{ForbidZeroOperand: true})
	assert.Equal(t, [2]int{5, 1}, [2]int{a, rest})

	a, rest, _ = DecomposeMinus(script(3), 4, lim10, Policy{ForbidZeroOperand: true})
	assert.Equal(t, [2]int{7, 3}, [2]int{a, rest})

	// at the upper limit the bump goes one past it
	a, rest, _ = DecomposeMinus(script(0), 10, lim10, Policy{ForbidZeroOperand: true})
	assert.Equal(t, [2]int{11, 1}, [2]int{a, rest})
}

func TestDecomposeTimes(t *testing.T) {
	a, rest, err := DecomposeTimes(script(2), 12, lim10, Policy{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 4}, [2]int{a, rest})

	a, rest, _ = DecomposeTimes(script(5), 12, lim10, Policy{})
	assert.Equal(t, [2]int{12, 1}, [2]int{a, rest})

	a, rest, _ = DecomposeTimes(script(), 0, lim10, Policy{})
	assert.Equal(t, [2]int{1, 0}, [2]int{a, rest})
}

func TestDecomposeDivide(t *testing.T) {
	a, rest, err := DecomposeDivide(script(1), 3, lim10, Policy{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{6, 2}, [2]int{a, rest})

	// remaining above upper/2 leaves a single multiplier
	a, rest, _ = DecomposeDivide(script(4), 7, lim10, Policy{})
	assert.Equal(t, [2]int{7, 1}, [2]int{a, rest})

	_, _, err = DecomposeDivide(script(), 0, lim10, Policy{})
	assert.ErrorIs(t, err, ErrDivideAtZero)
}

func TestDecompose_UnknownOperator(t *testing.T) {
	_, _, err := Decompose(Operator(7), script(), 3, lim10, Policy{})
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

// =============================================================================
// CHAIN + RENDER
// =============================================================================

func TestBuildChain_Shape(t *testing.T) {
	for numbers := 2; numbers <= 4; numbers++ {
		c, err := BuildChain(script(3, 1, 4, 1, 5, 9, 2, 6), Options{
			Operators: AllOperators, Lower: 1, Upper: 20, Numbers: numbers,
		})
		require.NoError(t, err)
		assert.Len(t, c.Operands, numbers)
		assert.Len(t, c.Operators, numbers-1)

		v, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, c.Target, v)
	}
}

func TestBuildChain_DivideAtZeroBecomesTimes(t *testing.T) {
	c, err := BuildChain(script(0), Options{
		Operators: []Operator{Divide}, Lower: 0, Upper: 0, Numbers: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []Operator{Times, Times}, c.Operators)
	assert.Equal(t, []int{1, 1, 0}, c.Operands)
	assert.Equal(t, "1 * 1 * 0", Render(c))
}

func TestRender(t *testing.T) {
	tests := []struct {
		operands []int
		ops      []Operator
		want     string
	}{
		{[]int{3, 4}, []Operator{Plus}, "3 + 4"},
		{[]int{12, 4}, []Operator{Divide}, "12 / 4"},
		{[]int{9, 2, 3}, []Operator{Minus, Plus}, "9 - (2 + 3)"},
		{[]int{9, 2, 3}, []Operator{Plus, Minus}, "9 + 2 - 3"},
		{[]int{2, 3, 4}, []Operator{Plus, Times}, "2 + 3 * 4"},
		{[]int{2, 3, 4}, []Operator{Times, Plus}, "2 * (3 + 4)"},
		{[]int{2, 3, 4}, []Operator{Times, Times}, "2 * 3 * 4"},
		{[]int{2, 6, 3}, []Operator{Times, Divide}, "2 * 6 / 3"},
		{[]int{24, 2, 3}, []Operator{Divide, Times}, "24 / (2 * 3)"},
		{[]int{9, 4, 2}, []Operator{Minus, Times}, "9 - (4 * 2)"},
		{[]int{5, 4, 3, 2}, []Operator{Minus, Minus, Minus}, "5 - (4 - (3 - 2))"},
		{[]int{2, 3, 4, 5}, []Operator{Times, Plus, Times}, "2 * (3 + 4 * 5)"},
		{[]int{7}, nil, "7"},
		{nil, nil, ""},
	}
	for _, tt := range tests {
		got := Render(Chain{Operands: tt.operands, Operators: tt.ops})
		assert.Equal(t, tt.want, got)
	}
}

func TestChainValue(t *testing.T) {
	v, err := Chain{Operands: []int{24, 2, 3}, Operators: []Operator{Divide, Times}}.Value()
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = Chain{Operands: []int{1}, Operators: []Operator{Plus}}.Value()
	assert.Error(t, err)

	_, err = Chain{Operands: []int{1, 0}, Operators: []Operator{Divide}}.Value()
	assert.Error(t, err)
}

func TestSplitCount(t *testing.T) {
	assert.Equal(t, 3, SplitCount(2))
	assert.Equal(t, 2, SplitCount(3))
	assert.Equal(t, 1, SplitCount(4))
	assert.Equal(t, 1, SplitCount(9))
	assert.Equal(t, 1, SplitCount(0))
}
