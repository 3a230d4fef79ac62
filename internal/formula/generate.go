package formula

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"kidsmath/internal/expr"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rand"
)

// ErrVerification marks a rendered formula that did not evaluate to its target.
var ErrVerification = errors.New("formula does not evaluate to its target")

// Options configures one generation run. Callers validate the values first
// (see config.WorksheetConfig.Validate); the generator trusts them.
type Options struct {
	Operators []Operator
	Lower     int
	Upper     int
	Numbers   int // operands per formula
	Tests     int // formulas per batch
	Policy    Policy

	// Verify re-evaluates every rendered formula with package expr and fails
	// the whole batch on the first mismatch.
	Verify bool

	// Seed makes a run reproducible. Zero picks a fresh seed.
	Seed uint64

	Logger *zap.Logger
}

func (o Options) limits() Limits { return Limits{Lower: o.Lower, Upper: o.Upper} }

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Batch is the output of one generation run. Formulas[i] evaluates to Targets[i].
type Batch struct {
	Formulas []string
	Targets  []int
	Chains   []Chain
	Seed     uint64
}

// Len returns the number of problems in the batch.
func (b *Batch) Len() int { return len(b.Formulas) }

// VerificationError reports the first formula of a batch that failed verification.
type VerificationError struct {
	Index   int
	Formula string
	Target  int
	Got     float64
	Err     error // evaluation error, if the formula did not evaluate at all
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("test %d: %q: %v", e.Index, e.Formula, e.Err)
	}
	return fmt.Sprintf("test %d: %q = %g, want %d", e.Index, e.Formula, e.Got, e.Target)
}

func (e *VerificationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrVerification, e.Err}
	}
	return []error{ErrVerification}
}

// SplitCount is the number of formulas laid out per worksheet row.
func SplitCount(numbers int) int {
	if numbers <= 0 {
		return 1
	}
	return max(1, 7/numbers)
}

// testRand returns the random stream owned by test i of a run seeded with seed.
// Streams are independent, so a batch is identical whether its tests are
// generated sequentially or spread over workers.
func testRand(seed uint64, i int) *rand.Rand {
	return rand.New(seed ^ (uint64(i)+1)*0x9e3779b97f4a7c15)
}

func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.New().Uint64()
	}
	return seed
}

// Generate produces opts.Tests problems, one after another.
func Generate(opts Options) (*Batch, error) {
	seed := resolveSeed(opts.Seed)
	log := opts.logger()
	log.Debug("generating batch",
		zap.Strings("operators", Symbols(opts.Operators)),
		zap.Int("lower", opts.Lower),
		zap.Int("upper", opts.Upper),
		zap.Int("numbers", opts.Numbers),
		zap.Int("tests", opts.Tests),
		zap.Uint64("seed", seed))

	b := newBatch(opts.Tests, seed)
	for i := 0; i < opts.Tests; i++ {
		if err := generateOne(b, i, opts, seed, log); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// GenerateParallel spreads the tests of a run over workers goroutines. Each
// test owns its random stream, so the result equals Generate with the same
// seed. workers <= 0 uses GOMAXPROCS.
func GenerateParallel(ctx context.Context, opts Options, workers int) (*Batch, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seed := resolveSeed(opts.Seed)
	log := opts.logger()
	b := newBatch(opts.Tests, seed)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Tests; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return generateOne(b, i, opts, seed, log)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("parallel batch generated", zap.Int("tests", opts.Tests), zap.Int("workers", workers))
	return b, nil
}

func newBatch(n int, seed uint64) *Batch {
	if n < 0 {
		n = 0
	}
	return &Batch{
		Formulas: make([]string, n),
		Targets:  make([]int, n),
		Chains:   make([]Chain, n),
		Seed:     seed,
	}
}

// generateOne fills slot i of b. Slots are disjoint, so concurrent calls with
// different i are safe.
func generateOne(b *Batch, i int, opts Options, seed uint64, log *zap.Logger) error {
	c, err := BuildChain(testRand(seed, i), opts)
	if err != nil {
		return fmt.Errorf("test %d: %w", i, err)
	}
	f := Render(c)
	if opts.Verify {
		if err := verify(i, f, c.Target); err != nil {
			log.Warn("verification failed", zap.Int("index", i), zap.String("formula", f), zap.Error(err))
			return err
		}
		log.Debug("verified", zap.Int("index", i), zap.String("formula", f), zap.Int("target", c.Target))
	}
	b.Formulas[i] = f
	b.Targets[i] = c.Target
	b.Chains[i] = c
	return nil
}

func verify(i int, f string, target int) error {
	got, err := expr.Evaluate(f)
	if err != nil {
		return &VerificationError{Index: i, Formula: f, Target: target, Err: err}
	}
	if !expr.EqualsInt(got, target) {
		return &VerificationError{Index: i, Formula: f, Target: target, Got: got}
	}
	return nil
}
