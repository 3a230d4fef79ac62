package main

import (
	"context"
	"fmt"

	"kidsmath/internal/config"
	"kidsmath/internal/formula"
	"kidsmath/internal/logging"

	"github.com/spf13/cobra"
)

// Worksheet flags, shared by generate, export and quiz.
var (
	flagLower      int
	flagUpper      int
	flagNumbers    int
	flagTests      int
	flagOps        []string
	flagSeed       uint64
	flagForbidZero bool
	flagVerify     bool
	flagParallel   int
)

func addWorksheetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&flagLower, "lower", 1, "Smallest answer")
	f.IntVar(&flagUpper, "upper", 10, "Largest answer")
	f.IntVarP(&flagNumbers, "numbers", "n", 2, "Operands per formula (2-4)")
	f.IntVarP(&flagTests, "tests", "t", 100, "Number of formulas")
	f.StringSliceVar(&flagOps, "ops", []string{"+", "-"}, "Operators to use: + - * /")
	f.Uint64Var(&flagSeed, "seed", 0, "Random seed (0 picks one)")
	f.BoolVar(&flagForbidZero, "forbid-zero", false, "Never subtract zero")
	f.BoolVar(&flagVerify, "verify", false, "Re-evaluate every formula after generating it")
	f.IntVar(&flagParallel, "parallel", 0, "Generate with this many workers (0 = sequential)")
}

// worksheetConfig starts from the config file and applies the flags that were set.
func worksheetConfig(cmd *cobra.Command) config.WorksheetConfig {
	w := cfg.Worksheet
	f := cmd.Flags()
	if f.Changed("lower") {
		w.Lower = flagLower
	}
	if f.Changed("upper") {
		w.Upper = flagUpper
	}
	if f.Changed("numbers") {
		w.Numbers = flagNumbers
	}
	if f.Changed("tests") {
		w.Tests = flagTests
	}
	if f.Changed("ops") {
		var ops []string
		for _, o := range flagOps {
			ops = append(ops, config.SplitOperators(o)...)
		}
		w.Operators = ops
	}
	if f.Changed("seed") {
		w.Seed = flagSeed
	}
	if f.Changed("forbid-zero") {
		w.ForbidZeroOperand = flagForbidZero
	}
	if f.Changed("verify") {
		w.Verify = flagVerify
	}
	return w
}

// generateBatch validates the worksheet settings and generates a batch.
func generateBatch(ctx context.Context, w config.WorksheetConfig) (*formula.Batch, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	genLog := categoryLogger(logging.CategoryGenerate)

	opts, err := w.Options(genLog)
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(genLog, "generate")
	defer timer.Stop()

	var b *formula.Batch
	if flagParallel > 0 {
		b, err = formula.GenerateParallel(ctx, opts, flagParallel)
	} else {
		b, err = formula.Generate(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return b, nil
}
