package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kidsmath/internal/expr"
	"kidsmath/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// evalCmd evaluates an arithmetic expression
var evalCmd = &cobra.Command{
	Use:   "eval EXPRESSION",
	Short: "Evaluate an arithmetic expression",
	Long: `Evaluates numbers, + - * / ^ ** and parentheses. Anything else, such as
names or function calls, is rejected.

Example:
  kidsmath eval "9 - (2 + 3)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	src := strings.Join(args, " ")
	v, err := expr.Evaluate(src)

	evalLog := categoryLogger(logging.CategoryEval)
	if err != nil {
		evalLog.Debug("evaluation failed", zap.String("expression", src), zap.Error(err))
		var se *expr.SyntaxError
		if errors.As(err, &se) {
			return fmt.Errorf("%s\n%s^\n%w", src, strings.Repeat(" ", se.Pos), err)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}
