package config

import (
	"errors"
	"fmt"
	"strings"

	"kidsmath/internal/formula"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// WorksheetConfig holds the problem generation settings.
type WorksheetConfig struct {
	Lower             int      `yaml:"lower" json:"lower" validate:"gte=0"`
	Upper             int      `yaml:"upper" json:"upper" validate:"gtefield=Lower,max=10000"`
	Numbers           int      `yaml:"numbers" json:"numbers" validate:"min=2,max=4"`
	Tests             int      `yaml:"tests" json:"tests" validate:"min=1,max=10000"`
	Operators         []string `yaml:"operators" json:"operators" validate:"min=1,dive,oneof=+ - * / × ÷"`
	ForbidZeroOperand bool     `yaml:"forbid_zero_operand" json:"forbid_zero_operand"`
	Verify            bool     `yaml:"verify" json:"verify"`
	Seed              uint64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultWorksheetConfig returns the default worksheet: two operands between
// 1 and 10, addition and subtraction, 100 problems.
func DefaultWorksheetConfig() WorksheetConfig {
	return WorksheetConfig{
		Lower:     1,
		Upper:     10,
		Numbers:   2,
		Tests:     100,
		Operators: []string{"+", "-"},
	}
}

// MaxUpper is the largest upper limit a worksheet may use. Multiplication and
// division enumerate divisors of the target, so the limit bounds that work.
const MaxUpper = 10000

var validate = validator.New()

// Validation failures keyed by struct field, phrased for the person filling in the form.
var fieldMessages = map[string]string{
	"Lower":     "min number must not be negative",
	"Upper":     "wrong setting, min number is larger than max number",
	"Numbers":   "numbers per formula must be between 2 and 4",
	"Tests":     "number of tests must be between 1 and 10000",
	"Operators": "at least one operator must be checked",
}

// Validate checks the worksheet settings and joins every failure into one error.
func (w WorksheetConfig) Validate() error {
	err := validate.Struct(w)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	seen := make(map[string]bool)
	var msgs []string
	for _, fe := range verrs {
		field := fe.StructField()
		// Operators[2] reports under the slice field too
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg, ok := fieldMessages[field]
		switch {
		case field == "Operators" && fe.Tag() == "oneof":
			msg, ok = fmt.Sprintf("unknown operator %q", fe.Value()), true
		case field == "Upper" && fe.Tag() == "max":
			msg, ok = fmt.Sprintf("max number must not be larger than %d", MaxUpper), true
		}
		if !ok {
			msg = fe.Error()
		}
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Options validates the settings and converts them into generator options.
func (w WorksheetConfig) Options(logger *zap.Logger) (formula.Options, error) {
	if err := w.Validate(); err != nil {
		return formula.Options{}, err
	}
	ops, err := formula.ParseOperators(w.Operators)
	if err != nil {
		return formula.Options{}, err
	}
	return formula.Options{
		Operators: ops,
		Lower:     w.Lower,
		Upper:     w.Upper,
		Numbers:   w.Numbers,
		Tests:     w.Tests,
		Policy:    formula.Policy{ForbidZeroOperand: w.ForbidZeroOperand},
		Verify:    w.Verify,
		Seed:      w.Seed,
		Logger:    logger,
	}, nil
}
