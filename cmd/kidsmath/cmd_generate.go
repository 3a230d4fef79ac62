package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"kidsmath/internal/expr"
	"kidsmath/internal/formula"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var flagMarkdown bool

// generateCmd prints a worksheet
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a worksheet and print it",
	Long: `Generates formulas whose answers lie between --lower and --upper and
prints one "formula = answer" line each.

With --verify every formula is re-evaluated and a check table is printed.

Example:
  kidsmath generate --upper 20 --numbers 3 --ops +,-,* --tests 20`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addWorksheetFlags(generateCmd)
	generateCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Render the worksheet as a markdown table")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	w := worksheetConfig(cmd)
	b, err := generateBatch(cmd.Context(), w)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case w.Verify:
		writeCheckTable(out, b)
	case flagMarkdown:
		md := worksheetMarkdown(b, w.Numbers)
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("markdown renderer: %w", err)
		}
		rendered, err := renderer.Render(md)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprint(out, rendered)
	default:
		for i, f := range b.Formulas {
			fmt.Fprintf(out, "%s = %d\n", f, b.Targets[i])
		}
	}
	return nil
}

// writeCheckTable prints each formula with whether it evaluates to its answer.
func writeCheckTable(out io.Writer, b *formula.Batch) {
	for i, f := range b.Formulas {
		status := "incorrect"
		if v, err := expr.Evaluate(f); err == nil && expr.EqualsInt(v, b.Targets[i]) {
			status = "correct"
		}
		fmt.Fprintf(out, "%-50s%-10s\n", f+" = "+strconv.Itoa(b.Targets[i]), status)
	}
}

// worksheetMarkdown lays the batch out SplitCount formulas per row.
func worksheetMarkdown(b *formula.Batch, numbers int) string {
	split := formula.SplitCount(numbers)
	var sb strings.Builder
	sb.WriteString("# Worksheet\n\n")

	sb.WriteString("|")
	for c := 0; c < split; c++ {
		sb.WriteString(" # | Problem |")
	}
	sb.WriteString("\n|")
	for c := 0; c < split; c++ {
		sb.WriteString("---|---|")
	}
	sb.WriteString("\n")

	for row := 0; row*split < b.Len(); row++ {
		sb.WriteString("|")
		for c := 0; c < split; c++ {
			i := row*split + c
			if i < b.Len() {
				fmt.Fprintf(&sb, " %d | `%s =` |", i+1, b.Formulas[i])
			} else {
				sb.WriteString("  |  |")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
