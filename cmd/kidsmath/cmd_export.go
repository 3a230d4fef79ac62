package main

import (
	"fmt"

	"kidsmath/internal/export"
	"kidsmath/internal/logging"

	"github.com/spf13/cobra"
)

// exportCmd writes a worksheet workbook
var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Generate a worksheet and save it as an xlsx workbook",
	Long: `Writes a "Test" sheet for printing and an "Answers" sheet with the
solutions. FILE defaults to export.file from the config (~/kidsmath.xlsx).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	addWorksheetFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path := cfg.Export.File
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return export.ErrMissingFileName
	}

	w := worksheetConfig(cmd)
	b, err := generateBatch(cmd.Context(), w)
	if err != nil {
		return err
	}

	writer := export.NewWriter(categoryLogger(logging.CategoryExport))
	if err := writer.WriteWorkbook(path, b, w.Numbers); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s generated!\n", path)
	return nil
}
