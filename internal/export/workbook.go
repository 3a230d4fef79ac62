// Package export writes worksheets as xlsx workbooks: one sheet with the
// problems for printing and one with the answers.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"kidsmath/internal/formula"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	TestSheet    = "Test"
	AnswersSheet = "Answers"
)

// ErrMissingFileName is returned when no output path is given.
var ErrMissingFileName = errors.New("missing file name")

// ColumnWidth returns the cell width used for formulas of the given size.
func ColumnWidth(numbers int) float64 {
	if numbers < 2 {
		numbers = 2
	}
	return float64(numbers*6 + 6)
}

// Writer writes batches to xlsx files.
type Writer struct {
	logger *zap.Logger
}

// NewWriter returns a Writer. A nil logger discards output.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// WriteWorkbook writes b to path. numbers is the operand count the batch was
// generated with; it picks how many formulas go on one row.
func (w *Writer) WriteWorkbook(path string, b *formula.Batch, numbers int) error {
	if path == "" {
		return ErrMissingFileName
	}
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TestSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Family: "Calibri"},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	split := formula.SplitCount(numbers)
	for _, sheet := range []string{TestSheet, AnswersSheet} {
		last, _ := excelize.ColumnNumberToName(split)
		if err := f.SetColWidth(sheet, "A", last, ColumnWidth(numbers)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, text := range b.Formulas {
		cell, err := excelize.CoordinatesToCellName(i%split+1, i/split+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(TestSheet, cell, text+" = "); err != nil {
			return err
		}
		if err := f.SetCellStr(AnswersSheet, cell, text+" = "+strconv.Itoa(b.Targets[i])); err != nil {
			return err
		}
	}

	rows := (b.Len() + split - 1) / split
	if rows > 0 {
		last, _ := excelize.CoordinatesToCellName(split, rows)
		for _, sheet := range []string{TestSheet, AnswersSheet} {
			if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
				return fmt.Errorf("set style: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		w.logger.Error("workbook write failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("save %s: %w", path, err)
	}
	w.logger.Info("workbook written",
		zap.String("path", path),
		zap.Int("formulas", b.Len()),
		zap.Int("per_row", split))
	return nil
}
