package spreadsheet

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Workbook reads one sheet of a local .xlsx file.
type Workbook struct {
	path  string
	sheet string
}

// NewWorkbook reads sheet from path. An empty sheet means the first one.
func NewWorkbook(path, sheet string) *Workbook {
	return &Workbook{path: path, sheet: sheet}
}

// Name implements importer.Source.
func (w *Workbook) Name() string {
	if w.sheet == "" {
		return "xlsx:" + filepath.Base(w.path)
	}
	return fmt.Sprintf("xlsx:%s/%s", filepath.Base(w.path), w.sheet)
}

// Fetch implements importer.Source.
func (w *Workbook) Fetch(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := w.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", w.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
