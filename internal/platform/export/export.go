// Package export renders domain records to Excel workbooks and PDF
// tables for download endpoints. Callers describe the output with
// ordered column specs; values are looked up by key in each row map.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// DateLayout is the format used for dates in exported cells and in
// generated file names.
const DateLayout = "2006-01-02"

// Observer counts generated export files. *telemetry.Metrics
// satisfies it.
type Observer interface {
	ObserveExport(module, format string)
}

// Column maps a row key to its display label.
type Column struct {
	Key   string
	Label string
}

// Sheet is one worksheet of an Excel export.
type Sheet struct {
	Name    string
	Columns []Column
	Rows    []map[string]any
}

// Filename returns a date-stamped file name, e.g. "incidents_2026-08-28.xlsx".
func Filename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().Format(DateLayout), ext)
}

// Excel builds a workbook with one worksheet per sheet spec and returns
// the encoded bytes. At least one sheet is required.
func Excel(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("export: at least one sheet is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}

	for i, sheet := range sheets {
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			// excelize always creates "Sheet1"; reuse it for the first sheet.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("export: rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("export: new sheet %q: %w", name, err)
			}
		}

		for col, spec := range sheet.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, fmt.Errorf("export: cell name: %w", err)
			}
			if err := f.SetCellValue(name, cell, spec.Label); err != nil {
				return nil, fmt.Errorf("export: header cell: %w", err)
			}
			if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
				return nil, fmt.Errorf("export: header style: %w", err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			for col, spec := range sheet.Columns {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return nil, fmt.Errorf("export: cell name: %w", err)
				}
				if err := f.SetCellValue(name, cell, CellString(row[spec.Key])); err != nil {
					return nil, fmt.Errorf("export: data cell: %w", err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders rows as a landscape A4 table under the given title. The
// header row is repeated on every page.
func PDF(title string, columns []Column, rows []map[string]any) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("export: at least one column is required")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(columns))

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range columns {
			pdf.CellFormat(colWidth, 8, col.Label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Exporté le "+time.Now().Format(DateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	drawHeader()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range rows {
		if pdf.GetY()+7 > pageHeight-15 {
			pdf.AddPage()
			drawHeader()
		}
		for _, col := range columns {
			pdf.CellFormat(colWidth, 7, truncate(CellString(row[col.Key]), 60), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// CellString converts a cell value to its exported text form. Dates use
// DateLayout, nil becomes empty, everything else falls back to fmt.
func CellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "oui"
		}
		return "non"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
