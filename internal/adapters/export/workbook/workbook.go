// Package workbook writes report tables and pivot blocks into an XLSX file
package workbook

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	perr "ordertrack/internal/platform/errors"
)

// ContentType is the MIME type of the encoded workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a sheet with a header row; cells are string, int or nil
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Block is one titled table on a pivot sheet
type Block struct {
	Title string
	Table Table
}

// Pivot is a sheet of stacked blocks
type Pivot struct {
	Name   string
	Blocks []Block
}

// Book lists the sheets in write order, the pivot sheet goes last
type Book struct {
	Tables []Table
	Pivot  *Pivot
}

const (
	widthPad        = 4
	pivotLabelWidth = 48
	pivotCellWidth  = 13
	pivotBlockGap   = 4
	pivotLastCol    = "K"
)

// Encode renders b as XLSX into w
func Encode(w io.Writer, b Book) error {
	if len(b.Tables) == 0 && b.Pivot == nil {
		return perr.InvalidArgf("workbook: nothing to write")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook: header style: %w", err)
	}

	first := true
	claim := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	for _, t := range b.Tables {
		if err := claim(t.Name); err != nil {
			return fmt.Errorf("workbook: sheet %q: %w", t.Name, err)
		}
		if err := writeTable(f, t, bold); err != nil {
			return fmt.Errorf("workbook: sheet %q: %w", t.Name, err)
		}
	}
	if b.Pivot != nil {
		if err := claim(b.Pivot.Name); err != nil {
			return fmt.Errorf("workbook: sheet %q: %w", b.Pivot.Name, err)
		}
		if err := writePivot(f, *b.Pivot, bold); err != nil {
			return fmt.Errorf("workbook: sheet %q: %w", b.Pivot.Name, err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "workbook: write")
	}
	return nil
}

// Bytes is Encode into memory
func Bytes(b Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeTable streams the header and rows; widths must be set before any row
func writeTable(f *excelize.File, t Table, headerStyle int) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return err
	}
	for i, w := range Widths(t) {
		if err := sw.SetColWidth(i+1, i+1, float64(w)); err != nil {
			return err
		}
	}
	head := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		head[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", head); err != nil {
		return err
	}
	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// Widths is the longest rendered cell per column, header included, plus padding
func Widths(t Table) []int {
	out := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = utf8.RuneCountInString(c)
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if i >= len(out) {
				break
			}
			out[i] = max(out[i], utf8.RuneCountInString(text(v)))
		}
	}
	for i := range out {
		out[i] += widthPad
	}
	return out
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

// writePivot puts each block title on its own row and the table under it
// the next title sits len(body)+gap rows below, leaving two blank rows
func writePivot(f *excelize.File, p Pivot, headerStyle int) error {
	if err := f.SetColWidth(p.Name, "A", "A", pivotLabelWidth); err != nil {
		return err
	}
	if err := f.SetColWidth(p.Name, "B", pivotLastCol, pivotCellWidth); err != nil {
		return err
	}
	row := 1
	for _, b := range p.Blocks {
		if err := f.SetCellValue(p.Name, cellName(1, row), b.Title); err != nil {
			return err
		}
		head := make([]any, len(b.Table.Columns))
		for i, c := range b.Table.Columns {
			head[i] = c
		}
		if err := f.SetSheetRow(p.Name, cellName(1, row+1), &head); err != nil {
			return err
		}
		if len(head) > 0 {
			if err := f.SetCellStyle(p.Name, cellName(1, row+1), cellName(len(head), row+1), headerStyle); err != nil {
				return err
			}
		}
		for i, r := range b.Table.Rows {
			vals := r
			if err := f.SetSheetRow(p.Name, cellName(1, row+2+i), &vals); err != nil {
				return err
			}
		}
		row += len(b.Table.Rows) + pivotBlockGap
	}
	return nil
}

func cellName(col, row int) string {
	s, _ := excelize.CoordinatesToCellName(col, row)
	return s
}
