package tabular

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/normalize"
	perr "ordertrack/internal/platform/errors"
)

// PreferredSheet is read when a workbook has it, a previous report for instance
const PreferredSheet = "TODAS LAS ORDENES"

// ReadXLSX decodes the preferred sheet, else the first one
// date formatted numeric cells become timestamps, helper columns are dropped
// In a previous report the FECHA columns hold Display text, those cells come
// back as timestamps so they are never re-read as ambiguous
func ReadXLSX(r io.Reader) (Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Frame{}, perr.Wrap(err, perr.ErrorCodeUnreadable, "xlsx: open")
	}
	defer func() { _ = wb.Close() }()

	sheet := pickSheet(wb.GetSheetList())
	if sheet == "" {
		return Frame{}, perr.Unreadablef("xlsx: workbook has no sheets")
	}
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Frame{}, perr.Wrapf(err, perr.ErrorCodeUnreadable, "xlsx: sheet %q", sheet)
	}
	if len(rows) == 0 {
		return Frame{}, perr.Unreadablef("xlsx: sheet %q is empty", sheet)
	}

	head := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		head[i] = normalize.Cell(h)
	}
	head = uniqueHeaders(head)
	var keep []int
	var rendered []bool
	f := Frame{}
	ownReport := sheet == PreferredSheet
	for i, h := range head {
		if isHelperColumn(h) {
			continue
		}
		keep = append(keep, i)
		f.Columns = append(f.Columns, h)
		rendered = append(rendered, ownReport && isDateColumn(h))
	}

	dateStyle := dateStyleCache(wb, sheet)
	for ri, rec := range rows[1:] {
		row := make([]dates.Raw, len(keep))
		blank := true
		for j, ci := range keep {
			if ci >= len(rec) {
				continue
			}
			v := normalize.Cell(rec[ci])
			if v == "" {
				continue
			}
			blank = false
			row[j] = dates.Text(v)
			if rendered[j] {
				if d, ok := dates.ParseDisplay(v); ok {
					row[j] = dates.Timestamp(d.Time())
					continue
				}
			}
			serial, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			// header is row 1, data starts at row 2
			axis, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil || !dateStyle(axis) {
				continue
			}
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				row[j] = dates.Timestamp(t)
			}
		}
		if !blank {
			f.Rows = append(f.Rows, row)
		}
	}
	return f, nil
}

func pickSheet(names []string) string {
	for _, n := range names {
		if n == PreferredSheet {
			return n
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func isDateColumn(h string) bool {
	return strings.Contains(strings.ToUpper(h), "FECHA")
}

// isHelperColumn matches the sort and display companions older reports carried
func isHelperColumn(h string) bool {
	return strings.HasPrefix(h, "_FECHA_") || strings.HasSuffix(h, "_DISPLAY")
}

// dateStyleCache answers whether a cell's number format is a date, memoized per style id
func dateStyleCache(wb *excelize.File, sheet string) func(axis string) bool {
	memo := map[int]bool{}
	return func(axis string) bool {
		id, err := wb.GetCellStyle(sheet, axis)
		if err != nil {
			return false
		}
		if v, ok := memo[id]; ok {
			return v
		}
		v := false
		if st, err := wb.GetStyle(id); err == nil && st != nil {
			v = isDateFormat(st.NumFmt, st.CustomNumFmt)
		}
		memo[id] = v
		return v
	}
}

// isDateFormat covers the built-in date ids and custom codes with day or year tokens
func isDateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return hasDateToken(*custom)
	}
	return (id >= 14 && id <= 17) || id == 22 || (id >= 27 && id <= 36) || (id >= 50 && id <= 58)
}

// hasDateToken ignores quoted literals, escapes and bracketed sections
func hasDateToken(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		case c == 'd', c == 'D', c == 'y', c == 'Y':
			return true
		}
	}
	return false
}
