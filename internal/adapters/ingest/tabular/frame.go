// Package tabular reads CSV and XLSX order exports into a Frame of raw cells
package tabular

import (
	"strconv"

	"ordertrack/internal/core/dates"
)

// OriginColumn names the source file a row came from when several are merged
const OriginColumn = "__ORIGEN"

// Frame is a header plus rows of raw cells, every row as wide as Columns
// Cells are dates.Raw so typed spreadsheet dates survive until resolution
type Frame struct {
	Columns []string
	Rows    [][]dates.Raw
}

// Len is the row count
func (f Frame) Len() int { return len(f.Rows) }

// Index returns the position of column name, -1 when absent
func (f Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the frame carries column name
func (f Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Column copies one column out, nil when absent
func (f Frame) Column(name string) []dates.Raw {
	i := f.Index(name)
	if i < 0 {
		return nil
	}
	out := make([]dates.Raw, len(f.Rows))
	for r, row := range f.Rows {
		out[r] = row[i]
	}
	return out
}

// Text is the cell at row r, column c as shown in a sheet
func (f Frame) Text(r, c int) string {
	if c < 0 || r < 0 || r >= len(f.Rows) || c >= len(f.Rows[r]) {
		return ""
	}
	return f.Rows[r][c].String()
}

// Concat stacks frames with an outer join on column names
// columns keep first-seen order; cells a frame lacks are Missing
func Concat(frames ...Frame) Frame {
	var out Frame
	pos := map[string]int{}
	for _, f := range frames {
		for _, c := range f.Columns {
			if _, ok := pos[c]; !ok {
				pos[c] = len(out.Columns)
				out.Columns = append(out.Columns, c)
			}
		}
	}
	for _, f := range frames {
		idx := make([]int, len(f.Columns))
		for i, c := range f.Columns {
			idx[i] = pos[c]
		}
		for _, row := range f.Rows {
			wide := make([]dates.Raw, len(out.Columns))
			for i, v := range row {
				wide[idx[i]] = v
			}
			out.Rows = append(out.Rows, wide)
		}
	}
	return out
}

// withOrigin appends the origin column holding name on every row
func withOrigin(f Frame, name string) Frame {
	out := Frame{Columns: append(append([]string(nil), f.Columns...), OriginColumn)}
	out.Rows = make([][]dates.Raw, len(f.Rows))
	for i, row := range f.Rows {
		out.Rows[i] = append(append(make([]dates.Raw, 0, len(row)+1), row...), dates.Text(name))
	}
	return out
}

// uniqueHeaders suffixes repeated names with .1, .2 in order of appearance
// and names blank headers by position
func uniqueHeaders(in []string) []string {
	out := make([]string, len(in))
	taken := make(map[string]bool, len(in))
	for i, h := range in {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for n := 1; taken[name]; n++ {
			name = h + "." + strconv.Itoa(n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
