package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/normalize"
	perr "ordertrack/internal/platform/errors"
)

// delimiters in preference order, comma wins ties
var delimiters = []rune{',', ';', '\t', '|'}

const sniffLines = 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a delimited export; the delimiter is sniffed from the first lines
func ReadCSV(r io.Reader) (Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Frame{}, perr.Wrap(err, perr.ErrorCodeIO, "csv: read")
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return Frame{}, perr.Unreadablef("csv: empty input")
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = Sniff(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		return Frame{}, perr.Wrap(err, perr.ErrorCodeUnreadable, "csv: header")
	}
	cols := make([]string, len(head))
	for i, h := range head {
		cols[i] = normalize.Cell(h)
	}
	f := Frame{Columns: uniqueHeaders(cols)}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Frame{}, perr.Wrap(err, perr.ErrorCodeUnreadable, "csv: row")
		}
		row := make([]dates.Raw, len(f.Columns))
		blank := true
		for i, v := range rec {
			if i >= len(row) {
				break
			}
			if v = normalize.Cell(v); v != "" {
				row[i] = dates.Text(v)
				blank = false
			}
		}
		if !blank {
			f.Rows = append(f.Rows, row)
		}
	}
	return f, nil
}

// Sniff picks the delimiter whose field count is the most consistent over
// the first lines, ignoring counts of one; comma when nothing qualifies
func Sniff(data []byte) rune {
	lines := headLines(data, sniffLines)
	best, bestHits, bestWidth := ',', 0, 0
	for _, d := range delimiters {
		width, hits := modeWidth(lines, d)
		if width <= 1 {
			continue
		}
		if hits > bestHits || (hits == bestHits && width > bestWidth) {
			best, bestHits, bestWidth = d, hits, width
		}
	}
	return best
}

func headLines(data []byte, n int) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() && len(out) < n {
		if line := strings.TrimRight(sc.Text(), "\r"); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// modeWidth parses each line on its own with d and returns the most common
// field count and how many lines had it
func modeWidth(lines []string, d rune) (width, hits int) {
	counts := map[int]int{}
	for _, line := range lines {
		cr := csv.NewReader(strings.NewReader(line))
		cr.Comma = d
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		rec, err := cr.Read()
		if err != nil {
			continue
		}
		counts[len(rec)]++
	}
	for w, h := range counts {
		if h > hits || (h == hits && w > width) {
			width, hits = w, h
		}
	}
	return width, hits
}
