package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ordertrack/internal/core/normalize"
)

var (
	// year first, optional time or zone tail
	isoPattern = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})(?:[T\s].*)?$`)
	// YYYYMMDD
	compactPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	// day first with a four digit year, a dotted two digit year, or a time tail
	numericPattern = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4}|\d{2})(?:[T\s].*)?$`)
)

// parseFreeform reads the text forms exports commonly carry, preferring day-first
func parseFreeform(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := compactPattern.FindStringSubmatch(s); m != nil {
		return build(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := numericPattern.FindStringSubmatch(s); m != nil {
		a, b, y := atoi(m[1]), atoi(m[2]), expandYear(m[3])
		if d, ok := build(y, b, a); ok {
			return d, true
		}
		return build(y, a, b)
	}
	return parseWords(s)
}

// parseWords handles month names such as "15 de marzo de 2024", "Mar 15, 2024"
// and "Mon, 15 Mar 2024 10:00:00 GMT"
func parseWords(s string) (Date, bool) {
	fields := strings.FieldsFunc(normalize.Word(s), func(r rune) bool {
		switch r {
		case ' ', ',', '.', '-', '/':
			return true
		}
		return false
	})

	var nums []string
	month := time.Month(0)
scan:
	for _, f := range fields {
		switch {
		case strings.Contains(f, ":"):
			// time of day, whatever follows is zone noise
			break scan
		case isDigits(f):
			nums = append(nums, f)
		case monthNames[f] != 0:
			if month != 0 {
				return Date{}, false
			}
			month = monthNames[f]
		case fillerWords[f]:
		default:
			return Date{}, false
		}
	}
	if month == 0 || len(nums) != 2 {
		return Date{}, false
	}

	dayTok, yearTok := nums[0], nums[1]
	if len(dayTok) == 4 {
		dayTok, yearTok = yearTok, dayTok
	}
	if len(dayTok) > 2 || (len(yearTok) != 2 && len(yearTok) != 4) {
		return Date{}, false
	}
	return build(expandYear(yearTok), int(month), atoi(dayTok))
}

func build(y, m, d int) (Date, bool) {
	return New(y, time.Month(m), d)
}

// expandYear maps two digit years onto 20yy
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		y += 2000
	}
	return y
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
