// Package normalize folds free text into comparison keys
// Key pipeline
// 1 Cell cleanup drop invalid bytes, controls and BOMs
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove format chars (zero widths)
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
// Word additionally strips combining marks so "Miércoles" and "miercoles" meet
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains are stateful so they are pooled, never shared
var keyPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

var wordPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Key folds a column header or alias into its matching key
// accents are kept, case and spacing are not
func Key(s string) string {
	return fold(&keyPool, s)
}

// Word folds a token for vocabulary lookups such as month and weekday names
// accents are removed on top of Key
func Word(s string) string {
	return fold(&wordPool, s)
}

func fold(p *sync.Pool, s string) string {
	s = Cell(s)
	if s == "" {
		return ""
	}
	tr := p.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	if err != nil {
		out = s
	}
	return collapseSpaces(out)
}

// collapseSpaces converts every whitespace run to one ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
