// Package naming derives canonical model names from archive titles.
package naming

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	boxDrawing = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x2500, Hi: 0x257f, Stride: 1}},
	}

	disallowed = regexp.MustCompile(`[^\w\s.-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// asciiFold decomposes the input and drops everything outside ASCII,
// so accented letters keep their base form while decorative runes
// (box drawing included) disappear.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(boxDrawing)),
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// FormatTitle turns an archive title into a safe directory name.
// Whitespace runs collapse to single underscores and anything outside
// word characters, dots, and hyphens is dropped.
func FormatTitle(title string) string {
	folded, _, err := transform.String(asciiFold, title)
	if err != nil {
		folded = title
	}

	folded = disallowed.ReplaceAllString(folded, "")
	return whitespace.ReplaceAllString(folded, "_")
}
