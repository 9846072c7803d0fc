// Package transliterate renders Georgian (Mkhedruli) text in Latin letters.
//
// The mapping is a fixed, simplified national romanization: aspirated and
// ejective pairs collapse to the same Latin letters (თ/ტ -> t, ფ/პ -> p,
// ქ/კ -> k, წ/ც -> ts, ჭ/ჩ -> ch). Runes outside the table pass through.
// After mapping, every space-separated word is capitalized.
package transliterate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var georgianToLatin = map[rune]string{
	'ა': "a", 'ბ': "b", 'გ': "g", 'დ': "d", 'ე': "e", 'ვ': "v", 'ზ': "z",
	'თ': "t", 'ი': "i", 'კ': "k", 'ლ': "l", 'მ': "m", 'ნ': "n", 'ო': "o",
	'პ': "p", 'ჟ': "zh", 'რ': "r", 'ს': "s", 'ტ': "t", 'უ': "u", 'ფ': "p",
	'ქ': "k", 'ღ': "gh", 'ყ': "q", 'შ': "sh", 'ჩ': "ch", 'ც': "ts",
	'ძ': "dz", 'წ': "ts", 'ჭ': "ch", 'ხ': "kh", 'ჯ': "j", 'ჰ': "h",
}

// Lookup returns the Latin rendering of a single rune.
func Lookup(r rune) (string, bool) {
	s, ok := georgianToLatin[r]
	return s, ok
}

// GeorgianToLatin transliterates s. It is pure: the result depends only on s.
func GeorgianToLatin(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFC.String(strings.TrimSpace(s)) {
		if latin, ok := Lookup(r); ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}

	return capitalizeWords(b.String())
}

// capitalizeWords splits on single spaces, drops empty words and upper-cases
// the first rune of each remaining word.
func capitalizeWords(s string) string {
	parts := strings.Split(s, " ")
	words := parts[:0]
	for _, w := range parts {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words = append(words, string(unicode.ToUpper(r))+w[size:])
	}
	return strings.Join(words, " ")
}
