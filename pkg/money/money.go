// Package money formats and parses Paraguayan guaraní amounts ("Gs. 150.000").
package money

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const pygPrefix = "Gs. "

var printer = message.NewPrinter(language.Spanish)

// FormatPYG renders amount rounded to whole guaraníes with "." as group separator
func FormatPYG(amount float64) string {
	n := int64(math.Round(amount))
	return pygPrefix + printer.Sprintf("%d", n)
}

// ParsePYG extracts the integer amount from a formatted string.
// Anything that does not contain digits yields 0.
func ParsePYG(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return -n
	}
	return n
}
