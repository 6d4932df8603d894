// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package recommend

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseResult is the outcome of reading a number out of a free-text field.
// It is either Parsed(n) or Unparseable; criteria never see a sentinel number.
type ParseResult struct {
	n  int
	ok bool
}

// Parsed returns a successful ParseResult.
func Parsed(n int) ParseResult {
	return ParseResult{n: n, ok: true}
}

// Unparseable returns a failed ParseResult.
func Unparseable() ParseResult {
	return ParseResult{}
}

// Value returns the parsed number and whether parsing succeeded.
func (p ParseResult) Value() (int, bool) {
	return p.n, p.ok
}

// OK reports whether parsing succeeded.
func (p ParseResult) OK() bool {
	return p.ok
}

// AtMost reports whether the value parsed and is <= limit.
func (p ParseResult) AtMost(limit int) bool {
	return p.ok && p.n <= limit
}

// AtLeast reports whether the value parsed and is >= limit.
func (p ParseResult) AtLeast(limit int) bool {
	return p.ok && p.n >= limit
}

// String implements fmt.Stringer.
func (p ParseResult) String() string {
	if !p.ok {
		return "unparseable"
	}
	return strconv.Itoa(p.n)
}

// currencyPattern matches the first pound amount, e.g. "£9,250" or "£26000".
var currencyPattern = regexp.MustCompile(`£([\d,]+)`)

// ParseCurrency reads the first "£<digits>" token from text.
// Every thousands separator in the token is removed before conversion.
func ParseCurrency(text string) ParseResult {
	m := currencyPattern.FindStringSubmatch(text)
	if m == nil {
		return Unparseable()
	}
	return ParseLeadingInt(strings.ReplaceAll(m[1], ",", ""))
}

// ParseLeadingInt reads an optionally signed integer from the start of text,
// after leading whitespace. Trailing text is ignored, so "15%" reads as 15 and
// "12th" as 12. Text with no leading digits is Unparseable.
func ParseLeadingInt(text string) ParseResult {
	s := strings.TrimLeft(text, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return Unparseable()
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow. A value that large is not a meaningful fee or rank.
		return Unparseable()
	}
	return Parsed(n)
}

// ParseRatioNumerator reads N from an "N:M" ratio. Text without a colon is read
// whole, matching how the questionnaire data stores bare numbers.
func ParseRatioNumerator(text string) ParseResult {
	numerator, _, _ := strings.Cut(text, ":")
	return ParseLeadingInt(numerator)
}
