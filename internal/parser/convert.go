// internal/parser/convert.go
package parser

import (
	"strconv"

	"github.com/tamzrod/amp-bridge/internal/record"
)

// Coercions applied to extracted text.
// Numeric parsers take the longest valid decimal prefix and yield 0 when
// there is none; trailing garbage is ignored.

func toFloat(v string) float32 {
	s := floatPrefix(v)
	if s == "" {
		return 0
	}
	// On range errors ParseFloat still returns the nearest value (±Inf or 0).
	f, _ := strconv.ParseFloat(s, 32)
	return float32(f)
}

func toInt(v string) int {
	s := intPrefix(v)
	if s == "" {
		return 0
	}
	// On range errors ParseInt returns the clamped bound.
	n, _ := strconv.ParseInt(s, 10, 32)
	return int(n)
}

func toBool(v string) bool { return v == "true" }

func toText(v string, capacity int) string { return record.Truncate(v, capacity) }

// ---- prefix scanners ----

func skipSpace(s string) int {
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			i++
			continue
		}
		break
	}
	return i
}

func digits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func intPrefix(v string) string {
	start := skipSpace(v)
	i := start
	if i < len(v) && (v[i] == '+' || v[i] == '-') {
		i++
	}
	end := digits(v, i)
	if end == i {
		return ""
	}
	return v[start:end]
}

func floatPrefix(v string) string {
	start := skipSpace(v)
	i := start
	if i < len(v) && (v[i] == '+' || v[i] == '-') {
		i++
	}

	mant := i
	i = digits(v, i)
	intDigits := i - mant
	fracDigits := 0
	if i < len(v) && v[i] == '.' {
		j := digits(v, i+1)
		fracDigits = j - (i + 1)
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	// exponent only counts when followed by at least one digit
	if i < len(v) && (v[i] == 'e' || v[i] == 'E') {
		j := i + 1
		if j < len(v) && (v[j] == '+' || v[j] == '-') {
			j++
		}
		if k := digits(v, j); k > j {
			i = k
		}
	}

	return v[start:i]
}
