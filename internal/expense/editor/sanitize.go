// Package editor holds the in-memory working state behind the exact and
// itemized split forms. An editor is seeded once when the form opens,
// mutated one field at a time as the user types, and only converted into a
// split strategy when the user confirms a breakdown that reconciles with
// the expense total.
package editor

import "strconv"

// SanitizeAmount coerces raw amount text into a valid monetary string:
// only digits and a single decimal point survive, with at most two
// fractional digits. Input is never rejected outright, only reduced to the
// nearest valid prefix, so typing stays fluid.
func SanitizeAmount(raw string) string {
	out := make([]byte, 0, len(raw))
	seenDot := false
	fracDigits := 0

	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case c == '.':
			if seenDot {
				continue
			}
			seenDot = true
			out = append(out, c)
		case c >= '0' && c <= '9':
			if seenDot {
				if fracDigits == 2 {
					continue
				}
				fracDigits++
			}
			out = append(out, c)
		}
	}
	return string(out)
}

// ParseAmount converts sanitized amount text to a number. Anything
// unparseable (including the empty string) is treated as zero, not an
// error; the user recovers by editing further.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// formatAmount renders a numeric amount back into editable text.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
