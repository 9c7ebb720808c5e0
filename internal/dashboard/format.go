package dashboard

import (
	"strconv"
	"strings"
)

// FormatNumber formats v with the given decimals and comma thousands
// separators, e.g. 33021.7 with 0 decimals is "33,022".
func FormatNumber(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	remainder := len(intPart) % 3
	if remainder > 0 {
		b.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatSigned is FormatNumber with an explicit leading sign.
func FormatSigned(v float64, decimals int) string {
	s := FormatNumber(v, decimals)
	if !strings.HasPrefix(s, "-") && strings.Trim(s, "0.,") != "" {
		return "+" + s
	}
	return s
}
