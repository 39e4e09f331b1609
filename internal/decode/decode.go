// Package decode holds the element decoders that turn regex matches
// into typed domain values. Decoders never mutate their builder when a
// value fails to convert: they build the value fully, then assign.
package decode

import (
	"fmt"
	"strconv"
	"strings"

	"noakweather/internal/patterns"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

// atoi parses a decimal group, tolerating the O-for-0 OCR substitution.
func atoi(s string) (int, error) {
	v, err := strconv.Atoi(patterns.NormalizeDigits(s))
	if err != nil {
		return 0, fmt.Errorf("bad numeric group %q", s)
	}
	return v, nil
}

// mixedFraction parses distances written as whole numbers, fractions or
// mixed numbers: "2", "1/4", or whole="1" frac="1/2" for 1.5.
func mixedFraction(whole, frac string) (float64, error) {
	var v float64
	if whole != "" {
		w, err := atoi(whole)
		if err != nil {
			return 0, err
		}
		v = float64(w)
	}
	if frac == "" {
		return v, nil
	}
	num, den, ok := strings.Cut(frac, "/")
	if !ok {
		n, err := atoi(frac)
		if err != nil {
			return 0, err
		}
		return v + float64(n), nil
	}
	n, err := atoi(num)
	if err != nil {
		return 0, err
	}
	d, err := atoi(den)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", frac)
	}
	return v + float64(n)/float64(d), nil
}
