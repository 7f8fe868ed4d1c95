package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToMinorUnits converts a non-negative decimal amount string ("4.00") into
// integer minor units (400). The conversion is pure integer arithmetic, so
// it is exact for the 2-decimal convention of the accepted currency.
//
// The wire schema admits up to 12 fractional digits; anything beyond the
// second digit is rounded half-up to the nearest cent ("0.005" -> 1,
// "0.0049" -> 0). This is the only place a decimal amount string becomes a
// number.
func ToMinorUnits(amount string) (int64, error) {
	whole, frac, hasFrac := strings.Cut(amount, ".")
	if whole == "" || !isDigits(whole) {
		return 0, fmt.Errorf("amount %q is not a non-negative decimal", amount)
	}
	if hasFrac && (frac == "" || len(frac) > 12 || !isDigits(frac)) {
		return 0, fmt.Errorf("amount %q has an invalid fraction", amount)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q overflows: %w", amount, err)
	}
	if units > (math.MaxInt64-99)/100 {
		return 0, fmt.Errorf("amount %q overflows minor units", amount)
	}

	cents := units * 100

	switch {
	case len(frac) >= 2:
		cents += int64(frac[0]-'0')*10 + int64(frac[1]-'0')
		// Half-up on the remaining digits: the third digit decides.
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	case len(frac) == 1:
		cents += int64(frac[0]-'0') * 10
	}

	return cents, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
