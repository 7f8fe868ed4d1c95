package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits_Exact(t *testing.T) {
	cases := map[string]int64{
		"0":       0,
		"0.00":    0,
		"4.00":    400,
		"4":       400,
		"4.5":     450,
		"5.11":    511,
		"4.89":    489,
		"0.01":    1,
		"19.99":   1999,
		"1000000": 100000000,
	}
	for in, want := range cases {
		got, err := ToMinorUnits(in)
		require.NoError(t, err, "amount %q", in)
		assert.Equal(t, want, got, "amount %q", in)
	}
}

func TestToMinorUnits_RoundsHalfUpBeyondTwoDecimals(t *testing.T) {
	cases := map[string]int64{
		"0.005":          1,
		"0.0049":         0, // third digit below 5 truncates
		"0.004999999999": 0,
		"1.239":          124,
		"1.2349":         123,
		"2.999":          300,
	}
	for in, want := range cases {
		got, err := ToMinorUnits(in)
		require.NoError(t, err, "amount %q", in)
		assert.Equal(t, want, got, "amount %q", in)
	}
}

func TestToMinorUnits_NoFloatDrift(t *testing.T) {
	// 19.90 * 100 in float64 lands on 1989.9999...; integer math must not.
	got, err := ToMinorUnits("19.90")
	require.NoError(t, err)
	assert.Equal(t, int64(1990), got)

	got, err = ToMinorUnits("0.29")
	require.NoError(t, err)
	assert.Equal(t, int64(29), got)
}

func TestToMinorUnits_Invalid(t *testing.T) {
	invalid := []string{
		"",
		".",
		".5",
		"4.",
		"-4.00",
		"4.00.1",
		"abc",
		"4,00",
		"1.1234567890123", // 13 fractional digits
		" 4.00",
	}
	for _, in := range invalid {
		_, err := ToMinorUnits(in)
		assert.Error(t, err, "amount %q should be rejected", in)
	}
}

func TestToMinorUnits_Overflow(t *testing.T) {
	_, err := ToMinorUnits("92233720368547759")
	assert.Error(t, err)

	_, err = ToMinorUnits("99999999999999999999")
	assert.Error(t, err)
}
