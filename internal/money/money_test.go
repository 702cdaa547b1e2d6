package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"12.50", 1250},
		{"0", 0},
		{"0.05", 5},
		{"3", 300},
		{"99.9", 9990},
		{"1999.99", 199999},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.cents, got, tc.in)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "12.345", "1,50", "12.5.0"} {
		_, err := Parse(in)
		require.Error(t, err, in)
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "12.50", Format(1250))
	require.Equal(t, "0.00", Format(0))
	require.Equal(t, "0.05", Format(5))
	require.Equal(t, "1999.99", Format(199999))
	require.Equal(t, "-3.25", Format(-325))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1250, 199999} {
		got, err := Parse(Format(cents))
		require.NoError(t, err)
		require.Equal(t, cents, got)
	}
}

func TestApplyRateBPS(t *testing.T) {
	// 5% of 25.00 is 1.25.
	require.Equal(t, int64(125), ApplyRateBPS(2500, 500))
	require.Equal(t, int64(0), ApplyRateBPS(2500, 0))
	require.Equal(t, int64(0), ApplyRateBPS(0, 500))
	// 18% of 0.99 is 0.1782, rounds up to 0.18.
	require.Equal(t, int64(18), ApplyRateBPS(99, 1800))
	// 1 bps of 0.01 rounds to zero.
	require.Equal(t, int64(0), ApplyRateBPS(1, 1))
}
