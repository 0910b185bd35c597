package cstrconv_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/cstrconv"
)

func TestParseInt(t *testing.T) {
	testCases := map[string]struct {
		Text     string
		Base     int
		Value    int64
		Consumed int
	}{
		"AutoHex":              {"0x1F", 0, 31, 4},
		"AutoHexUpper":         {"0XfF", 0, 255, 4},
		"AutoBinary":           {"0b1012", 0, 5, 5},
		"AutoOctal":            {"0755", 0, 493, 4},
		"AutoOctalStopsAt8":    {"0789", 0, 7, 2},
		"AutoDecimal":          {"1234x", 0, 1234, 4},
		"LoneZero":             {"0", 0, 0, 1},
		"HexPrefixNoDigits":    {"0x", 0, 0, 1},
		"HexPrefixBadDigit":    {"0xg", 16, 0, 1},
		"BinaryPrefixBadDigit": {"0b2", 0, 0, 1},
		"WhitespaceAndSign":    {"  -42abc", 10, -42, 5},
		"AllWhitespace":        {" \t\n\v\f\r7", 10, 7, 7},
		"PlusSign":             {"+15", 10, 15, 3},
		"ExplicitHexPrefix":    {"0x10", 16, 16, 4},
		"ExplicitHexNoPrefix":  {"ff", 16, 255, 2},
		"HexPrefixInBase10":    {"0x10", 10, 0, 1},
		"Base36":               {"zZ", 36, 35*36 + 35, 2},
		"Base2StopsAt2":        {"1102", 2, 6, 3},
		"NoDigits":             {"abc", 10, 0, 0},
		"SignOnly":             {"  -", 10, 0, 0},
		"Empty":                {"", 0, 0, 0},
		"MaxInt":               {"9223372036854775807", 10, math.MaxInt64, 19},
		"MinInt":               {"-9223372036854775808", 10, math.MinInt64, 20},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			value, consumed, err := cstrconv.ParseInt([]byte(testCase.Text), testCase.Base)
			require.NoError(t, err)
			require.Equal(t, testCase.Value, value)
			require.Equal(t, testCase.Consumed, consumed)
		})
	}
}

func TestParseIntRange(t *testing.T) {
	value, consumed, err := cstrconv.ParseInt([]byte("9223372036854775808 tail"), 10)
	require.ErrorIs(t, err, cstrconv.ErrRange)
	require.Equal(t, int64(math.MaxInt64), value)
	require.Equal(t, 19, consumed)

	value, consumed, err = cstrconv.ParseInt([]byte("-99999999999999999999999"), 10)
	require.ErrorIs(t, err, cstrconv.ErrRange)
	require.Equal(t, int64(math.MinInt64), value)
	require.Equal(t, 24, consumed)
}

func TestParseUint(t *testing.T) {
	value, consumed, err := cstrconv.ParseUint([]byte("18446744073709551615"), 10)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), value)
	require.Equal(t, 20, consumed)

	value, consumed, err = cstrconv.ParseUint([]byte("-1"), 10)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), value)
	require.Equal(t, 2, consumed)

	value, _, err = cstrconv.ParseUint([]byte("0x1ffffffffffffffff"), 0)
	require.ErrorIs(t, err, cstrconv.ErrRange)
	require.Equal(t, uint64(math.MaxUint64), value)
}

func TestInvalidBase(t *testing.T) {
	for _, base := range []int{-1, 1, 37} {
		value, consumed, err := cstrconv.ParseInt([]byte("10"), base)
		require.ErrorIs(t, err, cstrconv.ErrInvalidBase)
		require.Zero(t, value)
		require.Zero(t, consumed)

		_, _, err = cstrconv.ParseUint([]byte("10"), base)
		require.ErrorIs(t, err, cstrconv.ErrInvalidBase)
	}
}
