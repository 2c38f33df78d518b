package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnLettersRoundTrip(t *testing.T) {
	cases := []int{1, 2, 25, 26, 27, 52, 701, 702, 703}
	for _, n := range cases {
		letters := ColumnLetters(n)
		got, ok := ColumnIndex(letters)
		require.True(t, ok, "ColumnIndex(%q)", letters)
		require.Equal(t, n, got)
	}
}

func TestColumnLettersKnownValues(t *testing.T) {
	require.Equal(t, "A", ColumnLetters(1))
	require.Equal(t, "Z", ColumnLetters(26))
	require.Equal(t, "AA", ColumnLetters(27))
	require.Equal(t, "AZ", ColumnLetters(52))
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("$B$12")
	require.NoError(t, err)
	require.Equal(t, Address{Col: 2, Row: 12}, addr)

	addr, err = ParseAddress("a1")
	require.NoError(t, err)
	require.Equal(t, Address{Col: 1, Row: 1}, addr)

	_, err = ParseAddress("1A")
	require.Error(t, err)

	_, err = ParseAddress("A0")
	require.Error(t, err)
}

func TestNormalizeAddressDefaultSheet(t *testing.T) {
	sheet, canonical, err := NormalizeAddress("b2", "Sheet1")
	require.NoError(t, err)
	require.Equal(t, "Sheet1", sheet)
	require.Equal(t, "B2", canonical)

	sheet, canonical, err = NormalizeAddress("Other!c3", "Sheet1")
	require.NoError(t, err)
	require.Equal(t, "Other", sheet)
	require.Equal(t, "C3", canonical)
}

func TestExpandRangeReordersEndpoints(t *testing.T) {
	addrs := ExpandRange(Address{Col: 2, Row: 2}, Address{Col: 1, Row: 1})
	require.Equal(t, []Address{
		{Col: 1, Row: 1}, {Col: 2, Row: 1},
		{Col: 1, Row: 2}, {Col: 2, Row: 2},
	}, addrs)
}

func TestParseRangeSheetQualifierAppliesToBoth(t *testing.T) {
	sheet, rect, err := ParseRange("Data!A1:B2", "Sheet1")
	require.NoError(t, err)
	require.Equal(t, "Data", sheet)
	require.Equal(t, Range{MinCol: 1, MinRow: 1, MaxCol: 2, MaxRow: 2}, rect)
}
