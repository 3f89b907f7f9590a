package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrencyGroupsDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "₦0"},
		{999, "₦999"},
		{75000000, "₦75,000,000"},
		{450000000, "₦450,000,000"},
		{-1500, "-₦1,500"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Currency(tt.in))
	}
}

func TestMoneyUsesConfiguredSymbol(t *testing.T) {
	t.Parallel()

	m := NewMoney("$", "not a locale")
	require.Equal(t, "$1,234", m.Currency(1234))
	require.Equal(t, "₦1,234", Money{symbol: "₦"}.Currency(1234))
}

func TestCompactViews(t *testing.T) {
	t.Parallel()

	require.Equal(t, "6K+", CompactViews(5710))
	require.Equal(t, "0K+", CompactViews(120))
	require.Equal(t, "1K+", CompactViews(1499))
}

func TestRating(t *testing.T) {
	t.Parallel()

	require.Equal(t, "★ 4.9", Rating(4.9))
}
