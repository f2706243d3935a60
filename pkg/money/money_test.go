package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinor(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"50.00", 5000},
		{"50", 5000},
		{"0.01", 1},
		{"0", 0},
		{"1999.90", 199990},
	}
	for _, tc := range cases {
		got, err := ToMinor(decimal.RequireFromString(tc.in))
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestToMinor_RejectsSubCent(t *testing.T) {
	_, err := ToMinor(decimal.RequireFromString("10.001"))
	assert.ErrorIs(t, err, ErrPrecision)
}

func TestFromMinor(t *testing.T) {
	assert.Equal(t, "50", FromMinor(5000).String())
	assert.Equal(t, "10.5", FromMinor(1050).String())
	assert.Equal(t, "0.01", FromMinor(1).String())
}
