package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{19, "Nineteen Rupees Only"},
		{40, "Forty Rupees Only"},
		{105, "One Hundred Five Rupees Only"},
		{236, "Two Hundred Thirty Six Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{12345, "Twelve Thousand Three Hundred Forty Five Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{2350000, "Twenty Three Lakh Fifty Thousand Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{123456789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Rupees Only"},
		{-75, "Minus Seventy Five Rupees Only"},
		// The fractional part is dropped; grand totals arrive pre-rounded.
		{236.75, "Two Hundred Thirty Six Rupees Only"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AmountInWords(tc.amount), "amount %v", tc.amount)
	}
}

func TestAmountInWordsThousandCrore(t *testing.T) {
	// 1234 crore exercises the recursive crore group.
	assert.Equal(t,
		"One Thousand Two Hundred Thirty Four Crore Rupees Only",
		AmountInWords(12340000000))
}
