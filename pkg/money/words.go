package money

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords renders the integer part of amount using Indian numbering
// (thousand, lakh, crore groups) with a fixed currency suffix, e.g.
// 236 -> "Two Hundred Thirty Six Rupees Only".
func AmountInWords(amount float64) string {
	n := int64(math.Trunc(amount))
	if n == 0 {
		return "Zero Rupees Only"
	}

	prefix := ""
	if n < 0 {
		prefix = "Minus "
		n = -n
	}

	return prefix + numberWords(n) + " Rupees Only"
}

func numberWords(n int64) string {
	var parts []string

	appendGroup := func(value int64, label string) {
		if value == 0 {
			return
		}
		words := belowThousand(value)
		if label != "" {
			words += " " + label
		}
		parts = append(parts, words)
	}

	appendGroup(n/1e7, "Crore")
	appendGroup((n/1e5)%100, "Lakh")
	appendGroup((n/1e3)%100, "Thousand")
	appendGroup(n%1e3, "")

	return strings.Join(parts, " ")
}

// belowThousand handles 1..999. The crore group can exceed 999 only past
// a thousand crore, where the segments above recurse naturally because a
// crore group of e.g. 1234 reads "One Thousand Two Hundred Thirty Four".
func belowThousand(n int64) string {
	if n >= 1000 {
		return numberWords(n)
	}

	var parts []string
	if n >= 100 {
		parts = append(parts, onesWords[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tensWords[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, onesWords[n])
	}
	return strings.Join(parts, " ")
}
