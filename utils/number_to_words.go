package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// spell writes num in words using Indian grouping (thousand, lakh, crore).
// Zero spells as the empty string.
func spell(num uint64) string {
	switch {
	case num == 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		remainder := num % 100
		if remainder == 0 {
			return ones[num/100] + " Hundred"
		}
		return ones[num/100] + " Hundred " + spell(remainder)
	case num < 100000:
		remainder := num % 1000
		if remainder == 0 {
			return spell(num/1000) + " Thousand"
		}
		return spell(num/1000) + " Thousand " + spell(remainder)
	case num < 10000000:
		remainder := num % 100000
		if remainder == 0 {
			return spell(num/100000) + " Lakh"
		}
		return spell(num/100000) + " Lakh " + spell(remainder)
	default:
		remainder := num % 10000000
		if remainder == 0 {
			return spell(num/10000000) + " Crore"
		}
		return spell(num/10000000) + " Crore " + spell(remainder)
	}
}

// NumberToWords spells a whole rupee amount, e.g. "One Lakh Rupees Only".
func NumberToWords(num uint64) string {
	if num == 0 {
		return "Zero Rupees"
	}
	return spell(num) + " Rupees Only"
}

var crore = decimal.NewFromInt(10000000)

// spellDecimal spells a non-negative whole amount of any size. Amounts past
// uint64 are split on crore, so the crore word repeats.
func spellDecimal(d decimal.Decimal) string {
	if n := d.BigInt(); n.IsUint64() {
		return spell(n.Uint64())
	}
	high := d.Div(crore).Floor()
	low := d.Sub(high.Mul(crore)).BigInt().Uint64()
	if low == 0 {
		return spellDecimal(high) + " Crore"
	}
	return spellDecimal(high) + " Crore " + spell(low)
}

// AmountInWords spells amount rounded to whole rupees. Negative amounts
// spell as zero.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.Sign() <= 0 {
		return NumberToWords(0)
	}
	return spellDecimal(rounded) + " Rupees Only"
}
