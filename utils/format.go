package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders n with exactly two decimal places.
func FormatCurrency(n decimal.Decimal) string {
	return n.StringFixed(2)
}

// FormatPercent renders a GST rate as "18%" or "2.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}

// FormatDate turns a stored YYYY-MM-DD date into DD-MM-YYYY. Anything else
// is returned as given.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02-01-2006")
}
