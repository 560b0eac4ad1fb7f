package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price with two decimals, e.g. "$19.50". Zero and
// missing prices render as "$0.00".
func FormatPrice(price decimal.Decimal) string {
	if price.IsZero() {
		return "$0.00"
	}
	return "$" + price.StringFixed(2)
}

const dateLayout = "Jan 2, 2006, 03:04 PM"

// FormatDate renders t in local time, or "N/A" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(dateLayout)
}
