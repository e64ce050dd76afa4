// Package format renders monetary amounts for display.
package format

import "github.com/Rhymond/go-money"

// Currency returns the amount rendered as Japanese yen with thousands
// separators (e.g. "¥1,234,567"). Fractions of a yen are dropped.
func Currency(amount float64) string {
	return money.NewFromFloat(amount, money.JPY).Display()
}
