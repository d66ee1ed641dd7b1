// Package display holds the presentation lookups shared by the API and the
// terminal client: money formatting and status badges.
package display

import "github.com/shopspring/decimal"

// Money renders an amount with two decimals, e.g. "$240.50" or "-$12.00".
func Money(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// Balance renders an account balance with its sign as a suffix: negative
// balances are owed, positive ones are credit.
func Balance(balance decimal.Decimal) string {
	s := "$" + balance.Abs().StringFixed(2)
	switch {
	case balance.IsNegative():
		return s + " (owed)"
	case balance.IsPositive():
		return s + " (credit)"
	}
	return s
}
