// README: Common money value object used across modules.
package types

import "strconv"

type Money struct {
	Amount   float64
	Currency string
}

// String renders the amount without trailing zeros, e.g. "15000 JPY".
func (m Money) String() string {
	s := strconv.FormatFloat(m.Amount, 'f', -1, 64)
	if m.Currency == "" {
		return s
	}
	return s + " " + m.Currency
}
