package domain

import "fmt"

// Amounts are carried as int64 minor units (cents). Ledger payloads record
// them as fixed two-decimal strings so the hashed representation matches the
// user-visible price and never depends on numeric JSON encoding.

// FormatAmount renders minor units as a "123.45" string.
func FormatAmount(minorUnits int64) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return fmt.Sprintf("%s%d.%02d", sign, minorUnits/100, minorUnits%100)
}
