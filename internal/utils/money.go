package utils

import (
	"fmt"
	"math"
)

// DepositRate is the share of the total price due when the guest picks the
// deposit payment option.
const DepositRate = 0.30

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// DepositAmount returns the deposit due for a total price, rounded to cents.
func DepositAmount(total float64) float64 {
	return math.Round(total*DepositRate*100) / 100
}
