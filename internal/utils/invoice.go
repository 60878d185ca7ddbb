package utils

import (
	"fmt"
	"time"
)

// PaymentReference builds the gateway order reference. The timestamp keeps
// it unique across payment retries of the same order.
func PaymentReference(orderID uint, now time.Time) string {
	return fmt.Sprintf("ORDER-%d-%d", orderID, now.Unix())
}

// FormatRupiah renders an integer amount as "Rp96.000".
func FormatRupiah(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b []byte
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b = append(b, '.')
		}
		b = append(b, digits[i])
	}
	return sign + "Rp" + string(b)
}
