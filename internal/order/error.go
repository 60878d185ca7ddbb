package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrCorruptItems  = errors.New("stored order items are not valid JSON")
)
