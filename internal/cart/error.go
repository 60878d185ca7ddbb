package cart

import "errors"

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrFailedMaterialize = errors.New("failed to price cart")
)
