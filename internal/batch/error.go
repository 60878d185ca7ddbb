package batch

import "errors"

var (
	ErrNoActiveBatch    = errors.New("no active batch")
	ErrInvalidCountdown = errors.New("invalid countdown format")
)
