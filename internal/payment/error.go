package payment

import "errors"

var (
	ErrGatewayRejected = errors.New("payment gateway rejected transaction")
	ErrEmptyToken      = errors.New("payment gateway returned no token")
)
