package payment

import "context"

// Gateway opens hosted payment transactions for orders.
type Gateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error)
}
