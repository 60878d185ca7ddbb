package payment

import "time"

type TransactionRequest struct {
	OrderReference string
	GrossAmount    int
	CustomerName   string
	CustomerPhone  string
}

type TransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Attempt records one transaction opened for an order. An order collects
// one attempt per checkout or retry.
type Attempt struct {
	ID          uint
	OrderID     uint
	Reference   string
	Token       string
	RedirectURL string
	Amount      int
	CreatedAt   time.Time
}

type snapRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CreditCard         snapCreditCard         `json:"credit_card"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
}

type snapTransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int    `json:"gross_amount"`
}

type snapCreditCard struct {
	Secure bool `json:"secure"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name"`
	Phone     string `json:"phone"`
}

type snapErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}
