package gateway

import "context"

// LineItem is one order item forwarded to the gateway's payment page.
type LineItem struct {
	ID    string
	Name  string
	Price int64
}

// TransactionRequest describes a payment the gateway should collect.
type TransactionRequest struct {
	OrderRef    string
	GrossAmount int64
	Email       string
	Phone       string
	Items       []LineItem
}

// Token is the gateway-issued handle the buyer pays with.
type Token struct {
	Token       string
	RedirectURL string
}

// Notification is a verified payment status report. Fields are taken from
// the gateway's authoritative status lookup, never from the raw webhook body.
type Notification struct {
	OrderRef          string
	TransactionStatus string
	FraudStatus       string
}

// Adapter abstracts the payment gateway. VerifyNotification must authenticate
// the payload before any field of the result is trusted.
type Adapter interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*Token, error)
	VerifyNotification(ctx context.Context, raw []byte) (*Notification, error)
}
