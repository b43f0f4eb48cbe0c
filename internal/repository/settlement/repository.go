package settlement

import (
	"context"

	"racephoto-marketplace/internal/domain"
)

// Credit is one owner's share of a settled order.
type Credit struct {
	UserID int64
	Amount int64
}

// Result reports the outcome of a reconciliation attempt. Applied is false
// when the order was already terminal or the target equals the current
// status; replays are a safe no-op, not an error.
type Result struct {
	Applied bool
	Status  domain.OrderStatus
	Credits []Credit
}

type Repository interface {
	Reconcile(ctx context.Context, orderID int64, target domain.OrderStatus) (*Result, error)
}
