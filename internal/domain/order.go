package domain

import "time"

// OrderStatus is the local settlement state of an order. Transitions only
// move forward: pending is the initial state, success and failed are terminal.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderSuccess OrderStatus = "success"
	OrderFailed  OrderStatus = "failed"
)

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderSuccess || s == OrderFailed
}

// ParseOrderStatus validates a status string coming from a client.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderPending, OrderSuccess, OrderFailed:
		return OrderStatus(raw), true
	}
	return "", false
}

// Order is one checkout attempt. TotalPrice is in the smallest currency unit
// and equals the sum of the item prices captured at creation time.
type Order struct {
	ID         int64       `json:"id"`
	Email      string      `json:"email"`
	Whatsapp   string      `json:"whatsapp"`
	TotalPrice int64       `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	SnapToken  *string     `json:"-"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem is one purchased photo variant. The Snap* fields are copied from
// the photo and its event when the order is created and never updated, so the
// record survives later catalog edits or deletions.
type OrderItem struct {
	ID           int64  `json:"id"`
	OrderID      int64  `json:"orderId"`
	PhotoID      int64  `json:"photoId"`
	Variant      int    `json:"variant"`
	Price        int64  `json:"price"`
	SnapPhotoURL string `json:"photoUrl"`
	SnapStartNo  string `json:"startNo"`
	SnapEvent    string `json:"eventName"`
	SnapClass    string `json:"photoClass,omitempty"`
	// RecapURL is resolved at read time from the recap matching the purchased
	// variant; empty means the base photo asset applies.
	RecapURL string `json:"recapUrl,omitempty"`
}
