package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User is a photo owner or operator. Balance is in the smallest currency
// unit and is only ever adjusted through atomic increments in the store,
// never read-modify-write at the request layer.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Balance      int64     `json:"balance"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsSuperAdmin reports whether the user may process withdrawal requests.
func (u User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// WithdrawalStatus is the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest asks to pay out part of a user's accrued balance. The
// balance is decremented on approval, not at request time.
type WithdrawalRequest struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	Amount        int64            `json:"amount"`
	BankName      string           `json:"bankName"`
	AccountNumber string           `json:"accountNumber"`
	AccountName   string           `json:"accountName"`
	Status        WithdrawalStatus `json:"status"`
	AdminNotes    string           `json:"adminNotes,omitempty"`
	ProcessedBy   *int64           `json:"processedBy,omitempty"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
