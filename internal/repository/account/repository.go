package account

import (
	"context"

	"racephoto-marketplace/internal/domain"
)

type CreateWithdrawalInput struct {
	UserID        int64
	Amount        int64
	BankName      string
	AccountNumber string
	AccountName   string
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	CreateWithdrawal(ctx context.Context, in CreateWithdrawalInput) (*domain.WithdrawalRequest, error)
	ListWithdrawalsByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
}
