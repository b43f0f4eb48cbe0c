package order

import (
	"context"

	"racephoto-marketplace/internal/domain"
)

// CartLine is one requested photo variant in a checkout.
type CartLine struct {
	PhotoID int64
	Variant int
}

type CreateOrderInput struct {
	Email    string
	Whatsapp string
	Lines    []CartLine
}

// CreateResult carries the persisted order plus the photo IDs of cart lines
// that referenced photos no longer in the catalog.
type CreateResult struct {
	Order           *domain.Order
	SkippedPhotoIDs []int64
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*CreateResult, error)
	GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error)
	SaveSnapToken(ctx context.Context, id int64, token string) error
}
