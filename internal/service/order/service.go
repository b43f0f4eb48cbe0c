package order

import (
	"context"
	"errors"
	"strings"

	"racephoto-marketplace/internal/domain"
	orderrepo "racephoto-marketplace/internal/repository/order"
)

type Service struct {
	repo orderRepo
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*orderrepo.CreateResult, error)
	GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Email    string     `json:"email"`
	Whatsapp string     `json:"whatsapp"`
	Items    []CartItem `json:"items"`
}

type CartItem struct {
	PhotoID int64 `json:"photoId"`
	Variant int   `json:"variant"`
}

// CreateOutput carries the created order and any cart lines that were
// dropped because their photo no longer exists. Skipped lines are reported
// to the caller rather than silently changing the total.
type CreateOutput struct {
	Order   *domain.Order
	Skipped []int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("email required")
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	lines := make([]orderrepo.CartLine, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, orderrepo.CartLine{PhotoID: item.PhotoID, Variant: item.Variant})
	}

	res, err := s.repo.Create(ctx, orderrepo.CreateOrderInput{
		Email:    strings.TrimSpace(in.Email),
		Whatsapp: strings.TrimSpace(in.Whatsapp),
		Lines:    lines,
	})
	if err != nil {
		return nil, err
	}
	return &CreateOutput{Order: res.Order, Skipped: res.SkippedPhotoIDs}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByIDWithItems(ctx, id)
}
