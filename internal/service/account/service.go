package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"racephoto-marketplace/internal/domain"
	accountrepo "racephoto-marketplace/internal/repository/account"
)

type Service struct {
	repo      accountRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

type accountRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateWithdrawal(ctx context.Context, in accountrepo.CreateWithdrawalInput) (*domain.WithdrawalRequest, error)
	ListWithdrawalsByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error)
}

func New(repo accountrepo.Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login checks credentials and issues a signed bearer token. Lookup misses
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token back to its user. Expiry is enforced
// by the parser via the exp claim.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.GetByID(ctx, int64(sub))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

type BalanceOutput struct {
	Balance     int64                      `json:"balance"`
	Withdrawals []domain.WithdrawalRequest `json:"withdrawals"`
}

func (s *Service) Balance(ctx context.Context, userID int64) (*BalanceOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.repo.ListWithdrawalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if withdrawals == nil {
		withdrawals = []domain.WithdrawalRequest{}
	}
	return &BalanceOutput{Balance: user.Balance, Withdrawals: withdrawals}, nil
}

type WithdrawalInput struct {
	Amount        int64  `json:"amount"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// RequestWithdrawal validates against the live balance at request time. The
// balance itself is only deducted on approval, behind a conditional guard, so
// a stale read here cannot overdraw the account.
func (s *Service) RequestWithdrawal(ctx context.Context, userID int64, in WithdrawalInput) (*domain.WithdrawalRequest, error) {
	if in.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if strings.TrimSpace(in.BankName) == "" || strings.TrimSpace(in.AccountNumber) == "" || strings.TrimSpace(in.AccountName) == "" {
		return nil, errors.New("bank details required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Amount > user.Balance {
		return nil, domain.ErrInsufficientBalance
	}

	return s.repo.CreateWithdrawal(ctx, accountrepo.CreateWithdrawalInput{
		UserID:        userID,
		Amount:        in.Amount,
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountName:   strings.TrimSpace(in.AccountName),
	})
}

func (s *Service) ListAllWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	return s.repo.ListWithdrawals(ctx)
}

func (s *Service) ApproveWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error) {
	return s.repo.ApproveWithdrawal(ctx, id, processedBy, notes)
}

func (s *Service) RejectWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error) {
	return s.repo.RejectWithdrawal(ctx, id, processedBy, notes)
}
