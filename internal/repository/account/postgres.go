package account

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"racephoto-marketplace/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id, name, email, password_hash, role, balance, created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepo) fetchUser(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Balance,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) CreateWithdrawal(ctx context.Context, in CreateWithdrawalInput) (*domain.WithdrawalRequest, error) {
	const q = `
INSERT INTO withdrawal_requests (user_id, amount, bank_name, account_number, account_name, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING id, created_at
`
	w := domain.WithdrawalRequest{
		UserID:        in.UserID,
		Amount:        in.Amount,
		BankName:      in.BankName,
		AccountNumber: in.AccountNumber,
		AccountName:   in.AccountName,
		Status:        domain.WithdrawalPending,
	}
	if err := r.pool.QueryRow(ctx, q, in.UserID, in.Amount, in.BankName, in.AccountNumber, in.AccountName).
		Scan(&w.ID, &w.CreatedAt); err != nil {
		return nil, err
	}
	r.logger.Printf("account repo: withdrawal requested id=%d user_id=%d amount=%d", w.ID, w.UserID, w.Amount)
	return &w, nil
}

const withdrawalColumns = `id, user_id, amount, bank_name, account_number, account_name, status, COALESCE(admin_notes, ''), processed_by, processed_at, created_at`

func (r *postgresRepo) ListWithdrawalsByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	return r.listWithdrawals(ctx, `
SELECT `+withdrawalColumns+`
FROM withdrawal_requests
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
}

func (r *postgresRepo) ListWithdrawals(ctx context.Context) ([]domain.WithdrawalRequest, error) {
	return r.listWithdrawals(ctx, `
SELECT `+withdrawalColumns+`
FROM withdrawal_requests
ORDER BY created_at DESC
`)
}

func (r *postgresRepo) listWithdrawals(ctx context.Context, query string, args ...interface{}) ([]domain.WithdrawalRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WithdrawalRequest
	for rows.Next() {
		var w domain.WithdrawalRequest
		if err := rows.Scan(
			&w.ID,
			&w.UserID,
			&w.Amount,
			&w.BankName,
			&w.AccountNumber,
			&w.AccountName,
			&w.Status,
			&w.AdminNotes,
			&w.ProcessedBy,
			&w.ProcessedAt,
			&w.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveWithdrawal locks the request, verifies it is still pending, and
// deducts the amount with a balance guard in the same transaction. The guard
// makes concurrent approvals against the same account fail rather than drive
// the balance negative.
func (r *postgresRepo) ApproveWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	w, err := lockWithdrawal(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalPending {
		return nil, domain.ErrAlreadyExists
	}

	cmd, err := tx.Exec(ctx, `
UPDATE users
SET balance = balance - $2
WHERE id = $1 AND balance >= $2
`, w.UserID, w.Amount)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
UPDATE withdrawal_requests
SET status = 'approved', admin_notes = NULLIF($2, ''), processed_by = $3, processed_at = $4
WHERE id = $1
`, id, notes, processedBy, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	w.Status = domain.WithdrawalApproved
	w.AdminNotes = notes
	w.ProcessedBy = &processedBy
	w.ProcessedAt = &now
	r.logger.Printf("account repo: withdrawal approved id=%d user_id=%d amount=%d", w.ID, w.UserID, w.Amount)
	return w, nil
}

func (r *postgresRepo) RejectWithdrawal(ctx context.Context, id, processedBy int64, notes string) (*domain.WithdrawalRequest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	w, err := lockWithdrawal(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if w.Status != domain.WithdrawalPending {
		return nil, domain.ErrAlreadyExists
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `
UPDATE withdrawal_requests
SET status = 'rejected', admin_notes = NULLIF($2, ''), processed_by = $3, processed_at = $4
WHERE id = $1
`, id, notes, processedBy, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	w.Status = domain.WithdrawalRejected
	w.AdminNotes = notes
	w.ProcessedBy = &processedBy
	w.ProcessedAt = &now
	return w, nil
}

func lockWithdrawal(ctx context.Context, tx pgx.Tx, id int64) (*domain.WithdrawalRequest, error) {
	var w domain.WithdrawalRequest
	err := tx.QueryRow(ctx, `
SELECT `+withdrawalColumns+`
FROM withdrawal_requests
WHERE id = $1
FOR UPDATE
`, id).Scan(
		&w.ID,
		&w.UserID,
		&w.Amount,
		&w.BankName,
		&w.AccountNumber,
		&w.AccountName,
		&w.Status,
		&w.AdminNotes,
		&w.ProcessedBy,
		&w.ProcessedAt,
		&w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}
