package settlement

import (
	"context"
	"errors"
	"io"
	"log"

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

// Reconcile moves an order to the target status and, on a transition into
// success, credits each item's owning account in the same transaction.
//
// The order row is locked for the duration, so two concurrent reconciliations
// for the same order serialize: the first observes pending and applies the
// transition, the second observes the terminal state and no-ops. Balance
// credits are plain `balance = balance + n` increments, so concurrent credits
// to the same owner from different orders cannot lose updates.
func (r *postgresRepo) Reconcile(ctx context.Context, orderID int64, target domain.OrderStatus) (*Result, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var current domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if target == current || current.Terminal() || target == domain.OrderPending {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		r.logger.Printf("settlement repo: order id=%d status=%s target=%s no-op", orderID, current, target)
		return &Result{Applied: false, Status: current}, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, target); err != nil {
		return nil, err
	}

	var credits []Credit
	if target == domain.OrderSuccess {
		credits, err = creditOwners(ctx, tx, orderID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Printf("settlement repo: order id=%d %s -> %s credits=%d", orderID, current, target, len(credits))
	return &Result{Applied: true, Status: target, Credits: credits}, nil
}

// creditOwners groups item prices by owning account and applies one atomic
// increment per owner. The photo's own creator is the canonical owner; the
// event's creator is only a fallback for photos with no creator recorded.
// Items whose owner cannot be resolved either way are skipped for crediting
// without failing the settlement.
func creditOwners(ctx context.Context, tx pgx.Tx, orderID int64) ([]Credit, error) {
	const q = `
SELECT COALESCE(p.created_by, e.created_by) AS owner_id, SUM(oi.price)
FROM order_items oi
JOIN photos p ON p.id = oi.photo_id
JOIN events e ON e.id = p.event_id
WHERE oi.order_id = $1 AND COALESCE(p.created_by, e.created_by) IS NOT NULL
GROUP BY 1
ORDER BY 1
`
	rows, err := tx.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []Credit
	for rows.Next() {
		var c Credit
		if err := rows.Scan(&c.UserID, &c.Amount); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range credits {
		if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance + $2 WHERE id = $1`, c.UserID, c.Amount); err != nil {
			return nil, err
		}
	}
	return credits, nil
}
