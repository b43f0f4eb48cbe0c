package order

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

// Create snapshots every resolvable cart line and persists the order with its
// items in one transaction. Photo price and metadata are read inside the same
// transaction that writes the items, so the captured snapshot cannot drift
// from the catalog state it was priced against.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*CreateResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const photoQuery = `
SELECT p.price, p.url, p.start_no, p.class, e.name
FROM photos p
JOIN events e ON e.id = p.event_id
WHERE p.id = $1
`
	var (
		items   []domain.OrderItem
		skipped []int64
		total   int64
	)
	for _, line := range in.Lines {
		variant := line.Variant
		if variant <= 0 {
			variant = 1
		}
		item := domain.OrderItem{PhotoID: line.PhotoID, Variant: variant}
		err := tx.QueryRow(ctx, photoQuery, line.PhotoID).Scan(
			&item.Price,
			&item.SnapPhotoURL,
			&item.SnapStartNo,
			&item.SnapClass,
			&item.SnapEvent,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			skipped = append(skipped, line.PhotoID)
			continue
		}
		if err != nil {
			return nil, err
		}
		total += item.Price
		items = append(items, item)
	}

	if len(items) == 0 {
		return &CreateResult{SkippedPhotoIDs: skipped}, domain.ErrEmptyCart
	}

	var created domain.Order
	created.Email = in.Email
	created.Whatsapp = in.Whatsapp
	created.TotalPrice = total
	created.Status = domain.OrderPending
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (email, whatsapp, total_price, status)
VALUES ($1, $2, $3, 'pending')
RETURNING id, created_at
`, in.Email, in.Whatsapp, total).Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, photo_id, variant, price, snap_photo_url, snap_photo_start_no, snap_event_name, snap_photo_class)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`, created.ID, items[i].PhotoID, items[i].Variant, items[i].Price,
			items[i].SnapPhotoURL, items[i].SnapStartNo, items[i].SnapEvent, items[i].SnapClass,
		).Scan(&items[i].ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created.Items = items
	r.logger.Printf("order repo: created order id=%d total=%d items=%d skipped=%d", created.ID, total, len(items), len(skipped))
	return &CreateResult{Order: &created, SkippedPhotoIDs: skipped}, nil
}

func (r *postgresRepo) GetByIDWithItems(ctx context.Context, id int64) (*domain.Order, error) {
	const orderQuery = `
SELECT id, email, whatsapp, total_price, status, snap_token, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	var snapToken *string
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&o.ID,
		&o.Email,
		&o.Whatsapp,
		&o.TotalPrice,
		&o.Status,
		&snapToken,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.SnapToken = snapToken

	// Recap assets are matched by (photo_id, variant); an order item whose
	// variant has no recap falls back to the base photo snapshot URL.
	const itemsQuery = `
SELECT oi.id, oi.order_id, oi.photo_id, oi.variant, oi.price,
       oi.snap_photo_url, oi.snap_photo_start_no, oi.snap_event_name, oi.snap_photo_class,
       COALESCE('/uploads/recaps/' || rp.file_path, '')
FROM order_items oi
LEFT JOIN recap_photos rp ON rp.photo_id = oi.photo_id AND rp.variant_number = oi.variant
WHERE oi.order_id = $1
ORDER BY oi.id ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.PhotoID,
			&item.Variant,
			&item.Price,
			&item.SnapPhotoURL,
			&item.SnapStartNo,
			&item.SnapEvent,
			&item.SnapClass,
			&item.RecapURL,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *postgresRepo) SaveSnapToken(ctx context.Context, id int64, token string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET snap_token = $2 WHERE id = $1`, id, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
